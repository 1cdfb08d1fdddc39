package atomicsite

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/atomicsite/catalog"
	"github.com/eringen/atomicsite/views"
)

// chroniclesPage is the JSON shape of /api/chronicles.
type chroniclesPage struct {
	Entries []catalog.Entry `json:"entries"`
	catalog.Page
}

// handleChronicles serves the chronicles page. The cursor lives with the
// client: the "load more" control carries it, and each activation asks for
// the page that follows it.
//
//	GET /chronicles/                               first page
//	GET /chronicles/?shown=K                       pages up to K (no-JS fallback)
//	GET /chronicles/?partial=entries&cursor=K      htmx: next page + new control
func (a *App) handleChronicles(c echo.Context) error {
	size := a.Config.ChroniclesPageSize

	if isHTMX(c) && c.QueryParam("partial") == "entries" {
		cursor, err := queryInt(c, "cursor", 0)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		page, err := a.catalog.RenderNextPage(views.NewEntryWriter(c.Request().Context(), &buf), cursor, size)
		if err != nil {
			return err
		}
		return Render(c, views.ChroniclesFragment(templ.Raw(buf.String()), page))
	}

	shown, err := queryInt(c, "shown", 0)
	if err != nil {
		return err
	}
	section, meta, err := a.page("chronicles")
	if err != nil {
		return err
	}

	var (
		buf      bytes.Buffer
		rendered []catalog.Entry
	)
	html := views.NewEntryWriter(c.Request().Context(), &buf)
	sink := catalog.SinkFunc(func(e catalog.Entry) error {
		if err := html.Append(e); err != nil {
			return err
		}
		rendered = append(rendered, e)
		return nil
	})
	pager, err := catalog.NewPager(a.catalog, sink, size)
	if err != nil {
		return err
	}
	page, err := pager.FastForward(shown)
	if err != nil {
		return err
	}

	jsonLD := views.ChroniclesJsonLD(a.viewConfig(), rendered, 0)
	body := views.Chronicles(section, templ.Raw(buf.String()), page, jsonLD)
	return a.renderPage(c, http.StatusOK, "/chronicles/", meta, body)
}

// handleChroniclesAPI returns one page of the catalog as JSON.
//
//	GET /api/chronicles?cursor=K&limit=L
func (a *App) handleChroniclesAPI(c echo.Context) error {
	cursor, err := queryInt(c, "cursor", 0)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", a.Config.ChroniclesPageSize)
	if err != nil {
		return err
	}
	if limit <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "limit must be positive")
	}
	if n := a.catalog.Len(); limit > n {
		limit = max(n, 1)
	}

	entries, page, err := a.catalog.Collect(cursor, limit)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []catalog.Entry{}
	}
	return c.JSON(http.StatusOK, chroniclesPage{Entries: entries, Page: page})
}
