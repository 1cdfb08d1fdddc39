package atomicsite

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eringen/atomicsite/content"
	"github.com/eringen/atomicsite/views"
)

// page looks up slug and returns its intro section and head metadata.
func (a *App) page(slug string) (views.Section, views.PageMeta, error) {
	p, err := a.Site.Page(slug)
	if err != nil {
		return views.Section{}, views.PageMeta{}, err
	}
	meta := views.PageMeta{
		Title:       p.Title,
		Description: p.Description,
		URL:         BuildURL(a.Config.URL, p.Slug),
		OGType:      "website",
	}
	if p.Slug == "home" {
		meta.Title = a.Config.Name
		meta.URL = BuildURL(a.Config.URL)
	}
	return views.Section{Title: p.Title, Body: p.Body}, meta, nil
}

// queryInt parses an optional integer query parameter.
func queryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid %s parameter", name))
	}
	return v, nil
}

func (a *App) handleHome(c echo.Context) error {
	section, meta, err := a.page("home")
	if err != nil {
		return err
	}
	// The widget starts one step in, as if "New Insight" had been pressed once.
	from, err := queryInt(c, "insight", 0)
	if err != nil {
		return err
	}
	idx, text := a.Site.Insights.Next(from)
	return a.renderPage(c, http.StatusOK, "/", meta, views.Home(section, idx, text))
}

func (a *App) handleInsight(c echo.Context) error {
	from, err := queryInt(c, "i", 0)
	if err != nil {
		return err
	}
	idx, text := a.Site.Insights.Next(from)
	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, "/?insight="+strconv.Itoa(from))
	}
	return Render(c, views.Insight(idx, text))
}

func (a *App) handlePhilosophy(c echo.Context) error {
	p, err := a.Site.Page("philosophy")
	if err != nil {
		return err
	}
	revealed := c.QueryParam("reveal") == "1"
	if isHTMX(c) && c.QueryParam("partial") == "wisdom" {
		return Render(c, views.Wisdom(p.Hidden, revealed))
	}
	section, meta, err := a.page("philosophy")
	if err != nil {
		return err
	}
	return a.renderPage(c, http.StatusOK, p.Path(), meta, views.Philosophy(section, p.Hidden, revealed))
}

func (a *App) handleArsenal(c echo.Context) error {
	section, meta, err := a.page("arsenal")
	if err != nil {
		return err
	}
	tools := make([]views.Tool, 0, len(a.Site.Arsenal))
	for _, t := range a.Site.Arsenal {
		tools = append(tools, views.Tool{Name: t.Name, Description: t.Description})
	}
	return a.renderPage(c, http.StatusOK, "/arsenal/", meta, views.Arsenal(section, tools))
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c, a.Site.Pages())
}

func (a *App) handleFeed(c echo.Context) error {
	return a.renderRSS(c, a.catalog.Entries())
}

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if errors.Is(err, content.ErrNotFound) {
		err = echo.ErrNotFound
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		if rerr := RenderStatus(c, http.StatusNotFound, views.NotFound(a.shell(c, "", views.PageMeta{}))); rerr != nil {
			c.Logger().Errorf("render not found page: %v", rerr)
		}
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		if rerr := RenderStatus(c, code, views.ServerError(a.shell(c, "", views.PageMeta{}))); rerr != nil {
			c.Logger().Errorf("render error page: %v", rerr)
		}
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
