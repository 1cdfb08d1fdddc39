package atomicsite

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/atomicsite/views"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
// The component is rendered into a buffer first so a failure can still turn
// into an error page instead of a truncated response.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	var buf bytes.Buffer
	if err := cmp.Render(c.Request().Context(), &buf); err != nil {
		return err
	}
	return c.HTMLBlob(code, buf.Bytes())
}

// renderPage wraps body in the site layout for path.
func (a *App) renderPage(c echo.Context, code int, path string, meta views.PageMeta, body templ.Component) error {
	return RenderStatus(c, code, views.Layout(a.shell(c, path, meta), body))
}
