package atomicsite

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/eringen/atomicsite/contact"
	"github.com/eringen/atomicsite/views"
)

func (a *App) renderContact(c echo.Context, code int, form views.ContactForm) error {
	section, meta, err := a.page("contact")
	if err != nil {
		return err
	}
	form.CSRFToken = CsrfToken(c)
	return a.renderPage(c, code, "/contact/", meta, views.Contact(section, form))
}

func (a *App) handleContact(c echo.Context) error {
	return a.renderContact(c, http.StatusOK, views.ContactForm{Flash: popFlashes(c)})
}

// handleContactSubmit validates an application. Accepted applications are
// acknowledged with a reference the applicant can quote, then dropped;
// nothing is stored.
func (a *App) handleContactSubmit(c echo.Context) error {
	if !a.submitLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many applications. Try again later.")
	}

	var app contact.Application
	if err := c.Bind(&app); err != nil {
		return c.String(http.StatusBadRequest, "Invalid application")
	}
	if errs := app.Validate(); !errs.Valid() {
		return a.renderContact(c, http.StatusUnprocessableEntity, views.ContactForm{
			Values: app,
			Errors: errs,
			Banner: contact.MsgRejected,
		})
	}

	ref := uuid.NewString()
	c.Logger().Infof("application %s accepted from %s (codename %q)", ref, c.RealIP(), app.Codename)
	for _, msg := range []string{contact.MsgSubmitted, contact.ReferenceMessage(ref)} {
		if err := addFlash(c, msg); err != nil {
			return err
		}
	}
	return c.Redirect(http.StatusSeeOther, "/contact/")
}

// handleContactValidate answers live validation requests for a single field.
func (a *App) handleContactValidate(c echo.Context) error {
	field := c.Param("field")
	msg, ok := contact.ValidateField(field, c.FormValue(field))
	if !ok {
		return echo.ErrNotFound
	}
	return Render(c, views.FieldError(field, msg))
}
