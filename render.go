package seomaster

import (
	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/seomaster/views"
)

const (
	// headerNavRequest marks a fetch made by nav.js for an in-place transition.
	headerNavRequest = "X-Nav-Request"
	// headerNavPartial tells nav.js the response is a partial document it can
	// swap in. Anything else is loaded with a full navigation.
	headerNavPartial = "X-Nav-Partial"
)

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

func isNavRequest(c echo.Context) bool {
	return c.Request().Header.Get(headerNavRequest) == "true"
}

// renderPage renders the named view as a partial for nav.js and as the full
// document otherwise.
func renderPage(c echo.Context, code int, name string, p views.Page) error {
	h := c.Response().Header()
	h.Add(echo.HeaderVary, headerNavRequest)
	if isNavRequest(c) {
		h.Set(headerNavPartial, "true")
		return RenderStatus(c, code, views.Partial(name, p))
	}
	return RenderStatus(c, code, views.Full(name, p))
}
