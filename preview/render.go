package preview

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// renderPage wraps content in the site layout and writes it with code.
func (a *App) renderPage(c echo.Context, code int, meta PageMeta, content templ.Component) error {
	d := layoutData{
		SiteName:  a.Config.SiteName,
		Editor:    IsEditor(c),
		CSRFToken: CsrfToken(c),
	}
	if meta.Lang == "" {
		meta.Lang = a.Renderer.Config().Locale
	}
	return RenderStatus(c, code, Layout(d, meta, content))
}
