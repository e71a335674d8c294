package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const docsIndex = "/docs/index.html"

// DocsRedirectHandler 將根路徑導向 Swagger UI
func DocsRedirectHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Redirect(http.StatusTemporaryRedirect, docsIndex)
	}
}
