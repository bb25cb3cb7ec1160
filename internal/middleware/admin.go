package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAdmin returns a middleware that aborts with 403 Forbidden unless
// the authenticated user carries the admin flag.  It assumes JWTAuth ran
// earlier and stored "is_admin" in the context.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			adm, ok := c.Get("is_admin").(bool)
			if !ok || !adm {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
