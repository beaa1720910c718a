package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopfront/internal/flash"
	"shopfront/internal/models"
)

// RequireLogin redirects anonymous browsers to the login form; API-style
// clients get a plain 401 instead.
func RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := c.Get(ContextUserKey).(*models.User); !ok {
			if wantsJSON(c) {
				return echo.NewHTTPError(http.StatusUnauthorized, "login required")
			}
			flash.Set(c, "login / signup is required")
			return c.Redirect(http.StatusFound, "/login")
		}
		return next(c)
	}
}
