package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopfront/internal/models"
)

// RequireRole lets the request through only when the session user's role is
// in the allowed set. It runs after RequireLogin, so a missing user here is
// treated the same as a wrong role.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(ContextUserKey).(*models.User)
			if ok {
				if _, ok := allowed[user.Role]; ok {
					return next(c)
				}
			}
			if wantsJSON(c) {
				return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
			}
			return c.Redirect(http.StatusFound, "/")
		}
	}
}
