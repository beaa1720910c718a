package auth

import (
	"strings"

	"github.com/labstack/echo/v4"

	"shopfront/internal/session"
)

const (
	ContextUserKey   = "user"
	ContextUserIDKey = "userID"
	ContextRoleKey   = "role"
)

// LoadSession resolves the session cookie, if any, and attaches the current
// user to the echo context. It never rejects a request on its own; the
// Require* guards do that.
func LoadSession(m *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(session.CookieName)
			if err != nil || ck.Value == "" {
				return next(c)
			}
			user, err := m.Resolve(c.Request().Context(), ck.Value)
			if err != nil {
				return next(c)
			}
			c.Set(ContextUserKey, user)
			c.Set(ContextUserIDKey, user.ID)
			c.Set(ContextRoleKey, user.Role)
			return next(c)
		}
	}
}

func wantsJSON(c echo.Context) bool {
	if c.Request().Header.Get("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
