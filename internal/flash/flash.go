package flash

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

const cookieName = "flash"

// Set queues a one-shot message shown on the next rendered page.
func Set(c echo.Context, msg string) {
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Take returns the pending message, if any, and clears it.
func Take(c echo.Context) string {
	ck, err := c.Cookie(cookieName)
	if err != nil || ck.Value == "" {
		return ""
	}
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	msg, err := url.QueryUnescape(ck.Value)
	if err != nil {
		return ""
	}
	return msg
}
