package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"shopfront/internal/flash"
	"shopfront/internal/logging"
	authmw "shopfront/internal/middleware/auth"
	"shopfront/internal/models"
	"shopfront/internal/mykafka"
)

func currentUser(c echo.Context) *models.User {
	if u, ok := c.Get(authmw.ContextUserKey).(*models.User); ok {
		return u
	}
	return nil
}

// pageData builds the common template payload. Extra keys override the
// defaults, so a handler can re-render with an inline Flash instead of the
// cookie one.
func pageData(c echo.Context, extra echo.Map) echo.Map {
	data := echo.Map{
		"Flash": flash.Take(c),
		"User":  currentUser(c),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func parseID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.QueryParam("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// publish sends a domain event best-effort: failures are logged, never
// surfaced to the user.
func publish(c echo.Context, p *mykafka.Producer, topic, key string, event map[string]interface{}) {
	if !p.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "topic", topic, "error", err)
	}
}
