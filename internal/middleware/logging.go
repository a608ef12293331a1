package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// RequestLogger emits one structured log line per request with method,
// path, status, duration and the authenticated user when present.
func RequestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			ev := logger.Info()
			if c.Response().Status >= 500 {
				ev = logger.Error()
			}
			if uid, ok := c.Get("user_id").(uint64); ok {
				ev = ev.Uint64("user_id", uid)
			}
			ev.Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", c.Response().Status).
				Dur("duration", time.Since(start)).
				Str("remote", c.RealIP()).
				Msg("request")
			return nil
		}
	}
}
