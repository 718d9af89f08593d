package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// BodyLimitConfig holds request body size limits.
type BodyLimitConfig struct {
	MaxBytes int64
}

// DefaultBodyLimitConfig returns the default body size limit.
func DefaultBodyLimitConfig() BodyLimitConfig {
	return BodyLimitConfig{
		MaxBytes: 1 << 20, // 1 MB
	}
}

// BodyLimit rejects requests whose declared or actual body size exceeds the
// configured limit.
func BodyLimit(cfg BodyLimitConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			if req.ContentLength > cfg.MaxBytes {
				return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "request body too large")
			}

			// Content-Length can be absent or lie; cap the reader as well.
			req.Body = http.MaxBytesReader(c.Response(), req.Body, cfg.MaxBytes)

			return next(c)
		}
	}
}
