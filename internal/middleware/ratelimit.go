package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/randy-gonzalez/faith-interactive-sub006/internal/apperr"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/limiter"
	"github.com/randy-gonzalez/faith-interactive-sub006/prometheus"
)

// RateLimit applies the limiter keyed by client IP and route name. The
// X-RateLimit headers are written on every response of a limited route,
// allowed or not.
func RateLimit(l *limiter.Limiter, route string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			res := l.Check(c.RealIP(), route)

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			prometheus.RecordRateLimit(route, res.Allowed)
			if !res.Allowed {
				return apperr.RateLimited()
			}
			return next(c)
		}
	}
}
