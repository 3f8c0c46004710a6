package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/randy-gonzalez/faith-interactive-sub006/internal/apperr"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/surface"
)

const surfaceContextKey = "surface"

// ResolveSurface classifies the request's Host header and stores the surface
// in the Echo context. Runs early, before any routing decisions.
func ResolveSurface(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(surfaceContextKey, surface.Resolve(c.Request().Host))
		return next(c)
	}
}

// SurfaceFromEcho returns the surface resolved for this request.
func SurfaceFromEcho(c echo.Context) surface.Surface {
	if s, ok := c.Get(surfaceContextKey).(surface.Surface); ok {
		return s
	}
	return surface.SurfacePublic
}

// RequireSurface hides a route group from hosts that do not belong to it.
// The wrong host gets a plain 404, not a hint that the route exists.
func RequireSurface(want surface.Surface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if SurfaceFromEcho(c) != want {
				return apperr.NotFound()
			}
			return next(c)
		}
	}
}
