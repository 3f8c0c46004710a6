package middleware

import (
	"errors"
	"net"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/randy-gonzalez/faith-interactive-sub006/internal/apperr"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/model"
)

const publicTenantContextKey = "public_tenant"

// ResolvePublicTenant maps a public-surface request to its church by the
// host's first label (the tenant slug). Unknown slugs and suspended tenants
// both read as 404 so probing reveals nothing.
func ResolvePublicTenant(db *gorm.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			slug := hostSlug(c.Request().Host)
			if slug == "" {
				return apperr.NotFound()
			}

			var tenant model.Tenant
			err := db.WithContext(c.Request().Context()).
				Where("slug = ?", slug).
				First(&tenant).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound()
				}
				return apperr.Internal(err)
			}
			if !tenant.Active() {
				return apperr.NotFound()
			}

			c.Set(publicTenantContextKey, &tenant)
			return next(c)
		}
	}
}

// PublicTenantFromEcho returns the tenant resolved for a public-surface
// request.
func PublicTenantFromEcho(c echo.Context) *model.Tenant {
	if t, ok := c.Get(publicTenantContextKey).(*model.Tenant); ok {
		return t
	}
	return nil
}

func hostSlug(host string) string {
	h := strings.ToLower(strings.TrimSpace(host))
	if bare, _, err := net.SplitHostPort(h); err == nil {
		h = bare
	}
	h = strings.TrimSuffix(h, ".")
	label, _, _ := strings.Cut(h, ".")
	return label
}
