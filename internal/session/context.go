package session

import (
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/authz"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/model"
)

// AuthContext is the resolved identity for one request: who the user is,
// which tenant is active, and the role inside it. Built exclusively from the
// session lookup; nothing here ever comes from request parameters.
type AuthContext struct {
	Token        string
	UserID       uint
	Email        string
	Name         string
	PlatformRole string

	TenantID     uint
	TenantName   string
	TenantSlug   string
	TenantStatus string
	Role         authz.Role

	// NeedsTenantSelection is set when the user holds memberships but the
	// session has no resolvable active tenant. The caller prompts for a
	// selection; this layer never picks one.
	NeedsTenantSelection bool
}

// HasTenant reports whether an active tenant is selected.
func (a *AuthContext) HasTenant() bool {
	return a.TenantID != 0
}

// TenantActive reports whether the selected tenant may serve traffic.
func (a *AuthContext) TenantActive() bool {
	return a.HasTenant() && a.TenantStatus == model.TenantStatusActive
}

// IsPlatformStaff reports whether the user holds any platform-level role.
func (a *AuthContext) IsPlatformStaff() bool {
	return a.PlatformRole == model.PlatformRoleAdmin || a.PlatformRole == model.PlatformRoleStaff
}

// IsPlatformAdmin reports whether the user holds the platform admin role.
func (a *AuthContext) IsPlatformAdmin() bool {
	return a.PlatformRole == model.PlatformRoleAdmin
}
