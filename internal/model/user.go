package model

import (
	"time"

	"gorm.io/gorm"
)

// Platform-level roles, independent of any tenant membership. They grant
// access to the internal operator surface only.
const (
	PlatformRoleAdmin = "PLATFORM_ADMIN"
	PlatformRoleStaff = "PLATFORM_STAFF"
)

// User represents an account. Tenant access is carried by Membership rows,
// never by the user record itself.
type User struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	Email           string         `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password        string         `json:"-" gorm:"type:varchar(255)"`
	Name            string         `json:"name" gorm:"type:varchar(100)"`
	PlatformRole    *string        `json:"platform_role,omitempty" gorm:"type:varchar(50)"`
	DefaultTenantID *uint          `json:"default_tenant_id,omitempty" gorm:"index"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

// IsPlatformStaff reports whether the user holds any platform-level role.
func (u *User) IsPlatformStaff() bool {
	return u.PlatformRole != nil && (*u.PlatformRole == PlatformRoleAdmin || *u.PlatformRole == PlatformRoleStaff)
}

// IsPlatformAdmin reports whether the user holds the platform admin role.
func (u *User) IsPlatformAdmin() bool {
	return u.PlatformRole != nil && *u.PlatformRole == PlatformRoleAdmin
}
