package model

import (
	"time"

	"gorm.io/gorm"
)

// Membership associates a user with a tenant and carries the user's role
// inside that tenant. Deactivating a membership revokes access without
// deleting either side.
type Membership struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"uniqueIndex:idx_memberships_user_tenant;not null"`
	TenantID  uint           `json:"tenant_id" gorm:"uniqueIndex:idx_memberships_user_tenant;not null"`
	Role      string         `json:"role" gorm:"type:varchar(20);not null;default:'VIEWER'"`
	IsDefault bool           `json:"is_default" gorm:"default:false"`
	Active    bool           `json:"active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	User   User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Tenant Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}
