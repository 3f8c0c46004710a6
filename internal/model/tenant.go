package model

import (
	"time"

	"gorm.io/gorm"
)

// Tenant statuses. A suspended tenant keeps its data but stops serving
// traffic on the admin and public surfaces.
const (
	TenantStatusActive    = "active"
	TenantStatusSuspended = "suspended"
)

// Tenant represents one church's isolated slice of the platform.
// This is the identity boundary: every content row carries the owning
// tenant's id and is never visible outside it.
type Tenant struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(100);not null"`
	Slug      string         `json:"slug" gorm:"type:varchar(63);uniqueIndex;not null"`
	Status    string         `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	Settings  string         `json:"settings,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Active reports whether the tenant may serve traffic.
func (t *Tenant) Active() bool {
	return t.Status == TenantStatusActive
}
