package model

import (
	"time"

	"gorm.io/gorm"
)

// Event is a calendar entry on a church's public site.
type Event struct {
	ID          uint `json:"id" gorm:"primaryKey"`
	TenantOwned `json:"-"`
	Title       string         `json:"title" gorm:"type:varchar(200);not null"`
	Location    string         `json:"location" gorm:"type:varchar(200)"`
	StartsAt    time.Time      `json:"starts_at" gorm:"index;not null"`
	EndsAt      *time.Time     `json:"ends_at,omitempty"`
	Published   bool           `json:"published" gorm:"default:false"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
