package model

import (
	"time"

	"gorm.io/gorm"
)

// Page is a block of site content rendered on a church's public site.
type Page struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	TenantOwned `json:"-"`
	Slug        string         `json:"slug" gorm:"type:varchar(100);index;not null"`
	Title       string         `json:"title" gorm:"type:varchar(200);not null"`
	Body        string         `json:"body" gorm:"type:text"`
	Published   bool           `json:"published" gorm:"default:false"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
