package model

import (
	"time"

	"gorm.io/gorm"
)

// Sermon is a recorded or announced sermon on a church's public site.
type Sermon struct {
	ID          uint `json:"id" gorm:"primaryKey"`
	TenantOwned `json:"-"`
	Title       string         `json:"title" gorm:"type:varchar(200);not null"`
	Speaker     string         `json:"speaker" gorm:"type:varchar(100)"`
	Scripture   string         `json:"scripture" gorm:"type:varchar(100)"`
	VideoURL    string         `json:"video_url" gorm:"type:varchar(500)"`
	DeliveredOn *time.Time     `json:"delivered_on,omitempty"`
	Published   bool           `json:"published" gorm:"default:false"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
