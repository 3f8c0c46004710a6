package model

import (
	"time"

	"gorm.io/gorm"
)

// FormSubmission is a visitor submission from a public site form (contact,
// prayer request, connect card). Payload is the raw field map as JSON.
type FormSubmission struct {
	ID          uint `json:"id" gorm:"primaryKey"`
	TenantOwned `json:"-"`
	FormName    string         `json:"form_name" gorm:"type:varchar(100);index;not null"`
	Payload     string         `json:"payload" gorm:"type:jsonb"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
