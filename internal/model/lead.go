package model

import (
	"time"

	"gorm.io/gorm"
)

// Lead statuses for the vendor CRM pipeline.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusConverted = "converted"
	LeadStatusClosed    = "closed"
)

// Lead is a sales prospect captured on the vendor marketing site. It belongs
// to the platform itself, not to any tenant, and therefore deliberately does
// not embed TenantOwned: passing it to the scoped accessor is a compile
// error.
type Lead struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Name       string         `json:"name" gorm:"type:varchar(100);not null"`
	Email      string         `json:"email" gorm:"type:varchar(100);index;not null"`
	ChurchName string         `json:"church_name" gorm:"type:varchar(200)"`
	Message    string         `json:"message" gorm:"type:text"`
	Source     string         `json:"source" gorm:"type:varchar(100)"`
	Status     string         `json:"status" gorm:"type:varchar(20);not null;default:'new'"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}
