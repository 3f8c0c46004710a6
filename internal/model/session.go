package model

import "time"

// Session maps an opaque cookie token to a user and, once selected, the
// active tenant. Owned exclusively by the session service; nothing else
// writes these rows.
type Session struct {
	Token     string    `json:"-" gorm:"type:varchar(64);primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	TenantID  *uint     `json:"tenant_id,omitempty" gorm:"index"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
