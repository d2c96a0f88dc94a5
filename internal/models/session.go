package models

import (
	"time"

	"spendlog/internal/uuid"

	"gorm.io/gorm"
)

// Session is a server-side login session referenced by the session cookie.
type Session struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	ExpiresAt    time.Time `gorm:"not null" json:"expires_at"`
	LastActivity time.Time `gorm:"not null" json:"last_activity"`
	CreatedAt    time.Time `json:"created_at"`
}

// BeforeCreate hook generates a UUIDv7 for new sessions
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New()
	}
	return nil
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
