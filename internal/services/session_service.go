package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "spendlog/internal/errors"
	"spendlog/internal/models"
)

// sessionService stores login sessions as rows keyed by a UUIDv7 string.
type sessionService struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewSessionService creates a new SessionServicer whose sessions live for ttl.
func NewSessionService(db *gorm.DB, ttl time.Duration) SessionServicer {
	return &sessionService{db: db, ttl: ttl, now: func() time.Time { return time.Now().UTC() }}
}

// CreateSession opens a session for userID.
func (s *sessionService) CreateSession(userID uint) (*models.Session, error) {
	now := s.now()
	session := &models.Session{
		UserID:       userID,
		ExpiresAt:    now.Add(s.ttl),
		LastActivity: now,
	}
	if err := s.db.Create(session).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return session, nil
}

// ValidateSession returns the live session with the given ID. Missing and
// expired sessions both return ErrSessionExpired.
func (s *sessionService) ValidateSession(sessionID string) (*models.Session, error) {
	if sessionID == "" {
		return nil, apperrors.ErrSessionExpired
	}

	var session models.Session
	if err := s.db.Where("id = ?", sessionID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSessionExpired
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if session.Expired(s.now()) {
		return nil, apperrors.ErrSessionExpired
	}
	return &session, nil
}

// RenewSession extends the session to a full TTL once less than half of it
// remains. It reports whether the expiry moved.
func (s *sessionService) RenewSession(session *models.Session) (bool, error) {
	now := s.now()
	if session.ExpiresAt.Sub(now) >= s.ttl/2 {
		return false, nil
	}

	expires := now.Add(s.ttl)
	err := s.db.Model(&models.Session{}).
		Where("id = ?", session.ID).
		Updates(map[string]interface{}{"expires_at": expires, "last_activity": now}).Error
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	session.ExpiresAt = expires
	session.LastActivity = now
	return true, nil
}

// DeleteSession removes the session row. Deleting an unknown ID is not an error.
func (s *sessionService) DeleteSession(sessionID string) error {
	if err := s.db.Where("id = ?", sessionID).Delete(&models.Session{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// PurgeExpired deletes every session past its expiry and returns how many
// rows were removed.
func (s *sessionService) PurgeExpired() (int64, error) {
	result := s.db.Where("expires_at <= ?", s.now()).Delete(&models.Session{})
	if result.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected, nil
}
