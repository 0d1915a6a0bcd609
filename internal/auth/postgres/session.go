package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frahmantamala/planforge/internal/auth"
	sessionDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionRepository keeps delegated-login sessions in the sessions table.
type SessionRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db, now: time.Now}
}

func (r *SessionRepository) WithClock(now func() time.Time) *SessionRepository {
	r.now = now
	return r
}

func (r *SessionRepository) Create(ctx context.Context, userID, token string, validity time.Duration) (*sessionDatamodel.Session, error) {
	now := r.now().UTC()
	sess := &sessionDatamodel.Session{
		ID:           uuid.NewString(),
		UserID:       userID,
		SessionToken: token,
		ExpiresAt:    now.Add(validity),
		IsActive:     true,
		CreatedAt:    now,
	}

	err := r.db.WithContext(ctx).Create(sess).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// the provider handed out a token we already hold; renew it
		err = r.db.WithContext(ctx).
			Model(&sessionDatamodel.Session{}).
			Where("session_token = ?", token).
			Updates(map[string]interface{}{
				"user_id":    userID,
				"expires_at": sess.ExpiresAt,
				"is_active":  true,
			}).Error
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (r *SessionRepository) Invalidate(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Model(&sessionDatamodel.Session{}).
		Where("session_token = ?", token).
		Update("is_active", false).Error
}

func (r *SessionRepository) FindActive(ctx context.Context, token string) (*sessionDatamodel.Session, error) {
	var sess sessionDatamodel.Session
	err := r.db.WithContext(ctx).
		Where("session_token = ? AND is_active = ?", token, true).
		First(&sess).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrSessionNotFound
		}
		return nil, err
	}
	if !sess.ExpiresAt.After(r.now()) {
		return nil, auth.ErrSessionNotFound
	}
	return &sess, nil
}
