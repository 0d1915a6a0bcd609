// Package redis stores delegated-login sessions in Redis, keyed by token and
// expiring with the session itself.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/frahmantamala/planforge/internal/auth"
	sessionDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/session"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

type SessionStore struct {
	client goredis.UniversalClient
	now    func() time.Time
}

func NewSessionStore(client goredis.UniversalClient) *SessionStore {
	return &SessionStore{client: client, now: time.Now}
}

func key(token string) string {
	return keyPrefix + token
}

func (s *SessionStore) Create(ctx context.Context, userID, token string, validity time.Duration) (*sessionDatamodel.Session, error) {
	if validity <= 0 {
		return nil, errors.New("session validity must be positive")
	}
	now := s.now().UTC()
	sess := &sessionDatamodel.Session{
		ID:           uuid.NewString(),
		UserID:       userID,
		SessionToken: token,
		ExpiresAt:    now.Add(validity),
		IsActive:     true,
		CreatedAt:    now,
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}
	if err := s.client.Set(ctx, key(token), payload, validity).Err(); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *SessionStore) load(ctx context.Context, token string) (*sessionDatamodel.Session, error) {
	payload, err := s.client.Get(ctx, key(token)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, auth.ErrSessionNotFound
		}
		return nil, err
	}
	var sess sessionDatamodel.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Invalidate marks the session inactive and keeps the remaining TTL so the
// key still disappears when the session would have expired.
func (s *SessionStore) Invalidate(ctx context.Context, token string) error {
	sess, err := s.load(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrSessionNotFound) {
			return nil
		}
		return err
	}
	if !sess.IsActive {
		return nil
	}

	sess.IsActive = false
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	err = s.client.SetArgs(ctx, key(token), payload, goredis.SetArgs{KeepTTL: true, Mode: "XX"}).Err()
	if errors.Is(err, goredis.Nil) {
		return nil
	}
	return err
}

func (s *SessionStore) FindActive(ctx context.Context, token string) (*sessionDatamodel.Session, error) {
	sess, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	if !sess.IsActive || !sess.ExpiresAt.After(s.now()) {
		return nil, auth.ErrSessionNotFound
	}
	return sess, nil
}
