package auth

import (
	"context"
	"errors"
	"time"

	sessionDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/session"
	userDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/user"
)

var ErrSessionNotFound = errors.New("session not found")

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*userDatamodel.User, error)
	FindByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	Create(ctx context.Context, u *userDatamodel.User) error
}

// SessionStore persists delegated-login sessions.
//
// FindActive returns ErrSessionNotFound unless the session exists, is active
// and expires after now. Invalidate is idempotent and never fails for an
// unknown token.
type SessionStore interface {
	Create(ctx context.Context, userID, token string, validity time.Duration) (*sessionDatamodel.Session, error)
	Invalidate(ctx context.Context, token string) error
	FindActive(ctx context.Context, token string) (*sessionDatamodel.Session, error)
}

// SessionData is what the identity provider returns for a session id.
type SessionData struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	SessionToken string `json:"session_token"`
}

type SessionProvider interface {
	Fetch(ctx context.Context, sessionID string) (*SessionData, error)
}
