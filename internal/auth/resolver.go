package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/planforge/internal"
	"github.com/frahmantamala/planforge/internal/transport"
	"github.com/frahmantamala/planforge/internal/user"
)

// Resolver turns request credentials into the acting user. The session
// cookie is tried first and the bearer token second. It never writes.
type Resolver struct {
	users      UserRepository
	sessions   SessionStore
	tokens     *TokenService
	cookieName string
	logger     *slog.Logger
}

func NewResolver(users UserRepository, sessions SessionStore, tokens *TokenService, cookieName string, logger *slog.Logger) *Resolver {
	if cookieName == "" {
		cookieName = internal.DefaultSessionCookieName
	}
	return &Resolver{
		users:      users,
		sessions:   sessions,
		tokens:     tokens,
		cookieName: cookieName,
		logger:     logger,
	}
}

func (r *Resolver) CookieName() string {
	return r.cookieName
}

// Resolve returns the authenticated user or internal.ErrInvalidCredentials.
func (r *Resolver) Resolve(req *http.Request) (*internal.User, error) {
	ctx := req.Context()

	if c, err := req.Cookie(r.cookieName); err == nil && c.Value != "" {
		if u, err := r.FromSession(ctx, c.Value); err == nil {
			return u, nil
		}
	}

	token := transport.BearerToken(req)
	if token == "" {
		return nil, internal.ErrInvalidCredentials
	}
	return r.FromToken(ctx, token)
}

// FromSession resolves a session token to its active user.
func (r *Resolver) FromSession(ctx context.Context, token string) (*internal.User, error) {
	sess, err := r.sessions.FindActive(ctx, token)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			r.logger.Warn("session lookup failed", "error", err)
		}
		return nil, internal.ErrInvalidCredentials
	}

	record, err := r.users.FindByID(ctx, sess.UserID)
	if err != nil {
		r.logger.Warn("session user lookup failed", "user_id", sess.UserID, "error", err)
		return nil, internal.ErrInvalidCredentials
	}
	return activeIdentity(user.FromDataModel(record))
}

// FromToken resolves a signed bearer token to its user.
func (r *Resolver) FromToken(ctx context.Context, token string) (*internal.User, error) {
	email, err := r.tokens.Verify(token)
	if err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	record, err := r.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, internal.ErrInvalidCredentials
	}
	return activeIdentity(user.FromDataModel(record))
}

func activeIdentity(u *user.User) (*internal.User, error) {
	if !u.IsActive {
		return nil, internal.ErrInvalidCredentials
	}
	return u.Identity(), nil
}
