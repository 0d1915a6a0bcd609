package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/planforge/internal"
	"github.com/frahmantamala/planforge/internal/auth/rbac"
	"github.com/frahmantamala/planforge/internal/core/store"
	"github.com/frahmantamala/planforge/internal/user"
)

type ServiceAPI interface {
	Login(ctx context.Context, dto LoginDTO) (*TokenResponse, error)
	Register(ctx context.Context, actor *internal.User, dto RegisterDTO) (*internal.User, error)
	ProcessSession(ctx context.Context, sessionID string) (*SessionResult, error)
	Logout(ctx context.Context, sessionToken string)
	SessionCheck(ctx context.Context, sessionToken string) SessionCheckResponse
}

type Config struct {
	LoginTokenTTL   time.Duration
	SessionValidity time.Duration
}

// Service is the main auth service with dependencies
type Service struct {
	users    UserRepository
	sessions SessionStore
	provider SessionProvider
	tokens   *TokenService
	hasher   *PasswordHasher
	resolver *Resolver
	gate     *rbac.Gate
	cfg      Config
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(
	users UserRepository,
	sessions SessionStore,
	provider SessionProvider,
	tokens *TokenService,
	hasher *PasswordHasher,
	resolver *Resolver,
	gate *rbac.Gate,
	cfg Config,
	logger *slog.Logger,
) *Service {
	if cfg.LoginTokenTTL <= 0 {
		cfg.LoginTokenTTL = internal.DefaultLoginTokenDuration
	}
	if cfg.SessionValidity <= 0 {
		cfg.SessionValidity = internal.DefaultSessionValidity
	}
	return &Service{
		users:    users,
		sessions: sessions,
		provider: provider,
		tokens:   tokens,
		hasher:   hasher,
		resolver: resolver,
		gate:     gate,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Login checks the password and issues a bearer token.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*TokenResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.ErrIncorrectLogin
	}

	record, err := s.users.FindByEmail(ctx, dto.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Error("login: user lookup failed", "error", err)
		}
		return nil, internal.ErrIncorrectLogin
	}

	u := user.FromDataModel(record)
	if !u.IsActive || !s.hasher.Verify(u.HashedPassword, dto.Password) {
		return nil, internal.ErrIncorrectLogin
	}

	token, err := s.tokens.Issue(u.Email, s.cfg.LoginTokenTTL)
	if err != nil {
		return nil, internal.NewInternalError("failed to issue token", err)
	}

	s.logger.Info("user logged in", "user_id", u.ID)
	return &TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// Register creates a password account on behalf of an administrator.
func (s *Service) Register(ctx context.Context, actor *internal.User, dto RegisterDTO) (*internal.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(actor, rbac.UserRegister); err != nil {
		return nil, err
	}

	_, err := s.users.FindByEmail(ctx, dto.Email)
	switch {
	case err == nil:
		return nil, internal.ErrEmailRegistered
	case !errors.Is(err, store.ErrNotFound):
		return nil, internal.NewInternalError("failed to check email", err)
	}

	hash, err := s.hasher.Hash(dto.Password)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	role, _ := internal.ParseRole(dto.Role)
	u := user.NewPasswordUser(dto.Name, dto.Email, hash, role, dto.DepartmentID, s.now().UTC())
	if err := s.users.Create(ctx, user.ToDataModel(u)); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return nil, internal.ErrEmailRegistered
		}
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user registered", "user_id", u.ID, "role", u.Role, "by", actor.ID)
	return u.Identity(), nil
}

// ProcessSession exchanges a provider session id for a local session,
// creating the user on first sign-in. Existing users are left unchanged.
func (s *Service) ProcessSession(ctx context.Context, sessionID string) (*SessionResult, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, internal.ErrSessionIDRequired
	}

	data, err := s.provider.Fetch(ctx, sessionID)
	if err != nil {
		s.logger.Warn("session exchange failed", "error", err)
		return nil, internal.ErrAuthenticationFail.WithCause(err)
	}
	if data.Email == "" || data.SessionToken == "" {
		return nil, internal.ErrAuthenticationFail.WithCause(errors.New("incomplete session data"))
	}

	u, err := s.findOrCreateExternalUser(ctx, data)
	if err != nil {
		return nil, internal.ErrAuthenticationFail.WithCause(err)
	}

	if _, err := s.sessions.Create(ctx, u.ID, data.SessionToken, s.cfg.SessionValidity); err != nil {
		return nil, internal.ErrAuthenticationFail.WithCause(err)
	}

	s.logger.Info("session established", "user_id", u.ID, "provider", user.ProviderGoogle)
	return &SessionResult{
		User:         u.Identity(),
		SessionToken: data.SessionToken,
		MaxAge:       int(s.cfg.SessionValidity / time.Second),
	}, nil
}

func (s *Service) findOrCreateExternalUser(ctx context.Context, data *SessionData) (*user.User, error) {
	record, err := s.users.FindByEmail(ctx, data.Email)
	if err == nil {
		return user.FromDataModel(record), nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	var avatar *string
	if data.Picture != "" {
		avatar = &data.Picture
	}
	u := user.NewExternalUser(data.Name, data.Email, avatar, s.now().UTC())
	if err := s.users.Create(ctx, user.ToDataModel(u)); err != nil {
		if !errors.Is(err, user.ErrEmailTaken) {
			return nil, err
		}
		// lost a race with a concurrent first sign-in
		record, err = s.users.FindByEmail(ctx, data.Email)
		if err != nil {
			return nil, err
		}
		return user.FromDataModel(record), nil
	}
	return u, nil
}

// Logout deactivates the session if one is given. It never fails.
func (s *Service) Logout(ctx context.Context, sessionToken string) {
	if sessionToken == "" {
		return
	}
	if err := s.sessions.Invalidate(ctx, sessionToken); err != nil {
		s.logger.Warn("logout: failed to invalidate session", "error", err)
	}
}

// SessionCheck reports whether the cookie session is valid. It never fails.
func (s *Service) SessionCheck(ctx context.Context, sessionToken string) SessionCheckResponse {
	if sessionToken == "" {
		return SessionCheckResponse{Authenticated: false}
	}
	u, err := s.resolver.FromSession(ctx, sessionToken)
	if err != nil {
		return SessionCheckResponse{Authenticated: false}
	}
	return SessionCheckResponse{Authenticated: true, User: u}
}
