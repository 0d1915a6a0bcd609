package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	sessionDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/session"
	userDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/user"
	"github.com/frahmantamala/planforge/internal/core/store"
	"github.com/frahmantamala/planforge/internal/user"
)

type mockUserRepository struct {
	mu         sync.Mutex
	byID       map[string]*userDatamodel.User
	shouldFail bool
	failError  error
}

func newMockUserRepository(users ...*userDatamodel.User) *mockUserRepository {
	m := &mockUserRepository{byID: map[string]*userDatamodel.User{}}
	for _, u := range users {
		m.byID[u.ID] = u
	}
	return m
}

func (m *mockUserRepository) setError(err error) {
	m.shouldFail = true
	m.failError = err
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*userDatamodel.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shouldFail {
		return nil, m.failError
	}
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shouldFail {
		return nil, m.failError
	}
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *mockUserRepository) Create(ctx context.Context, u *userDatamodel.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shouldFail {
		return m.failError
	}
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	m.byID[u.ID] = u
	return nil
}

func (m *mockUserRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

type mockSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionDatamodel.Session
	now      func() time.Time
}

func newMockSessionStore(now func() time.Time) *mockSessionStore {
	return &mockSessionStore{sessions: map[string]*sessionDatamodel.Session{}, now: now}
}

func (m *mockSessionStore) Create(ctx context.Context, userID, token string, validity time.Duration) (*sessionDatamodel.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &sessionDatamodel.Session{
		ID:           "sess-" + token,
		UserID:       userID,
		SessionToken: token,
		ExpiresAt:    m.now().Add(validity),
		IsActive:     true,
		CreatedAt:    m.now(),
	}
	m.sessions[token] = s
	return s, nil
}

func (m *mockSessionStore) Invalidate(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[token]; ok {
		s.IsActive = false
	}
	return nil
}

func (m *mockSessionStore) FindActive(ctx context.Context, token string) (*sessionDatamodel.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok || !s.IsActive || !s.ExpiresAt.After(m.now()) {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

type mockProvider struct {
	data      *SessionData
	failError error
	calls     int
}

func (m *mockProvider) Fetch(ctx context.Context, sessionID string) (*SessionData, error) {
	m.calls++
	if m.failError != nil {
		return nil, m.failError
	}
	if m.data == nil {
		return nil, errors.New("session provider returned status 404")
	}
	return m.data, nil
}
