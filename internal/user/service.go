package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/frahmantamala/planforge/internal"
	"github.com/frahmantamala/planforge/internal/auth/rbac"
	userDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/user"
	"github.com/frahmantamala/planforge/internal/core/store"
)

type RepositoryAPI interface {
	FindByID(ctx context.Context, id string) (*userDatamodel.User, error)
	FindByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	Create(ctx context.Context, u *userDatamodel.User) error
	List(ctx context.Context) ([]*userDatamodel.User, error)
}

type Service struct {
	repo   RepositoryAPI
	gate   *rbac.Gate
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, gate *rbac.Gate, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		gate:   gate,
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context, actor *internal.User) (UsersResponse, error) {
	if err := s.gate.Authorize(actor, rbac.UserList); err != nil {
		return nil, err
	}

	records, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("failed to list users", err)
	}

	users := make([]*User, len(records))
	for i, r := range records {
		users[i] = FromDataModel(r)
	}
	return toResponses(users), nil
}

// Get returns a single user. Users may always read their own record.
func (s *Service) Get(ctx context.Context, actor *internal.User, id string) (*internal.User, error) {
	if err := s.gate.AuthorizeSelfOr(actor, rbac.UserRead, id); err != nil {
		return nil, err
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, internal.ErrUserNotFound
		}
		s.logger.Error("failed to load user", "user_id", id, "error", err)
		return nil, internal.NewInternalError("failed to load user", err)
	}
	return FromDataModel(record).Identity(), nil
}
