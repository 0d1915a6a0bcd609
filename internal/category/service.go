package category

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/planforge/internal"
	"github.com/frahmantamala/planforge/internal/auth/rbac"
	categoryDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/category"
	"github.com/frahmantamala/planforge/internal/core/store"
)

type RepositoryAPI interface {
	Insert(ctx context.Context, c *categoryDatamodel.Category) error
	FindByID(ctx context.Context, id string) (*categoryDatamodel.Category, error)
	Find(ctx context.Context, filter store.Filter) ([]*categoryDatamodel.Category, error)
	Save(ctx context.Context, c *categoryDatamodel.Category) error
	DeleteByID(ctx context.Context, id string) error
}

type Service struct {
	repo   RepositoryAPI
	gate   *rbac.Gate
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, gate *rbac.Gate, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		gate:   gate,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) List(ctx context.Context) (CategoriesResponse, error) {
	records, err := s.repo.Find(ctx, nil)
	if err != nil {
		s.logger.Error("failed to get categories from repository", "error", err)
		return nil, internal.NewInternalError("failed to list categories", err)
	}

	categories := make(CategoriesResponse, len(records))
	for i, r := range records {
		categories[i] = FromDataModel(r)
	}

	s.logger.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Category, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "failed to load category")
	}
	return FromDataModel(record), nil
}

func (s *Service) Create(ctx context.Context, actor *internal.User, dto CreateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(actor, rbac.CategoryCreate); err != nil {
		return nil, err
	}

	c := NewCategory(dto, actor.ID, s.now().UTC())
	if err := s.repo.Insert(ctx, ToDataModel(c)); err != nil {
		s.logger.Error("failed to create category", "error", err)
		return nil, internal.NewInternalError("failed to create category", err)
	}

	s.logger.Info("category created", "category_id", c.ID, "code", c.Code, "by", actor.ID)
	return c, nil
}

func (s *Service) Update(ctx context.Context, actor *internal.User, id string, dto CreateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(actor, rbac.CategoryUpdate); err != nil {
		return nil, err
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "failed to load category")
	}

	c := FromDataModel(record)
	c.Apply(dto)
	if err := s.repo.Save(ctx, ToDataModel(c)); err != nil {
		return nil, s.mapError(err, "failed to update category")
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, actor *internal.User, id string) error {
	if err := s.gate.Authorize(actor, rbac.CategoryDelete); err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return s.mapError(err, "failed to delete category")
	}
	s.logger.Info("category deleted", "category_id", id, "by", actor.ID)
	return nil
}

// Exists reports whether id names an active category.
func (s *Service) Exists(ctx context.Context, id string) bool {
	c, err := s.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, internal.ErrCategoryNotFound) {
			s.logger.Warn("error checking category", "category_id", id, "error", err)
		}
		return false
	}
	return c.IsActive()
}

func (s *Service) mapError(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return internal.ErrCategoryNotFound
	}
	s.logger.Error(msg, "error", err)
	return internal.NewInternalError(msg, err)
}
