package subcategory

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/planforge/internal"
	"github.com/frahmantamala/planforge/internal/auth/rbac"
	subcategoryDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/subcategory"
	"github.com/frahmantamala/planforge/internal/core/store"
)

type RepositoryAPI interface {
	Insert(ctx context.Context, s *subcategoryDatamodel.Subcategory) error
	FindByID(ctx context.Context, id string) (*subcategoryDatamodel.Subcategory, error)
	Find(ctx context.Context, filter store.Filter) ([]*subcategoryDatamodel.Subcategory, error)
	Save(ctx context.Context, s *subcategoryDatamodel.Subcategory) error
	DeleteByID(ctx context.Context, id string) error
}

// CategoryChecker confirms that a parent category exists.
type CategoryChecker interface {
	Exists(ctx context.Context, id string) bool
}

var errUnknownCategory = internal.NewValidationFieldError("category_id", "category_id does not reference an existing category", internal.ErrCodeValidationFailed)

type Service struct {
	repo       RepositoryAPI
	categories CategoryChecker
	gate       *rbac.Gate
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(repo RepositoryAPI, categories CategoryChecker, gate *rbac.Gate, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		gate:       gate,
		logger:     logger,
		now:        time.Now,
	}
}

// List returns all subcategories, or those of one category when categoryID is set.
func (s *Service) List(ctx context.Context, categoryID string) (SubcategoriesResponse, error) {
	filter := store.Filter{}
	if categoryID != "" {
		filter["category_id"] = categoryID
	}

	records, err := s.repo.Find(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list subcategories", "error", err)
		return nil, internal.NewInternalError("failed to list subcategories", err)
	}

	subcategories := make(SubcategoriesResponse, len(records))
	for i, r := range records {
		subcategories[i] = FromDataModel(r)
	}
	return subcategories, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Subcategory, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "failed to load subcategory")
	}
	return FromDataModel(record), nil
}

func (s *Service) Create(ctx context.Context, actor *internal.User, dto CreateSubcategoryDTO) (*Subcategory, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(actor, rbac.SubcategoryCreate); err != nil {
		return nil, err
	}
	if !s.categories.Exists(ctx, dto.CategoryID) {
		return nil, errUnknownCategory
	}

	sub := NewSubcategory(dto, actor.ID, s.now().UTC())
	if err := s.repo.Insert(ctx, ToDataModel(sub)); err != nil {
		s.logger.Error("failed to create subcategory", "error", err)
		return nil, internal.NewInternalError("failed to create subcategory", err)
	}

	s.logger.Info("subcategory created", "subcategory_id", sub.ID, "category_id", sub.CategoryID, "by", actor.ID)
	return sub, nil
}

func (s *Service) Update(ctx context.Context, actor *internal.User, id string, dto CreateSubcategoryDTO) (*Subcategory, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(actor, rbac.SubcategoryUpdate); err != nil {
		return nil, err
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "failed to load subcategory")
	}
	if record.CategoryID != dto.CategoryID && !s.categories.Exists(ctx, dto.CategoryID) {
		return nil, errUnknownCategory
	}

	sub := FromDataModel(record)
	sub.Apply(dto)
	if err := s.repo.Save(ctx, ToDataModel(sub)); err != nil {
		return nil, s.mapError(err, "failed to update subcategory")
	}
	return sub, nil
}

func (s *Service) Delete(ctx context.Context, actor *internal.User, id string) error {
	if err := s.gate.Authorize(actor, rbac.SubcategoryDelete); err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return s.mapError(err, "failed to delete subcategory")
	}
	s.logger.Info("subcategory deleted", "subcategory_id", id, "by", actor.ID)
	return nil
}

func (s *Service) mapError(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return internal.ErrSubcategoryNotFound
	}
	s.logger.Error(msg, "error", err)
	return internal.NewInternalError(msg, err)
}
