package brand

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/planforge/internal"
	"github.com/frahmantamala/planforge/internal/auth/rbac"
	brandDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/brand"
	"github.com/frahmantamala/planforge/internal/core/store"
)

type RepositoryAPI interface {
	Insert(ctx context.Context, b *brandDatamodel.Brand) error
	FindByID(ctx context.Context, id string) (*brandDatamodel.Brand, error)
	Find(ctx context.Context, filter store.Filter) ([]*brandDatamodel.Brand, error)
	Save(ctx context.Context, b *brandDatamodel.Brand) error
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

func (s *Service) List(ctx context.Context) (BrandsResponse, error) {
	records, err := s.repo.Find(ctx, nil)
	if err != nil {
		s.logger.Error("failed to list brands", "error", err)
		return nil, internal.NewInternalError("failed to list brands", err)
	}

	brands := make(BrandsResponse, len(records))
	for i, r := range records {
		brands[i] = FromDataModel(r)
	}
	return brands, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Brand, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "failed to load brand")
	}
	return FromDataModel(record), nil
}

func (s *Service) Create(ctx context.Context, actor *internal.User, dto CreateBrandDTO) (*Brand, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(actor, rbac.BrandCreate); err != nil {
		return nil, err
	}

	b := NewBrand(dto, actor.ID, s.now().UTC())
	if err := s.repo.Insert(ctx, ToDataModel(b)); err != nil {
		s.logger.Error("failed to create brand", "error", err)
		return nil, internal.NewInternalError("failed to create brand", err)
	}

	s.logger.Info("brand created", "brand_id", b.ID, "by", actor.ID)
	return b, nil
}

func (s *Service) Update(ctx context.Context, actor *internal.User, id string, dto CreateBrandDTO) (*Brand, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(actor, rbac.BrandUpdate); err != nil {
		return nil, err
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "failed to load brand")
	}

	b := FromDataModel(record)
	b.Apply(dto)
	if err := s.repo.Save(ctx, ToDataModel(b)); err != nil {
		return nil, s.mapError(err, "failed to update brand")
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, actor *internal.User, id string) error {
	if err := s.gate.Authorize(actor, rbac.BrandDelete); err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return s.mapError(err, "failed to delete brand")
	}
	s.logger.Info("brand deleted", "brand_id", id, "by", actor.ID)
	return nil
}

// RemoveIncomplete deletes brands missing any required descriptive field and
// returns how many were removed. It is a maintenance operation run from the CLI.
func (s *Service) RemoveIncomplete(ctx context.Context) (int, error) {
	records, err := s.repo.Find(ctx, nil)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, r := range records {
		b := FromDataModel(r)
		if b.Complete() {
			continue
		}
		if err := s.repo.DeleteByID(ctx, b.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return removed, err
		}
		s.logger.Info("removed incomplete brand", "brand_id", b.ID, "name", b.Name)
		removed++
	}
	return removed, nil
}

func (s *Service) mapError(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return internal.ErrBrandNotFound
	}
	s.logger.Error(msg, "error", err)
	return internal.NewInternalError(msg, err)
}
