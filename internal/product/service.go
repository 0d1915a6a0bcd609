package product

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/planforge/internal"
	"github.com/frahmantamala/planforge/internal/auth/rbac"
	productDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/product"
	"github.com/frahmantamala/planforge/internal/core/store"
)

type RepositoryAPI interface {
	Insert(ctx context.Context, p *productDatamodel.Product) error
	FindByID(ctx context.Context, id string) (*productDatamodel.Product, error)
	Find(ctx context.Context, filter store.Filter) ([]*productDatamodel.Product, error)
	Save(ctx context.Context, p *productDatamodel.Product) error
	DeleteByID(ctx context.Context, id string) error
}

// ListFilter narrows a product listing. Empty fields match everything.
type ListFilter struct {
	CategoryID    string
	SubcategoryID string
	BrandID       string
}

func (f ListFilter) toStore() store.Filter {
	filter := store.Filter{}
	if f.CategoryID != "" {
		filter["category_id"] = f.CategoryID
	}
	if f.SubcategoryID != "" {
		filter["subcategory_id"] = f.SubcategoryID
	}
	if f.BrandID != "" {
		filter["brand_id"] = f.BrandID
	}
	return filter
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

func (s *Service) List(ctx context.Context, filter ListFilter) (ProductsResponse, error) {
	records, err := s.repo.Find(ctx, filter.toStore())
	if err != nil {
		s.logger.Error("failed to list products", "error", err)
		return nil, internal.NewInternalError("failed to list products", err)
	}

	products := make(ProductsResponse, len(records))
	for i, r := range records {
		products[i] = FromDataModel(r)
	}
	return products, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "failed to load product")
	}
	return FromDataModel(record), nil
}

func (s *Service) Create(ctx context.Context, actor *internal.User, dto CreateProductDTO) (*Product, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(actor, rbac.ProductCreate); err != nil {
		return nil, err
	}

	p := NewProduct(dto, actor.ID, s.now().UTC())
	if err := s.repo.Insert(ctx, ToDataModel(p)); err != nil {
		s.logger.Error("failed to create product", "error", err)
		return nil, internal.NewInternalError("failed to create product", err)
	}

	s.logger.Info("product created", "product_id", p.ID, "ean_code", p.EANCode, "by", actor.ID)
	return p, nil
}

func (s *Service) Update(ctx context.Context, actor *internal.User, id string, dto CreateProductDTO) (*Product, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(actor, rbac.ProductUpdate); err != nil {
		return nil, err
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "failed to load product")
	}

	p := FromDataModel(record)
	p.Apply(dto)
	if err := s.repo.Save(ctx, ToDataModel(p)); err != nil {
		return nil, s.mapError(err, "failed to update product")
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, actor *internal.User, id string) error {
	if err := s.gate.Authorize(actor, rbac.ProductDelete); err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return s.mapError(err, "failed to delete product")
	}
	s.logger.Info("product deleted", "product_id", id, "by", actor.ID)
	return nil
}

func (s *Service) mapError(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return internal.ErrProductNotFound
	}
	s.logger.Error(msg, "error", err)
	return internal.NewInternalError(msg, err)
}
