package plan

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/planforge/internal"
	"github.com/frahmantamala/planforge/internal/auth/rbac"
	planDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/plan"
	"github.com/frahmantamala/planforge/internal/core/store"
)

type RepositoryAPI interface {
	Insert(ctx context.Context, p *planDatamodel.Plan) error
	FindByID(ctx context.Context, id string) (*planDatamodel.Plan, error)
	Find(ctx context.Context, filter store.Filter) ([]*planDatamodel.Plan, error)
	Save(ctx context.Context, p *planDatamodel.Plan) error
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

func (s *Service) List(ctx context.Context, status string) (PlansResponse, error) {
	filter := store.Filter{}
	if status != "" {
		filter["status"] = status
	}

	records, err := s.repo.Find(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list plans", "error", err)
		return nil, internal.NewInternalError("failed to list plans", err)
	}

	plans := make(PlansResponse, len(records))
	for i, r := range records {
		plans[i] = FromDataModel(r).ToResponse()
	}
	return plans, nil
}

func (s *Service) Get(ctx context.Context, id string) (*PlanResponse, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "failed to load plan")
	}
	resp := FromDataModel(record).ToResponse()
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, actor *internal.User, dto CreatePlanDTO) (*PlanResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(actor, rbac.PlanCreate); err != nil {
		return nil, err
	}

	dto.Status = nil
	p := NewPlan(dto, actor.ID, s.now().UTC())
	if err := s.repo.Insert(ctx, ToDataModel(p)); err != nil {
		s.logger.Error("failed to create plan", "error", err)
		return nil, internal.NewInternalError("failed to create plan", err)
	}

	s.logger.Info("plan created", "plan_id", p.ID, "by", actor.ID)
	resp := p.ToResponse()
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, actor *internal.User, id string, dto CreatePlanDTO) (*PlanResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(actor, rbac.PlanUpdate); err != nil {
		return nil, err
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "failed to load plan")
	}

	p := FromDataModel(record)
	p.Apply(dto)
	if err := s.repo.Save(ctx, ToDataModel(p)); err != nil {
		return nil, s.mapError(err, "failed to update plan")
	}
	resp := p.ToResponse()
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, actor *internal.User, id string) error {
	if err := s.gate.Authorize(actor, rbac.PlanDelete); err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return s.mapError(err, "failed to delete plan")
	}
	s.logger.Info("plan deleted", "plan_id", id, "by", actor.ID)
	return nil
}

func (s *Service) mapError(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return internal.ErrPlanNotFound
	}
	s.logger.Error(msg, "error", err)
	return internal.NewInternalError(msg, err)
}
