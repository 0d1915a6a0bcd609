package planningdata

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/planforge/internal"
	"github.com/frahmantamala/planforge/internal/auth/rbac"
	planningdataDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/planningdata"
	"github.com/frahmantamala/planforge/internal/core/store"
)

type RepositoryAPI interface {
	Insert(ctx context.Context, p *planningdataDatamodel.PlanningData) error
	FindByID(ctx context.Context, id string) (*planningdataDatamodel.PlanningData, error)
	Find(ctx context.Context, filter store.Filter) ([]*planningdataDatamodel.PlanningData, error)
	Save(ctx context.Context, p *planningdataDatamodel.PlanningData) error
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

// List returns records of a plan and department. Users confined to a
// department only ever see that department, whatever they asked for.
func (s *Service) List(ctx context.Context, actor *internal.User, planID, departmentID string) (PlanningDataResponse, error) {
	filter := store.Filter{}
	if planID != "" {
		filter["plan_id"] = planID
	}
	if departmentID != "" {
		filter["department_id"] = departmentID
	}
	if scope, ok := s.gate.DepartmentScope(actor); ok {
		filter["department_id"] = scope
	}

	records, err := s.repo.Find(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list planning data", "error", err)
		return nil, internal.NewInternalError("failed to list planning data", err)
	}

	items := make(PlanningDataResponse, len(records))
	for i, r := range records {
		items[i] = FromDataModel(r)
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, actor *internal.User, id string) (*PlanningData, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "failed to load planning data")
	}
	if scope, ok := s.gate.DepartmentScope(actor); ok && scope != record.DepartmentID {
		return nil, internal.ErrDepartmentAccess
	}
	return FromDataModel(record), nil
}

func (s *Service) Create(ctx context.Context, actor *internal.User, dto CreatePlanningDataDTO) (*PlanningData, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.gate.AuthorizeDepartment(actor, rbac.PlanningDataCreate, dto.DepartmentID); err != nil {
		return nil, err
	}

	p := NewPlanningData(dto, s.now().UTC())
	if err := s.repo.Insert(ctx, ToDataModel(p)); err != nil {
		s.logger.Error("failed to create planning data", "error", err)
		return nil, internal.NewInternalError("failed to create planning data", err)
	}

	s.logger.Info("planning data created",
		"planning_data_id", p.ID,
		"plan_id", p.PlanID,
		"department_id", p.DepartmentID,
		"by", actor.ID)
	return p, nil
}

func (s *Service) Update(ctx context.Context, actor *internal.User, id string, dto UpdatePlanningDataDTO) (*PlanningData, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(actor, rbac.PlanningDataUpdate); err != nil {
		return nil, err
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "failed to load planning data")
	}
	if err := s.gate.AuthorizeDepartment(actor, rbac.PlanningDataUpdate, record.DepartmentID); err != nil {
		return nil, err
	}

	p := FromDataModel(record)
	p.Apply(dto, s.now().UTC())
	if err := s.repo.Save(ctx, ToDataModel(p)); err != nil {
		return nil, s.mapError(err, "failed to update planning data")
	}
	return p, nil
}

func (s *Service) mapError(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return internal.ErrPlanningDataNotFound
	}
	s.logger.Error(msg, "error", err)
	return internal.NewInternalError(msg, err)
}
