package department

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/planforge/internal"
	"github.com/frahmantamala/planforge/internal/auth/rbac"
	departmentDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/department"
	"github.com/frahmantamala/planforge/internal/core/store"
)

type RepositoryAPI interface {
	Insert(ctx context.Context, d *departmentDatamodel.Department) error
	FindByID(ctx context.Context, id string) (*departmentDatamodel.Department, error)
	Find(ctx context.Context, filter store.Filter) ([]*departmentDatamodel.Department, error)
	Save(ctx context.Context, d *departmentDatamodel.Department) error
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

func (s *Service) List(ctx context.Context) (DepartmentsResponse, error) {
	records, err := s.repo.Find(ctx, nil)
	if err != nil {
		s.logger.Error("failed to list departments", "error", err)
		return nil, internal.NewInternalError("failed to list departments", err)
	}

	departments := make(DepartmentsResponse, len(records))
	for i, r := range records {
		departments[i] = FromDataModel(r)
	}
	return departments, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Department, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "failed to load department")
	}
	return FromDataModel(record), nil
}

func (s *Service) Create(ctx context.Context, actor *internal.User, dto CreateDepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(actor, rbac.DepartmentCreate); err != nil {
		return nil, err
	}

	d := NewDepartment(dto, actor.ID, s.now().UTC())
	if err := s.repo.Insert(ctx, ToDataModel(d)); err != nil {
		s.logger.Error("failed to create department", "error", err)
		return nil, internal.NewInternalError("failed to create department", err)
	}

	s.logger.Info("department created", "department_id", d.ID, "code", d.Code, "by", actor.ID)
	return d, nil
}

func (s *Service) Update(ctx context.Context, actor *internal.User, id string, dto CreateDepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(actor, rbac.DepartmentUpdate); err != nil {
		return nil, err
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "failed to load department")
	}

	d := FromDataModel(record)
	d.Apply(dto)
	if err := s.repo.Save(ctx, ToDataModel(d)); err != nil {
		return nil, s.mapError(err, "failed to update department")
	}
	return d, nil
}

func (s *Service) Delete(ctx context.Context, actor *internal.User, id string) error {
	if err := s.gate.Authorize(actor, rbac.DepartmentDelete); err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return s.mapError(err, "failed to delete department")
	}
	s.logger.Info("department deleted", "department_id", id, "by", actor.ID)
	return nil
}

func (s *Service) mapError(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return internal.ErrDepartmentNotFound
	}
	s.logger.Error(msg, "error", err)
	return internal.NewInternalError(msg, err)
}
