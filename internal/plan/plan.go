package plan

import (
	"time"

	"github.com/frahmantamala/planforge/internal/core/common/validation"
	planDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/plan"
	"github.com/google/uuid"
)

const StatusStarted = "started"

type Plan struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	StartDate   time.Time `json:"-"`
	EndDate     time.Time `json:"-"`
	Status      string    `json:"status"`
	Description *string   `json:"description"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewPlan builds a started plan. dto must already be validated.
func NewPlan(dto CreatePlanDTO, createdBy string, now time.Time) *Plan {
	p := &Plan{
		ID:        uuid.NewString(),
		Status:    StatusStarted,
		CreatedBy: createdBy,
		CreatedAt: now,
	}
	p.Apply(dto)
	return p
}

func (p *Plan) Apply(dto CreatePlanDTO) {
	p.Name = dto.Name
	p.StartDate, _ = validation.ParseDate(dto.StartDate)
	p.EndDate, _ = validation.ParseDate(dto.EndDate)
	p.Description = dto.Description
	if dto.Status != nil {
		p.Status = *dto.Status
	}
}

func (p *Plan) ToResponse() PlanResponse {
	return PlanResponse{
		ID:          p.ID,
		Name:        p.Name,
		StartDate:   formatDate(p.StartDate),
		EndDate:     formatDate(p.EndDate),
		Status:      p.Status,
		Description: p.Description,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
	}
}

// formatDate prints calendar dates without a clock and anything else as RFC 3339.
func formatDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(validation.DateLayout)
	}
	return t.Format(time.RFC3339)
}

func ToDataModel(p *Plan) *planDatamodel.Plan {
	return &planDatamodel.Plan{
		ID:          p.ID,
		Name:        p.Name,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Status:      p.Status,
		Description: p.Description,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
	}
}

func FromDataModel(p *planDatamodel.Plan) *Plan {
	return &Plan{
		ID:          p.ID,
		Name:        p.Name,
		StartDate:   p.StartDate.UTC(),
		EndDate:     p.EndDate.UTC(),
		Status:      p.Status,
		Description: p.Description,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
	}
}
