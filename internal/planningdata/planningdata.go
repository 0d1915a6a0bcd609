package planningdata

import (
	"time"

	planningdataDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/planningdata"
	"github.com/google/uuid"
)

const StatusPending = "pending"

// PlanningData is one department's planned and actual figure for a product
// within a plan.
type PlanningData struct {
	ID           string    `json:"id"`
	PlanID       string    `json:"plan_id"`
	DepartmentID string    `json:"department_id"`
	ProductID    string    `json:"product_id"`
	Planned      float64   `json:"planned"`
	Actual       float64   `json:"actual"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewPlanningData(dto CreatePlanningDataDTO, now time.Time) *PlanningData {
	return &PlanningData{
		ID:           uuid.NewString(),
		PlanID:       dto.PlanID,
		DepartmentID: dto.DepartmentID,
		ProductID:    dto.ProductID,
		Planned:      *dto.Planned,
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Apply copies the supplied fields and refreshes UpdatedAt even when nothing changed.
func (p *PlanningData) Apply(dto UpdatePlanningDataDTO, now time.Time) {
	if dto.Planned != nil {
		p.Planned = *dto.Planned
	}
	if dto.Actual != nil {
		p.Actual = *dto.Actual
	}
	if dto.Status != nil {
		p.Status = *dto.Status
	}
	p.UpdatedAt = now
}

func ToDataModel(p *PlanningData) *planningdataDatamodel.PlanningData {
	return &planningdataDatamodel.PlanningData{
		ID:           p.ID,
		PlanID:       p.PlanID,
		DepartmentID: p.DepartmentID,
		ProductID:    p.ProductID,
		Planned:      p.Planned,
		Actual:       p.Actual,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func FromDataModel(p *planningdataDatamodel.PlanningData) *PlanningData {
	return &PlanningData{
		ID:           p.ID,
		PlanID:       p.PlanID,
		DepartmentID: p.DepartmentID,
		ProductID:    p.ProductID,
		Planned:      p.Planned,
		Actual:       p.Actual,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
