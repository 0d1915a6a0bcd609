package plan

import (
	"time"

	"github.com/frahmantamala/planforge/internal/core/common/validation"
)

// CreatePlanDTO carries plan fields for create and full update. Status is
// only honoured on update.
type CreatePlanDTO struct {
	Name        string  `json:"name"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Description *string `json:"description"`
	Status      *string `json:"status,omitempty"`
}

func (d CreatePlanDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("start_date", d.StartDate).Required().Date()
	v.Field("end_date", d.EndDate).Required().Date()
	v.Field("status", d.Status).MaxLength(50)
	if err := v.Validate(); err != nil {
		return err
	}
	if err := validation.DateRange("start_date", d.StartDate, "end_date", d.EndDate); err != nil {
		return err
	}
	return nil
}

type PlanResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Status      string    `json:"status"`
	Description *string   `json:"description"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type PlansResponse []PlanResponse
