package planningdata

import "github.com/frahmantamala/planforge/internal/core/common/validation"

type CreatePlanningDataDTO struct {
	PlanID       string   `json:"plan_id"`
	DepartmentID string   `json:"department_id"`
	ProductID    string   `json:"product_id"`
	Planned      *float64 `json:"planned"`
}

func (d CreatePlanningDataDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("plan_id", d.PlanID).Required()
	v.Field("department_id", d.DepartmentID).Required()
	v.Field("product_id", d.ProductID).Required()
	v.Field("planned", d.Planned).Required().NonNegative()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdatePlanningDataDTO is a partial update; nil fields are left unchanged.
type UpdatePlanningDataDTO struct {
	Planned *float64 `json:"planned"`
	Actual  *float64 `json:"actual"`
	Status  *string  `json:"status"`
}

func (d UpdatePlanningDataDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("planned", d.Planned).NonNegative()
	v.Field("actual", d.Actual).NonNegative()
	v.Field("status", d.Status).MaxLength(50)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type PlanningDataResponse []*PlanningData
