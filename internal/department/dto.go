package department

import "github.com/frahmantamala/planforge/internal/core/common/validation"

// CreateDepartmentDTO is used for both create and full update.
type CreateDepartmentDTO struct {
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description *string `json:"description"`
}

func (d CreateDepartmentDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("code", d.Code).Required().MaxLength(50)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type DepartmentsResponse []*Department
