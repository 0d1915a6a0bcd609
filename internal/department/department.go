package department

import (
	"time"

	departmentDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/department"
	"github.com/google/uuid"
)

const StatusActive = "Active"

type Department struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewDepartment(dto CreateDepartmentDTO, createdBy string, now time.Time) *Department {
	return &Department{
		ID:          uuid.NewString(),
		Name:        dto.Name,
		Code:        dto.Code,
		Description: dto.Description,
		Status:      StatusActive,
		CreatedBy:   createdBy,
		CreatedAt:   now,
	}
}

// Apply replaces the editable fields. Identity, status and audit fields are kept.
func (d *Department) Apply(dto CreateDepartmentDTO) {
	d.Name = dto.Name
	d.Code = dto.Code
	d.Description = dto.Description
}

func ToDataModel(d *Department) *departmentDatamodel.Department {
	return &departmentDatamodel.Department{
		ID:          d.ID,
		Name:        d.Name,
		Code:        d.Code,
		Description: d.Description,
		Status:      d.Status,
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt,
	}
}

func FromDataModel(d *departmentDatamodel.Department) *Department {
	return &Department{
		ID:          d.ID,
		Name:        d.Name,
		Code:        d.Code,
		Description: d.Description,
		Status:      d.Status,
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt,
	}
}
