package category

import (
	"time"

	categoryDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/category"
	"github.com/google/uuid"
)

const StatusActive = "Active"

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewCategory(dto CreateCategoryDTO, createdBy string, now time.Time) *Category {
	return &Category{
		ID:          uuid.NewString(),
		Name:        dto.Name,
		Code:        dto.Code,
		Description: dto.Description,
		Status:      StatusActive,
		CreatedBy:   createdBy,
		CreatedAt:   now,
	}
}

func (c *Category) Apply(dto CreateCategoryDTO) {
	c.Name = dto.Name
	c.Code = dto.Code
	c.Description = dto.Description
}

func (c *Category) IsActive() bool {
	return c.Status == StatusActive
}

func ToDataModel(c *Category) *categoryDatamodel.Category {
	return &categoryDatamodel.Category{
		ID:          c.ID,
		Name:        c.Name,
		Code:        c.Code,
		Description: c.Description,
		Status:      c.Status,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt,
	}
}

func FromDataModel(c *categoryDatamodel.Category) *Category {
	return &Category{
		ID:          c.ID,
		Name:        c.Name,
		Code:        c.Code,
		Description: c.Description,
		Status:      c.Status,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt,
	}
}
