package subcategory

import (
	"time"

	subcategoryDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/subcategory"
	"github.com/google/uuid"
)

const StatusActive = "Active"

type Subcategory struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	CategoryID  string    `json:"category_id"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewSubcategory(dto CreateSubcategoryDTO, createdBy string, now time.Time) *Subcategory {
	s := &Subcategory{
		ID:        uuid.NewString(),
		Status:    StatusActive,
		CreatedBy: createdBy,
		CreatedAt: now,
	}
	s.Apply(dto)
	return s
}

func (s *Subcategory) Apply(dto CreateSubcategoryDTO) {
	s.Name = dto.Name
	s.Code = dto.Code
	s.CategoryID = dto.CategoryID
	s.Description = dto.Description
}

func ToDataModel(s *Subcategory) *subcategoryDatamodel.Subcategory {
	return &subcategoryDatamodel.Subcategory{
		ID:          s.ID,
		Name:        s.Name,
		Code:        s.Code,
		CategoryID:  s.CategoryID,
		Description: s.Description,
		Status:      s.Status,
		CreatedBy:   s.CreatedBy,
		CreatedAt:   s.CreatedAt,
	}
}

func FromDataModel(s *subcategoryDatamodel.Subcategory) *Subcategory {
	return &Subcategory{
		ID:          s.ID,
		Name:        s.Name,
		Code:        s.Code,
		CategoryID:  s.CategoryID,
		Description: s.Description,
		Status:      s.Status,
		CreatedBy:   s.CreatedBy,
		CreatedAt:   s.CreatedAt,
	}
}
