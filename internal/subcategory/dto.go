package subcategory

import "github.com/frahmantamala/planforge/internal/core/common/validation"

type CreateSubcategoryDTO struct {
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	CategoryID  string  `json:"category_id"`
	Description *string `json:"description"`
}

func (d CreateSubcategoryDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("code", d.Code).Required().MaxLength(50)
	v.Field("category_id", d.CategoryID).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type SubcategoriesResponse []*Subcategory
