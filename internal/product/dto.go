package product

import "github.com/frahmantamala/planforge/internal/core/common/validation"

type CreateProductDTO struct {
	Name          string   `json:"name"`
	EANCode       string   `json:"ean_code"`
	CategoryID    string   `json:"category_id"`
	SubcategoryID string   `json:"subcategory_id"`
	BrandID       string   `json:"brand_id"`
	MRP           *float64 `json:"mrp"`
}

func (d CreateProductDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("ean_code", d.EANCode).Required().MaxLength(20)
	v.Field("category_id", d.CategoryID).Required()
	v.Field("subcategory_id", d.SubcategoryID).Required()
	v.Field("brand_id", d.BrandID).Required()
	v.Field("mrp", d.MRP).Required().NonNegative()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type ProductsResponse []*Product
