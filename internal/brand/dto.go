package brand

import "github.com/frahmantamala/planforge/internal/core/common/validation"

type CreateBrandDTO struct {
	Name            string  `json:"name"`
	Description     *string `json:"description"`
	ShortName       string  `json:"short_name"`
	SAPDivisionCode string  `json:"sap_division_code"`
	ArticleType     string  `json:"article_type"`
	MerchandiseCode string  `json:"merchandise_code"`
}

func (d CreateBrandDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("short_name", d.ShortName).Required().MaxLength(50)
	v.Field("sap_division_code", d.SAPDivisionCode).Required().MaxLength(50)
	v.Field("article_type", d.ArticleType).Required().MaxLength(100)
	v.Field("merchandise_code", d.MerchandiseCode).Required().MaxLength(50)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type BrandsResponse []*Brand
