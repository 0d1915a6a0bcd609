package brand

import (
	"time"

	brandDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/brand"
	"github.com/google/uuid"
)

const StatusActive = "Active"

// Brand mirrors its id into BrandID, which older clients read.
type Brand struct {
	ID              string    `json:"id"`
	BrandID         string    `json:"brand_id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	ShortName       string    `json:"short_name"`
	SAPDivisionCode string    `json:"sap_division_code"`
	ArticleType     string    `json:"article_type"`
	MerchandiseCode string    `json:"merchandise_code"`
	Status          string    `json:"status"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewBrand(dto CreateBrandDTO, createdBy string, now time.Time) *Brand {
	id := uuid.NewString()
	b := &Brand{
		ID:        id,
		BrandID:   id,
		Status:    StatusActive,
		CreatedBy: createdBy,
		CreatedAt: now,
	}
	b.Apply(dto)
	return b
}

func (b *Brand) Apply(dto CreateBrandDTO) {
	b.Name = dto.Name
	b.Description = dto.Description
	b.ShortName = dto.ShortName
	b.SAPDivisionCode = dto.SAPDivisionCode
	b.ArticleType = dto.ArticleType
	b.MerchandiseCode = dto.MerchandiseCode
}

// Complete reports whether every descriptive field is filled in.
func (b *Brand) Complete() bool {
	return b.Name != "" && b.ShortName != "" && b.SAPDivisionCode != "" &&
		b.ArticleType != "" && b.MerchandiseCode != ""
}

func ToDataModel(b *Brand) *brandDatamodel.Brand {
	return &brandDatamodel.Brand{
		ID:              b.ID,
		BrandID:         b.BrandID,
		Name:            b.Name,
		Description:     b.Description,
		ShortName:       b.ShortName,
		SAPDivisionCode: b.SAPDivisionCode,
		ArticleType:     b.ArticleType,
		MerchandiseCode: b.MerchandiseCode,
		Status:          b.Status,
		CreatedBy:       b.CreatedBy,
		CreatedAt:       b.CreatedAt,
	}
}

func FromDataModel(b *brandDatamodel.Brand) *Brand {
	brandID := b.BrandID
	if brandID == "" {
		brandID = b.ID
	}
	return &Brand{
		ID:              b.ID,
		BrandID:         brandID,
		Name:            b.Name,
		Description:     b.Description,
		ShortName:       b.ShortName,
		SAPDivisionCode: b.SAPDivisionCode,
		ArticleType:     b.ArticleType,
		MerchandiseCode: b.MerchandiseCode,
		Status:          b.Status,
		CreatedBy:       b.CreatedBy,
		CreatedAt:       b.CreatedAt,
	}
}
