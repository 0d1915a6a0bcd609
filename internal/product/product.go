package product

import (
	"time"

	productDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/product"
	"github.com/google/uuid"
)

const StatusActive = "Active"

type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	EANCode       string    `json:"ean_code"`
	CategoryID    string    `json:"category_id"`
	SubcategoryID string    `json:"subcategory_id"`
	BrandID       string    `json:"brand_id"`
	MRP           float64   `json:"mrp"`
	Status        string    `json:"status"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewProduct(dto CreateProductDTO, createdBy string, now time.Time) *Product {
	p := &Product{
		ID:        uuid.NewString(),
		Status:    StatusActive,
		CreatedBy: createdBy,
		CreatedAt: now,
	}
	p.Apply(dto)
	return p
}

// Apply copies a validated DTO onto the product.
func (p *Product) Apply(dto CreateProductDTO) {
	p.Name = dto.Name
	p.EANCode = dto.EANCode
	p.CategoryID = dto.CategoryID
	p.SubcategoryID = dto.SubcategoryID
	p.BrandID = dto.BrandID
	p.MRP = *dto.MRP
}

func ToDataModel(p *Product) *productDatamodel.Product {
	return &productDatamodel.Product{
		ID:            p.ID,
		Name:          p.Name,
		EANCode:       p.EANCode,
		CategoryID:    p.CategoryID,
		SubcategoryID: p.SubcategoryID,
		BrandID:       p.BrandID,
		MRP:           p.MRP,
		Status:        p.Status,
		CreatedBy:     p.CreatedBy,
		CreatedAt:     p.CreatedAt,
	}
}

func FromDataModel(p *productDatamodel.Product) *Product {
	return &Product{
		ID:            p.ID,
		Name:          p.Name,
		EANCode:       p.EANCode,
		CategoryID:    p.CategoryID,
		SubcategoryID: p.SubcategoryID,
		BrandID:       p.BrandID,
		MRP:           p.MRP,
		Status:        p.Status,
		CreatedBy:     p.CreatedBy,
		CreatedAt:     p.CreatedAt,
	}
}
