package product

import "time"

type Product struct {
	ID            string    `gorm:"primaryKey;size:36"`
	Name          string    `gorm:"column:name;not null"`
	EANCode       string    `gorm:"column:ean_code;not null"`
	CategoryID    string    `gorm:"column:category_id;size:36;not null"`
	SubcategoryID string    `gorm:"column:subcategory_id;size:36;not null"`
	BrandID       string    `gorm:"column:brand_id;size:36;not null"`
	MRP           float64   `gorm:"column:mrp;not null"`
	Status        string    `gorm:"column:status;not null"`
	CreatedBy     string    `gorm:"column:created_by;size:36"`
	CreatedAt     time.Time `gorm:"column:created_at;not null"`
}

func (Product) TableName() string {
	return "products"
}
