package brand

import "time"

type Brand struct {
	ID              string    `gorm:"primaryKey;size:36"`
	BrandID         string    `gorm:"column:brand_id;size:36;not null"`
	Name            string    `gorm:"column:name;not null"`
	Description     *string   `gorm:"column:description"`
	ShortName       string    `gorm:"column:short_name;not null"`
	SAPDivisionCode string    `gorm:"column:sap_division_code;not null"`
	ArticleType     string    `gorm:"column:article_type;not null"`
	MerchandiseCode string    `gorm:"column:merchandise_code;not null"`
	Status          string    `gorm:"column:status;not null"`
	CreatedBy       string    `gorm:"column:created_by;size:36"`
	CreatedAt       time.Time `gorm:"column:created_at;not null"`
}

func (Brand) TableName() string {
	return "brands"
}
