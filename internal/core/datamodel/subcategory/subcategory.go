package subcategory

import "time"

type Subcategory struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Name        string    `gorm:"column:name;not null"`
	Code        string    `gorm:"column:code;not null"`
	CategoryID  string    `gorm:"column:category_id;size:36;index;not null"`
	Description *string   `gorm:"column:description"`
	Status      string    `gorm:"column:status;not null"`
	CreatedBy   string    `gorm:"column:created_by;size:36"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
}

func (Subcategory) TableName() string {
	return "subcategories"
}
