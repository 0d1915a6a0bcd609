package category

import "time"

type Category struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Name        string    `gorm:"column:name;not null"`
	Code        string    `gorm:"column:code;not null"`
	Description *string   `gorm:"column:description"`
	Status      string    `gorm:"column:status;not null"`
	CreatedBy   string    `gorm:"column:created_by;size:36"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
}

func (Category) TableName() string {
	return "categories"
}
