package plan

import "time"

type Plan struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Name        string    `gorm:"column:name;not null"`
	StartDate   time.Time `gorm:"column:start_date;not null"`
	EndDate     time.Time `gorm:"column:end_date;not null"`
	Status      string    `gorm:"column:status;not null"`
	Description *string   `gorm:"column:description"`
	CreatedBy   string    `gorm:"column:created_by;size:36"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
}

func (Plan) TableName() string {
	return "plans"
}
