package planningdata

import "time"

type PlanningData struct {
	ID           string    `gorm:"primaryKey;size:36"`
	PlanID       string    `gorm:"column:plan_id;size:36;index;not null"`
	DepartmentID string    `gorm:"column:department_id;size:36;index;not null"`
	ProductID    string    `gorm:"column:product_id;size:36;not null"`
	Planned      float64   `gorm:"column:planned;not null"`
	Actual       float64   `gorm:"column:actual;not null"`
	Status       string    `gorm:"column:status;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

func (PlanningData) TableName() string {
	return "planning_data"
}
