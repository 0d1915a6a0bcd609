package planrequest

import "time"

// PlanRequest asks a department to submit figures for a plan. It is persisted
// and migrated but not yet exposed over HTTP.
type PlanRequest struct {
	ID           string     `gorm:"primaryKey;size:36"`
	PlanID       string     `gorm:"column:plan_id;size:36;not null"`
	DepartmentID string     `gorm:"column:department_id;size:36;not null"`
	Status       string     `gorm:"column:status;not null"`
	Message      *string    `gorm:"column:message"`
	RequestedAt  time.Time  `gorm:"column:requested_at;not null"`
	SubmittedAt  *time.Time `gorm:"column:submitted_at"`
	SubmittedBy  *string    `gorm:"column:submitted_by;size:36"`
}

func (PlanRequest) TableName() string {
	return "plan_requests"
}
