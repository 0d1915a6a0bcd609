package notification

import "time"

type Notification struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Title        string    `gorm:"column:title;not null"`
	Message      string    `gorm:"column:message;not null"`
	Type         string    `gorm:"column:type;not null"`
	Priority     string    `gorm:"column:priority;not null"`
	DepartmentID *string   `gorm:"column:department_id;size:36;index"`
	UserID       *string   `gorm:"column:user_id;size:36;index"`
	Read         bool      `gorm:"column:read;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"`
}

func (Notification) TableName() string {
	return "notifications"
}
