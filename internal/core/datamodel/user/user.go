package user

import "time"

type User struct {
	ID             string    `gorm:"primaryKey;size:36"`
	Name           string    `gorm:"column:name;not null"`
	Email          string    `gorm:"column:email;uniqueIndex;not null"`
	HashedPassword string    `gorm:"column:hashed_password"`
	Role           string    `gorm:"column:role;not null"`
	DepartmentID   *string   `gorm:"column:department_id;size:36"`
	Avatar         *string   `gorm:"column:avatar"`
	AuthProvider   string    `gorm:"column:auth_provider;not null"`
	IsActive       bool      `gorm:"column:is_active;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;not null"`
}

func (User) TableName() string {
	return "users"
}
