package session

import "time"

type Session struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       string    `gorm:"column:user_id;size:36;index;not null" json:"user_id"`
	SessionToken string    `gorm:"column:session_token;uniqueIndex;not null" json:"session_token"`
	ExpiresAt    time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
	IsActive     bool      `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt    time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (Session) TableName() string {
	return "sessions"
}
