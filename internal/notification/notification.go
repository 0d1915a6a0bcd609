package notification

import (
	"time"

	"github.com/frahmantamala/planforge/internal"
	notificationDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/notification"
	"github.com/google/uuid"
)

const (
	TypeInfo    = "info"
	TypeSuccess = "success"
	TypeWarning = "warning"
	TypeError   = "error"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Notification targets one user, one department, or everyone when both are nil.
type Notification struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	Type         string    `json:"type"`
	Priority     string    `json:"priority"`
	DepartmentID *string   `json:"department_id"`
	UserID       *string   `json:"user_id"`
	Read         bool      `json:"read"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewNotification(dto CreateNotificationDTO, now time.Time) *Notification {
	n := &Notification{
		ID:           uuid.NewString(),
		Title:        dto.Title,
		Message:      dto.Message,
		Type:         TypeInfo,
		Priority:     PriorityMedium,
		DepartmentID: dto.DepartmentID,
		UserID:       dto.UserID,
		CreatedAt:    now,
	}
	if dto.Type != nil && *dto.Type != "" {
		n.Type = *dto.Type
	}
	if dto.Priority != nil && *dto.Priority != "" {
		n.Priority = *dto.Priority
	}
	return n
}

func (n *Notification) Broadcast() bool {
	return n.UserID == nil && n.DepartmentID == nil
}

// VisibleTo reports whether u is a recipient. Admins see everything.
func (n *Notification) VisibleTo(u *internal.User) bool {
	switch {
	case u == nil:
		return false
	case u.Role.IsAdmin(), n.Broadcast():
		return true
	case n.UserID != nil && *n.UserID == u.ID:
		return true
	case n.DepartmentID != nil && u.InDepartment(*n.DepartmentID):
		return true
	}
	return false
}

// Audience describes which notifications a listing may return.
type Audience struct {
	All          bool
	UserID       string
	DepartmentID *string
}

func AudienceOf(u *internal.User) Audience {
	if u.Role.IsAdmin() {
		return Audience{All: true}
	}
	return Audience{UserID: u.ID, DepartmentID: u.DepartmentID}
}

func ToDataModel(n *Notification) *notificationDatamodel.Notification {
	return &notificationDatamodel.Notification{
		ID:           n.ID,
		Title:        n.Title,
		Message:      n.Message,
		Type:         n.Type,
		Priority:     n.Priority,
		DepartmentID: n.DepartmentID,
		UserID:       n.UserID,
		Read:         n.Read,
		CreatedAt:    n.CreatedAt,
	}
}

func FromDataModel(n *notificationDatamodel.Notification) *Notification {
	return &Notification{
		ID:           n.ID,
		Title:        n.Title,
		Message:      n.Message,
		Type:         n.Type,
		Priority:     n.Priority,
		DepartmentID: n.DepartmentID,
		UserID:       n.UserID,
		Read:         n.Read,
		CreatedAt:    n.CreatedAt,
	}
}
