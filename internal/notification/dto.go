package notification

import "github.com/frahmantamala/planforge/internal/core/common/validation"

type CreateNotificationDTO struct {
	Title        string  `json:"title"`
	Message      string  `json:"message"`
	Type         *string `json:"type"`
	Priority     *string `json:"priority"`
	DepartmentID *string `json:"department_id"`
	UserID       *string `json:"user_id"`
}

func (d CreateNotificationDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("title", d.Title).Required().MaxLength(200)
	v.Field("message", d.Message).Required()
	v.Field("type", d.Type).OneOf(TypeInfo, TypeSuccess, TypeWarning, TypeError)
	v.Field("priority", d.Priority).OneOf(PriorityLow, PriorityMedium, PriorityHigh)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type NotificationsResponse []*Notification
