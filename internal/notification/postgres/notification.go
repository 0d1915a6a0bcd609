package postgres

import (
	"context"

	notificationDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/notification"
	"github.com/frahmantamala/planforge/internal/core/store"
	"github.com/frahmantamala/planforge/internal/notification"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	db   *gorm.DB
	coll *store.Collection[notificationDatamodel.Notification]
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{
		db:   db,
		coll: store.NewCollection[notificationDatamodel.Notification](db),
	}
}

func (r *NotificationRepository) Insert(ctx context.Context, n *notificationDatamodel.Notification) error {
	return r.coll.Insert(ctx, n)
}

func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*notificationDatamodel.Notification, error) {
	return r.coll.FindByID(ctx, id)
}

// ListFor returns what the audience may see, newest first. Users without a
// department only match personal and broadcast notifications.
func (r *NotificationRepository) ListFor(ctx context.Context, audience notification.Audience) ([]*notificationDatamodel.Notification, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if !audience.All {
		visible := r.db.Where("user_id = ?", audience.UserID).
			Or("user_id IS NULL AND department_id IS NULL")
		if audience.DepartmentID != nil {
			visible = visible.Or("department_id = ?", *audience.DepartmentID)
		}
		q = q.Where(visible)
	}

	items := make([]*notificationDatamodel.Notification, 0)
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&notificationDatamodel.Notification{}).
		Where("id = ?", id).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
