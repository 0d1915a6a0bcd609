package notification

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/planforge/internal"
	"github.com/frahmantamala/planforge/internal/auth/rbac"
	notificationDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/notification"
	"github.com/frahmantamala/planforge/internal/core/store"
)

type RepositoryAPI interface {
	Insert(ctx context.Context, n *notificationDatamodel.Notification) error
	FindByID(ctx context.Context, id string) (*notificationDatamodel.Notification, error)
	// ListFor returns the notifications audience may see, newest first.
	ListFor(ctx context.Context, audience Audience) ([]*notificationDatamodel.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

type Service struct {
	repo   RepositoryAPI
	gate   *rbac.Gate
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, gate *rbac.Gate, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		gate:   gate,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) List(ctx context.Context, actor *internal.User) (NotificationsResponse, error) {
	if actor == nil {
		return nil, internal.ErrInvalidCredentials
	}

	records, err := s.repo.ListFor(ctx, AudienceOf(actor))
	if err != nil {
		s.logger.Error("failed to list notifications", "error", err)
		return nil, internal.NewInternalError("failed to list notifications", err)
	}

	items := make(NotificationsResponse, len(records))
	for i, r := range records {
		items[i] = FromDataModel(r)
	}
	return items, nil
}

func (s *Service) Create(ctx context.Context, actor *internal.User, dto CreateNotificationDTO) (*Notification, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(actor, rbac.NotificationCreate); err != nil {
		return nil, err
	}

	n := NewNotification(dto, s.now().UTC())
	if err := s.repo.Insert(ctx, ToDataModel(n)); err != nil {
		s.logger.Error("failed to create notification", "error", err)
		return nil, internal.NewInternalError("failed to create notification", err)
	}

	s.logger.Info("notification created", "notification_id", n.ID, "priority", n.Priority, "by", actor.ID)
	return n, nil
}

// MarkRead flags a notification as read. Users who cannot see it get 404.
func (s *Service) MarkRead(ctx context.Context, actor *internal.User, id string) (*Notification, error) {
	if actor == nil {
		return nil, internal.ErrInvalidCredentials
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "failed to load notification")
	}

	n := FromDataModel(record)
	if !n.VisibleTo(actor) {
		return nil, internal.ErrNotificationNotFound
	}
	if n.Read {
		return n, nil
	}

	if err := s.repo.MarkRead(ctx, id); err != nil {
		return nil, s.mapError(err, "failed to mark notification read")
	}
	n.Read = true
	return n, nil
}

func (s *Service) mapError(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return internal.ErrNotificationNotFound
	}
	s.logger.Error(msg, "error", err)
	return internal.NewInternalError(msg, err)
}
