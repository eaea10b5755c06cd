package services

import (
	"time"

	apperrors "refutree/internal/errors"
	"refutree/internal/filter"
	"refutree/internal/logger"
	"refutree/internal/models"
	"refutree/internal/pagination"
	"refutree/internal/store"
	"refutree/internal/uuid"
)

// notificationService appends dashboard notifications. Like the audit
// recorder, producing a notification must never fail the operation that
// triggered it.
type notificationService struct {
	store *store.Store
}

// NewNotificationService creates a new NotificationServicer.
func NewNotificationService(s *store.Store) NotificationServicer {
	return &notificationService{store: s}
}

// Notify appends an unread notification.
func (s *notificationService) Notify(message string, notificationType models.NotificationType) {
	if notificationType == "" {
		notificationType = models.NotificationTypeInfo
	}
	now := time.Now()

	notification := &models.Notification{
		Message: message,
		Type:    notificationType,
	}
	notification.SetRecordID(uuid.New())
	notification.Stamp(now)

	notifications := store.Load[*models.Notification](s.store, models.CollectionNotifications)
	notifications = append(notifications, notification)
	if err := store.SaveAll(s.store, models.CollectionNotifications, notifications); err != nil {
		logger.Get().Errorw("failed to append notification", "error", err, "message", message)
	}
}

// List returns notifications, newest first.
func (s *notificationService) List(unreadOnly bool, page pagination.PageRequest) (*pagination.PageResponse[*models.Notification], error) {
	notifications := store.Load[*models.Notification](s.store, models.CollectionNotifications)

	criteria := filter.Criteria{
		Sort: &filter.Sort{Field: "created_at", Order: filter.Desc},
	}
	if unreadOnly {
		criteria.Equals = map[string]string{"read": "false"}
	}

	view := filter.Apply(notifications, criteria)
	result := pagination.Page(view, page)
	return &result, nil
}

// MarkRead marks one notification as read.
func (s *notificationService) MarkRead(actor, id string) (*models.Notification, error) {
	for _, notification := range store.Load[*models.Notification](s.store, models.CollectionNotifications) {
		if notification.ID == id {
			if notification.Read {
				return notification, nil
			}
			updated := *notification
			updated.Read = true
			return store.Upsert(s.store, models.CollectionNotifications, actor, &updated)
		}
	}
	return nil, apperrors.ErrNotificationNotFound
}
