package service

import (
	"context"

	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/models"
)

// notifier creates notifications on behalf of other services. Like the
// event log it never fails the action that triggered it.
type notifier struct {
	notifications store.NotificationRepository
}

func newNotifier(notifications store.NotificationRepository) *notifier {
	return &notifier{notifications: notifications}
}

// notify stores n unless the recipient is the actor.
func (n *notifier) notify(ctx context.Context, notification models.Notification) {
	if n == nil || n.notifications == nil || notification.UserID == notification.ActorID {
		return
	}

	if _, err := n.notifications.CreateNotification(ctx, notification); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*notifier.notify").
			Str("kind", string(notification.Kind)).
			Int64("recipient", notification.UserID).
			Msg("failed to create notification")
	}
}

type notificationService struct {
	notifications store.NotificationRepository
	logger        *logger.Logger
}

func NewNotificationService(notifications store.NotificationRepository, logger *logger.Logger) NotificationService {
	return &notificationService{notifications: notifications, logger: logger}
}

func (s *notificationService) ListNotifications(ctx context.Context, userID int64, unreadOnly bool) (models.NotificationsList, error) {
	log := logger.FromContext(ctx)

	list, err := s.notifications.ListNotifications(ctx, userID, unreadOnly)
	if err != nil {
		log.Err(err).Str("func", "*notificationService.ListNotifications").Int64("user_id", userID).Msg("listing notifications failed")
		return models.NotificationsList{}, mapStoreError(err, "listing notifications failed")
	}

	unread, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*notificationService.ListNotifications").Int64("user_id", userID).Msg("counting unread notifications failed")
		return models.NotificationsList{}, mapStoreError(err, "counting unread notifications failed")
	}

	if list == nil {
		list = []models.Notification{}
	}

	return models.NotificationsList{Notifications: list, Unread: unread}, nil
}

// MarkRead marks one of the user's own notifications as read. Other users'
// notifications are reported as not found.
func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID int64) error {
	if err := s.notifications.MarkRead(ctx, notificationID, userID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*notificationService.MarkRead").Int64("notification_id", notificationID).Msg("marking notification read failed")
		return mapStoreError(err, "marking notification read failed")
	}
	return nil
}
