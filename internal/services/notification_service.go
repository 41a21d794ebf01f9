package services

import (
	"context"
	"fmt"

	"github.com/nichenav/nichenav-api/internal/models"
	"github.com/nichenav/nichenav-api/internal/repository"
	"github.com/nichenav/nichenav-api/pkg/logger"
)

// NotificationService manages user notifications
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// Notify creates a notification for a user. Failures are logged but never
// fail the calling operation.
func (s *NotificationService) Notify(ctx context.Context, userID uint, notificationType, title, message string) {
	notification := &models.Notification{
		UserID:           userID,
		Title:            title,
		Message:          message,
		NotificationType: &notificationType,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		logger.Error(fmt.Sprintf("[NotificationService] Failed to create notification for user %d: %v", userID, err))
	}
}

// ListByUser returns a user's notifications with unread count
func (s *NotificationService) ListByUser(ctx context.Context, userID uint, query *repository.ListQuery) ([]models.Notification, int64, int64, error) {
	notifications, total, err := s.notificationRepo.FindByUser(ctx, userID, query)
	if err != nil {
		return nil, 0, 0, err
	}
	unread, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, 0, err
	}
	return notifications, total, unread, nil
}

// MarkAsRead marks one notification as read; only the owner may do so
func (s *NotificationService) MarkAsRead(ctx context.Context, userID, notificationID uint) error {
	notification, err := s.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		return ErrNotFound
	}
	if notification.UserID != userID {
		return ErrUnauthorized
	}
	if notification.IsRead() {
		return nil
	}
	notification.MarkAsRead()
	return s.notificationRepo.Update(ctx, notification)
}

// MarkAllAsRead marks all of a user's notifications as read
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uint) error {
	return s.notificationRepo.MarkAllAsRead(ctx, userID)
}
