package service

import (
	"context"

	"github.com/jevi-chat/console/internal/admin/domain"
	"github.com/jevi-chat/console/internal/admin/repository"
	"github.com/jevi-chat/console/internal/upstream"
)

// NotificationService records admin activity into the per-session feed.
// Feed writes are best-effort: a Redis hiccup never fails the operation
// that triggered the notification.
type NotificationService struct {
	repo *repository.NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// Record appends a notification to the session feed.
func (s *NotificationService) Record(ctx context.Context, sessionID, notifType, message string) {
	if sessionID == "" {
		return
	}
	n := &domain.Notification{Type: notifType, Message: message}
	if err := s.repo.Push(ctx, sessionID, n); err != nil {
		upstream.NewLogger(ctx).LogWarnf("notify", "failed to record notification: %v", err)
	}
}

// List returns the session feed, newest first.
func (s *NotificationService) List(ctx context.Context, sessionID string) ([]domain.Notification, error) {
	return s.repo.List(ctx, sessionID)
}

// Clear empties the session feed.
func (s *NotificationService) Clear(ctx context.Context, sessionID string) error {
	return s.repo.Clear(ctx, sessionID)
}
