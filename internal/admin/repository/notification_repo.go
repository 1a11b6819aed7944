package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jevi-chat/console/internal/admin/domain"
)

const (
	notifKeyPrefix = "console:notifications:" // console:notifications:{session_id}
	notifTTL       = 24 * time.Hour
)

// NotificationRepository stores per-session notification feeds as Redis
// lists, newest first, trimmed to domain.MaxNotifications.
type NotificationRepository struct {
	client *redis.Client
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(client *redis.Client) *NotificationRepository {
	return &NotificationRepository{client: client}
}

// Push prepends a notification and trims the feed to its cap.
func (r *NotificationRepository) Push(ctx context.Context, sessionID string, n *domain.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	key := r.feedKey(sessionID)
	pipe := r.client.Pipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, domain.MaxNotifications-1)
	pipe.Expire(ctx, key, notifTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to push notification: %w", err)
	}
	return nil
}

// List returns the feed newest first. A missing feed is an empty feed.
func (r *NotificationRepository) List(ctx context.Context, sessionID string) ([]domain.Notification, error) {
	raw, err := r.client.LRange(ctx, r.feedKey(sessionID), 0, domain.MaxNotifications-1).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	out := make([]domain.Notification, 0, len(raw))
	for _, item := range raw {
		var n domain.Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// Clear drops the feed. Deleting a feed that does not exist is a no-op.
func (r *NotificationRepository) Clear(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.feedKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear notifications: %w", err)
	}
	return nil
}

func (r *NotificationRepository) feedKey(sessionID string) string {
	return fmt.Sprintf("%s%s", notifKeyPrefix, sessionID)
}
