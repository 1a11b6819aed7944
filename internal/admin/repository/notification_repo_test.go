package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jevi-chat/console/internal/admin/domain"
)

func setupTestNotifs(t *testing.T) *NotificationRepository {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewNotificationRepository(client)
}

func TestNotificationRepository_NewestFirstCapped(t *testing.T) {
	repo := setupTestNotifs(t)
	ctx := context.Background()

	for i := 0; i < domain.MaxNotifications+5; i++ {
		err := repo.Push(ctx, "sess-1", &domain.Notification{
			Type:    domain.NotifProjectCreated,
			Message: fmt.Sprintf("event %d", i),
		})
		require.NoError(t, err)
	}

	feed, err := repo.List(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, feed, domain.MaxNotifications)

	// Newest first; the oldest five fell off.
	assert.Equal(t, "event 14", feed[0].Message)
	assert.Equal(t, "event 5", feed[len(feed)-1].Message)
	assert.NotEmpty(t, feed[0].ID)
	assert.False(t, feed[0].CreatedAt.IsZero())
}

func TestNotificationRepository_SessionScoped(t *testing.T) {
	repo := setupTestNotifs(t)
	ctx := context.Background()

	require.NoError(t, repo.Push(ctx, "sess-1", &domain.Notification{Message: "mine"}))

	other, err := repo.List(ctx, "sess-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestNotificationRepository_Clear(t *testing.T) {
	repo := setupTestNotifs(t)
	ctx := context.Background()

	require.NoError(t, repo.Push(ctx, "sess-1", &domain.Notification{Message: "x"}))
	require.NoError(t, repo.Clear(ctx, "sess-1"))

	feed, err := repo.List(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, feed)

	assert.NoError(t, repo.Clear(ctx, "sess-1"))
}
