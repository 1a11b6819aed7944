package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jevi-chat/console/internal/chat/domain"
	"github.com/jevi-chat/console/internal/chat/repository"
	"github.com/jevi-chat/console/internal/upstream"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func setupService(t *testing.T, backend http.HandlerFunc) (*ChatService, *repository.TranscriptRepository) {
	client, _ := setupTestRedis(t)
	repo := repository.NewTranscriptRepository(client)

	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	up := upstream.New(server.URL, 0, 0)
	return NewChatService(repo, up), repo
}

func echoBackend(t *testing.T, reply string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/message") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"response": "` + reply + `"}`))
	}
}

func TestChatService_Send(t *testing.T) {
	svc, repo := setupService(t, echoBackend(t, "hi there"))
	sessionID := domain.NewSessionID()

	res, err := svc.Send(context.Background(), "", "p1", sessionID, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", res.Response)

	entries, err := repo.List(context.Background(), "p1", sessionID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.True(t, entries[0].IsUser)
	assert.Equal(t, "hello", entries[0].Message)

	assert.False(t, entries[1].IsUser)
	assert.Equal(t, "hello", entries[1].Message)
	assert.Equal(t, "hi there", entries[1].Response)
}

func TestChatService_Send_Validation(t *testing.T) {
	svc, _ := setupService(t, echoBackend(t, "hi"))
	ctx := context.Background()

	_, err := svc.Send(ctx, "", "p1", "session_1_abc", "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)

	_, err = svc.Send(ctx, "", "p1", "session_1_abc", strings.Repeat("a", domain.MaxMessageLen+1))
	assert.ErrorIs(t, err, domain.ErrMessageTooLong)

	// Multi-byte runes count as one character each.
	_, err = svc.Send(ctx, "", "p1", "session_1_multibyte", strings.Repeat("ä", domain.MaxMessageLen))
	assert.NoError(t, err)

	_, err = svc.Send(ctx, "", "p1", "", "hello")
	assert.ErrorIs(t, err, domain.ErrMissingSession)
}

func TestChatService_Send_RollbackOnFailure(t *testing.T) {
	svc, repo := setupService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "model overloaded"}`))
	})
	sessionID := "session_1_rollback"

	before, err := repo.List(context.Background(), "p1", sessionID)
	require.NoError(t, err)

	_, err = svc.Send(context.Background(), "", "p1", sessionID, "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, upstream.ErrUpstream)

	// Failed send leaves the transcript exactly as it was.
	after, err := repo.List(context.Background(), "p1", sessionID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestChatService_Send_InFlightRejected(t *testing.T) {
	svc, repo := setupService(t, echoBackend(t, "hi"))
	sessionID := "session_1_locked"

	ok, err := repo.AcquireInflight(context.Background(), "p1", sessionID)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = svc.Send(context.Background(), "", "p1", sessionID, "hello")
	assert.ErrorIs(t, err, domain.ErrSendInFlight)

	// Lock is released after the blocked attempt finishes.
	require.NoError(t, repo.ReleaseInflight(context.Background(), "p1", sessionID))
	_, err = svc.Send(context.Background(), "", "p1", sessionID, "hello again")
	assert.NoError(t, err)
}

func TestChatService_Send_RateLimited(t *testing.T) {
	svc, _ := setupService(t, echoBackend(t, "hi"))
	sessionID := "session_1_burst"

	var rateErr error
	for i := 0; i < 10; i++ {
		if _, err := svc.Send(context.Background(), "", "p1", sessionID, "hello"); err != nil {
			rateErr = err
			break
		}
	}
	assert.ErrorIs(t, rateErr, domain.ErrRateLimited)
}

func TestChatService_History_LocalPrecedence(t *testing.T) {
	upstreamCalled := false
	svc, repo := setupService(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/history") {
			upstreamCalled = true
			w.Write([]byte(`{"messages": [{"id": "m1", "message": "old", "is_user": true}]}`))
			return
		}
		w.Write([]byte(`{"response": "hi"}`))
	})
	sessionID := "session_1_hist"

	// Empty local transcript falls back to upstream.
	entries, err := svc.History(context.Background(), "", "p1", sessionID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, upstreamCalled)
	assert.Equal(t, "old", entries[0].Message)

	// Once local entries exist they are authoritative.
	upstreamCalled = false
	require.NoError(t, repo.Append(context.Background(), "p1", sessionID, &domain.Entry{
		ID: "local-1", SessionID: sessionID, Message: "fresh", IsUser: true,
	}))

	entries, err = svc.History(context.Background(), "", "p1", sessionID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, upstreamCalled)
	assert.Equal(t, "fresh", entries[0].Message)
}

func TestChatService_History_UpstreamFailureYieldsEmpty(t *testing.T) {
	svc, _ := setupService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "boom"}`))
	})

	entries, err := svc.History(context.Background(), "", "p1", "session_1_down")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
