package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jevi-chat/console/internal/chat/domain"
)

const (
	transcriptKeyPrefix = "chat:transcript:" // chat:transcript:{project_id}:{session_id}
	inflightKeyPrefix   = "chat:inflight:"   // chat:inflight:{project_id}:{session_id}
	transcriptTTL       = 24 * time.Hour     // matches the widget session lifetime
	// inflightTTL bounds the send lock so a crashed request cannot wedge
	// the session; it must outlive the upstream chat timeout.
	inflightTTL = 90 * time.Second
)

// TranscriptRepository handles Redis operations for widget transcripts
type TranscriptRepository struct {
	client *redis.Client
}

// NewTranscriptRepository creates a new TranscriptRepository
func NewTranscriptRepository(client *redis.Client) *TranscriptRepository {
	return &TranscriptRepository{client: client}
}

func (r *TranscriptRepository) transcriptKey(projectID, sessionID string) string {
	return transcriptKeyPrefix + projectID + ":" + sessionID
}

func (r *TranscriptRepository) inflightKey(projectID, sessionID string) string {
	return inflightKeyPrefix + projectID + ":" + sessionID
}

// Append pushes an entry onto the end of the transcript.
func (r *TranscriptRepository) Append(ctx context.Context, projectID, sessionID string, e *domain.Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	key := r.transcriptKey(projectID, sessionID)
	pipe := r.client.Pipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, transcriptTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append entry: %w", err)
	}
	return nil
}

// RemoveLast pops the newest entry; used to roll back an optimistic append.
func (r *TranscriptRepository) RemoveLast(ctx context.Context, projectID, sessionID string) error {
	if err := r.client.RPop(ctx, r.transcriptKey(projectID, sessionID)).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("failed to remove entry: %w", err)
	}
	return nil
}

// List returns the transcript in append order.
func (r *TranscriptRepository) List(ctx context.Context, projectID, sessionID string) ([]domain.Entry, error) {
	items, err := r.client.LRange(ctx, r.transcriptKey(projectID, sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list transcript: %w", err)
	}

	entries := make([]domain.Entry, 0, len(items))
	for _, item := range items {
		var e domain.Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("failed to unmarshal entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// AcquireInflight takes the per-session send lock. Returns false when a send
// is already in flight.
func (r *TranscriptRepository) AcquireInflight(ctx context.Context, projectID, sessionID string) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.inflightKey(projectID, sessionID), "1", inflightTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire send lock: %w", err)
	}
	return ok, nil
}

// ReleaseInflight drops the send lock.
func (r *TranscriptRepository) ReleaseInflight(ctx context.Context, projectID, sessionID string) error {
	if err := r.client.Del(ctx, r.inflightKey(projectID, sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to release send lock: %w", err)
	}
	return nil
}
