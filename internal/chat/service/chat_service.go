package service

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/jevi-chat/console/internal/chat/domain"
	"github.com/jevi-chat/console/internal/chat/repository"
	"github.com/jevi-chat/console/internal/upstream"
)

// ChatService owns the widget send state machine: at most one in-flight send
// per session, optimistic user entry, rollback on failure.
type ChatService struct {
	repo *repository.TranscriptRepository
	up   *upstream.Client

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewChatService creates a new chat service
func NewChatService(repo *repository.TranscriptRepository, up *upstream.Client) *ChatService {
	return &ChatService{
		repo:     repo,
		up:       up,
		limiters: make(map[string]*rate.Limiter),
	}
}

// limiter returns the per-session token bucket: one message per second with
// a small burst, sitting in front of the project's upstream usage limits.
func (s *ChatService) limiter(sessionID string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.limiters[sessionID]
	if !ok {
		l = rate.NewLimiter(rate.Every(time.Second), 3)
		s.limiters[sessionID] = l
	}
	return l
}

// SendResult carries the transcript entries produced by one send.
type SendResult struct {
	Response       string
	UserEntry      *domain.Entry
	AssistantEntry *domain.Entry
}

// Send runs one message through the state machine. On upstream failure the
// optimistically appended user entry is removed, so the transcript after a
// failed attempt equals the transcript before it.
func (s *ChatService) Send(ctx context.Context, token, projectID, sessionID, text string) (*SendResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyMessage
	}
	if utf8.RuneCountInString(text) > domain.MaxMessageLen {
		return nil, domain.ErrMessageTooLong
	}
	if strings.TrimSpace(sessionID) == "" {
		return nil, domain.ErrMissingSession
	}
	if !s.limiter(sessionID).Allow() {
		return nil, domain.ErrRateLimited
	}

	ok, err := s.repo.AcquireInflight(ctx, projectID, sessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrSendInFlight
	}
	// Release must survive request cancellation or the session stays
	// locked until the inflight TTL expires.
	defer func() {
		_ = s.repo.ReleaseInflight(context.Background(), projectID, sessionID)
	}()

	userEntry := &domain.Entry{
		ID:        ulid.Make().String(),
		SessionID: sessionID,
		Message:   text,
		IsUser:    true,
		Timestamp: time.Now().UTC(),
	}
	if err := s.repo.Append(ctx, projectID, sessionID, userEntry); err != nil {
		return nil, err
	}

	resp, err := s.up.SendMessage(ctx, token, projectID, upstream.ChatRequest{
		Message:   text,
		SessionID: sessionID,
	})
	if err != nil {
		logger := upstream.NewLogger(ctx)
		if rbErr := s.repo.RemoveLast(context.Background(), projectID, sessionID); rbErr != nil {
			logger.LogError("send_rollback", rbErr)
		}
		return nil, err
	}

	assistantEntry := &domain.Entry{
		ID:        ulid.Make().String(),
		SessionID: sessionID,
		Message:   text,
		Response:  resp.Response,
		IsUser:    false,
		Timestamp: time.Now().UTC(),
	}
	if err := s.repo.Append(ctx, projectID, sessionID, assistantEntry); err != nil {
		return nil, err
	}

	return &SendResult{
		Response:       resp.Response,
		UserEntry:      userEntry,
		AssistantEntry: assistantEntry,
	}, nil
}

// History returns the session transcript. Before the first local send the
// upstream history is the transcript; once local entries exist they are
// authoritative and strictly append-only. A history fetch failure yields an
// empty transcript rather than an error so the widget can still start.
func (s *ChatService) History(ctx context.Context, token, projectID, sessionID string) ([]domain.Entry, error) {
	entries, err := s.repo.List(ctx, projectID, sessionID)
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		return entries, nil
	}

	msgs, err := s.up.ChatHistory(ctx, token, projectID, sessionID)
	if err != nil {
		upstream.NewLogger(ctx).LogError("chat_history", err)
		return []domain.Entry{}, nil
	}

	entries = make([]domain.Entry, 0, len(msgs))
	for _, m := range msgs {
		entries = append(entries, domain.Entry{
			ID:        m.ID,
			SessionID: m.SessionID,
			Message:   m.Message,
			Response:  m.Response,
			IsUser:    m.IsUser,
			Timestamp: m.Timestamp,
		})
	}
	return entries, nil
}

// Project fetches the project metadata shown in the widget header.
func (s *ChatService) Project(ctx context.Context, token, projectID string) (*upstream.Project, error) {
	return s.up.GetProject(ctx, token, projectID)
}
