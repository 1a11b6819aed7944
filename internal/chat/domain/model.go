package domain

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"
)

// MaxMessageLen is the widget-side cap on a single user message.
const MaxMessageLen = 1000

// Entry is one transcript line. User entries carry only Message; assistant
// entries carry the originating Message plus the AI Response.
type Entry struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Message   string    `json:"message"`
	Response  string    `json:"response,omitempty"`
	IsUser    bool      `json:"is_user"`
	Timestamp time.Time `json:"timestamp"`
}

var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrMessageTooLong = errors.New("message too long")
	ErrSendInFlight   = errors.New("send already in flight")
	ErrRateLimited    = errors.New("rate limited")
	ErrMissingSession = errors.New("session_id required")
)

const sessionAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewSessionID generates a widget session identifier, unique enough to avoid
// backend cross-talk between concurrent visitors: millisecond timestamp plus
// a 9-character random base36 suffix.
func NewSessionID() string {
	b := make([]byte, 9)
	if _, err := rand.Read(b); err != nil {
		// fallback (should be rare)
		return fmt.Sprintf("session_%d", time.Now().UnixNano())
	}
	for i := range b {
		b[i] = sessionAlphabet[int(b[i])%len(sessionAlphabet)]
	}
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), b)
}
