package domain

import (
	"errors"
	"time"
)

// Session is the console-side credential record, one per logged-in browser.
// The upstream bearer token never leaves the server; the browser only holds
// the opaque session id cookie.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

var ErrSessionNotFound = errors.New("session not found")
