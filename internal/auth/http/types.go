package http

import (
	"time"

	"github.com/jevi-chat/console/internal/auth/repository"
	"github.com/jevi-chat/console/internal/upstream"
)

type Handler struct {
	sessions   *repository.SessionRepository
	up         *upstream.Client
	cookieName string
	sessionTTL time.Duration
	secure     bool
}

func New(sessions *repository.SessionRepository, up *upstream.Client, cookieName string, sessionTTL time.Duration, secure bool) *Handler {
	return &Handler{
		sessions:   sessions,
		up:         up,
		cookieName: cookieName,
		sessionTTL: sessionTTL,
		secure:     secure,
	}
}
