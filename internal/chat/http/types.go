package http

import (
	"github.com/jevi-chat/console/internal/auth/repository"
	"github.com/jevi-chat/console/internal/chat/service"
)

type Handler struct {
	chatService *service.ChatService
	sessions    *repository.SessionRepository
	cookieName  string
}

func New(chatService *service.ChatService, sessions *repository.SessionRepository, cookieName string) *Handler {
	return &Handler{
		chatService: chatService,
		sessions:    sessions,
		cookieName:  cookieName,
	}
}
