package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jevi-chat/console/internal/auth"
	"github.com/jevi-chat/console/internal/chat/domain"
	"github.com/jevi-chat/console/internal/upstream"
)

// getProject serves the project metadata for the chat header. This is the
// one path where an upstream 401 clears the console credential: the widget
// cannot recover on its own, so the client is told to re-login.
func (h *Handler) getProject(c *gin.Context) {
	projectID := strings.TrimSpace(c.Param("id"))
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing project id"})
		return
	}

	p, err := h.chatService.Project(c.Request.Context(), auth.Token(c), projectID)
	if err != nil {
		switch {
		case errors.Is(err, upstream.ErrUnauthorized):
			h.clearSession(c)
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "authentication required", "redirect": "/login"})
		case errors.Is(err, upstream.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "you don't have permission to access this project"})
		case errors.Is(err, upstream.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		case errors.Is(err, upstream.ErrUnreachable):
			c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "backend unreachable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

type sendReq struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

func (h *Handler) postMessage(c *gin.Context) {
	projectID := strings.TrimSpace(c.Param("id"))
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing project id"})
		return
	}

	var req sendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	res, err := h.chatService.Send(c.Request.Context(), auth.Token(c), projectID, req.SessionID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyMessage), errors.Is(err, domain.ErrMessageTooLong),
			errors.Is(err, domain.ErrMissingSession):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		case errors.Is(err, domain.ErrSendInFlight):
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "a message is already being processed"})
		case errors.Is(err, domain.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "too many messages, slow down"})
		case errors.Is(err, upstream.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		case errors.Is(err, upstream.ErrValidation):
			var apiErr *upstream.APIError
			errors.As(err, &apiErr)
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": apiErr.Message})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "failed to send message"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":                true,
		"response":          res.Response,
		"user_message":      res.UserEntry,
		"assistant_message": res.AssistantEntry,
	})
}

func (h *Handler) getHistory(c *gin.Context) {
	projectID := strings.TrimSpace(c.Param("id"))
	sessionID := strings.TrimSpace(c.Query("session_id"))
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing project id"})
		return
	}

	entries, err := h.chatService.History(c.Request.Context(), auth.Token(c), projectID, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "messages": entries})
}

func (h *Handler) clearSession(c *gin.Context) {
	if sid := auth.SessionID(c); sid != "" {
		_ = h.sessions.Delete(c.Request.Context(), sid)
	}
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
}
