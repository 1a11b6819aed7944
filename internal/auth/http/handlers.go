package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jevi-chat/console/internal/auth"
	"github.com/jevi-chat/console/internal/auth/domain"
	"github.com/jevi-chat/console/internal/upstream"
)

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials with the upstream and mints a console session.
func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.Email) == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "email and password are required"})
		return
	}

	resp, err := h.up.Login(c.Request.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		var apiErr *upstream.APIError
		switch {
		case errors.Is(err, upstream.ErrUnreachable):
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "backend unreachable"})
		case errors.As(err, &apiErr):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": apiErr.Message})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		}
		return
	}

	sess := &domain.Session{
		Token: resp.Token,
		Email: strings.TrimSpace(req.Email),
		Role:  auth.RoleFromToken(resp.Token),
	}
	if err := h.sessions.Create(c.Request.Context(), sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create session"})
		return
	}

	c.SetCookie(h.cookieName, sess.ID, int(h.sessionTTL.Seconds()), "/", "", h.secure, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "email": sess.Email, "role": sess.Role})
}

// Logout drops the console session and expires the cookie.
func (h *Handler) Logout(c *gin.Context) {
	if sid, err := c.Cookie(h.cookieName); err == nil && sid != "" {
		_ = h.sessions.Delete(c.Request.Context(), sid)
	}
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secure, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
