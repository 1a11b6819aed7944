package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jevi-chat/console/internal/auth"
	"github.com/jevi-chat/console/internal/auth/repository"
)

// SessionAuthMiddleware resolves the session cookie into a console session
// and exposes the upstream token to downstream handlers. Presence of a
// loadable session is the only gate; token validity is the upstream's call
// and surfaces later as a 401 on an API request.
func SessionAuthMiddleware(sessions *repository.SessionRepository, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := cookieSessionID(c, cookieName)
		if sid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "authentication required"})
			c.Abort()
			return
		}

		sess, err := sessions.Get(c.Request.Context(), sid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "session expired"})
			c.Abort()
			return
		}

		// Sliding expiry; failure here is not fatal to the request.
		_ = sessions.Touch(c.Request.Context(), sid)

		c.Set(auth.CtxSessionID, sess.ID)
		c.Set(auth.CtxToken, sess.Token)
		c.Set(auth.CtxEmail, sess.Email)
		c.Set(auth.CtxRole, sess.Role)

		c.Next()
	}
}

// OptionalSession attaches session data when a valid cookie is present and
// lets anonymous traffic through. Used on the widget surface, where embedded
// visitors have no console session.
func OptionalSession(sessions *repository.SessionRepository, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sid := cookieSessionID(c, cookieName); sid != "" {
			if sess, err := sessions.Get(c.Request.Context(), sid); err == nil {
				c.Set(auth.CtxSessionID, sess.ID)
				c.Set(auth.CtxToken, sess.Token)
				c.Set(auth.CtxEmail, sess.Email)
				c.Set(auth.CtxRole, sess.Role)
			}
		}
		c.Next()
	}
}

func cookieSessionID(c *gin.Context, cookieName string) string {
	sid, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(sid)
}
