package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxSessionID = "session_id"
	CtxToken     = "token"
	CtxEmail     = "email"
	CtxRole      = "role"
)

// SessionID extracts the console session id from the Gin context.
// This is set by SessionAuthMiddleware / OptionalSession.
func SessionID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxSessionID))
}

// Token extracts the upstream bearer token from the Gin context. Empty for
// anonymous widget traffic.
func Token(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxToken))
}
