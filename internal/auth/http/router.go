package http

import "github.com/gin-gonic/gin"

// Register attaches the public auth routes.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)
}
