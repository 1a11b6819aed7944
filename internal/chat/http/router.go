package http

import "github.com/gin-gonic/gin"

// Register attaches the widget-facing routes. These run behind the
// optional-session middleware: embedded visitors are anonymous, console
// admins carry their token through.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/user/project/:id", h.getProject)
	r.POST("/user/chat/:id/message", h.postMessage)
	r.GET("/user/chat/:id/history", h.getHistory)
	r.GET("/embed/:project_id", h.embed)
}
