package http

import "github.com/gin-gonic/gin"

// Register attaches the admin console routes. The group passed in must
// already carry the session-auth middleware.
func (h *Handler) Register(g gin.IRouter) {
	g.GET("/dashboard", h.getDashboard)
	g.GET("/realtime-stats", h.getRealtimeStats)
	g.GET("/realtime-stats/stream", h.streamRealtimeStats)

	g.GET("/projects", h.listProjects)
	g.POST("/projects", h.createProject)
	g.PUT("/projects/:id", h.updateProject)
	g.DELETE("/projects/:id", h.deleteProject)
	g.GET("/projects/:id/embed-code", h.getEmbedCode)
	g.GET("/projects/:id/chat-history", h.getChatHistory)
	g.POST("/projects/:id/upload-pdf", h.uploadPDF)

	g.GET("/users", h.listUsers)
	g.DELETE("/users/:id", h.deleteUser)

	g.GET("/notifications", h.listNotifications)
	g.DELETE("/notifications", h.clearNotifications)
}
