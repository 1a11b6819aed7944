package http

import (
	"github.com/jevi-chat/console/internal/admin/service"
	"github.com/jevi-chat/console/internal/upstream"
)

// Handler bundles the admin console services behind /admin routes. All of
// them run behind the session-auth middleware.
type Handler struct {
	projects *service.ProjectService
	users    *service.UserService
	stats    *service.StatsService
	notifs   *service.NotificationService
	up       *upstream.Client
}

// New creates a new admin handler
func New(projects *service.ProjectService, users *service.UserService, stats *service.StatsService, notifs *service.NotificationService, up *upstream.Client) *Handler {
	return &Handler{
		projects: projects,
		users:    users,
		stats:    stats,
		notifs:   notifs,
		up:       up,
	}
}
