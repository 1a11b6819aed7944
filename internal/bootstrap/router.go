package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/jevi-chat/console/config"
	adminhttp "github.com/jevi-chat/console/internal/admin/http"
	adminrepo "github.com/jevi-chat/console/internal/admin/repository"
	adminsvc "github.com/jevi-chat/console/internal/admin/service"
	httpapi "github.com/jevi-chat/console/internal/api/http"
	apimw "github.com/jevi-chat/console/internal/api/http/middleware"
	authhttp "github.com/jevi-chat/console/internal/auth/http"
	authmw "github.com/jevi-chat/console/internal/auth/middleware"
	authrepo "github.com/jevi-chat/console/internal/auth/repository"
	chathttp "github.com/jevi-chat/console/internal/chat/http"
	chatrepo "github.com/jevi-chat/console/internal/chat/repository"
	chatsvc "github.com/jevi-chat/console/internal/chat/service"
	"github.com/jevi-chat/console/internal/upstream"
)

type RouterDeps struct {
	ServiceName string
	Cfg         *config.Config
	RDB         *redis.Client
	Upstream    *upstream.Client
	Probe       *httpapi.UpstreamProbe
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.Cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(apimw.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Cfg.App.Version, dep.RDB, dep.Upstream, dep.Probe)
	healthHandler.RegisterRoutes(r)

	sessionRepo := authrepo.NewSessionRepository(dep.RDB, dep.Cfg.Session.TTL)
	transcriptRepo := chatrepo.NewTranscriptRepository(dep.RDB)
	notifRepo := adminrepo.NewNotificationRepository(dep.RDB)

	secure := dep.Cfg.App.Environment == "production"
	authHandler := authhttp.New(sessionRepo, dep.Upstream, dep.Cfg.Session.CookieName, dep.Cfg.Session.TTL, secure)
	authHandler.Register(r)

	// Widget surface: anonymous visitors allowed, admins carry their token.
	chatService := chatsvc.NewChatService(transcriptRepo, dep.Upstream)
	chatHandler := chathttp.New(chatService, sessionRepo, dep.Cfg.Session.CookieName)
	widget := r.Group("/")
	widget.Use(authmw.OptionalSession(sessionRepo, dep.Cfg.Session.CookieName))
	chatHandler.Register(widget)

	// Admin console: session required on every route.
	notifService := adminsvc.NewNotificationService(notifRepo)
	projectService := adminsvc.NewProjectService(dep.Upstream, notifService, dep.Cfg.Server.PublicBaseURL)
	userService := adminsvc.NewUserService(dep.Upstream, notifService)
	statsService := adminsvc.NewStatsService(dep.Upstream)

	adminHandler := adminhttp.New(projectService, userService, statsService, notifService, dep.Upstream)
	admin := r.Group("/admin")
	admin.Use(authmw.SessionAuthMiddleware(sessionRepo, dep.Cfg.Session.CookieName))
	adminHandler.Register(admin)

	return r
}
