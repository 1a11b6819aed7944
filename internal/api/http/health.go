package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/jevi-chat/console/internal/upstream"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Redis     string    `json:"redis,omitempty"`
	Upstream  string    `json:"upstream,omitempty"`
	CheckedAt time.Time `json:"upstream_checked_at,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	rdb         *redis.Client
	up          *upstream.Client
	probe       *UpstreamProbe
}

func NewHealthHandler(serviceName, version string, rdb *redis.Client, up *upstream.Client, probe *UpstreamProbe) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		rdb:         rdb,
		up:          up,
		probe:       probe,
	}
}

// HealthCheck reports the console's own state. Redis is pinged live; the
// backend answer comes from the probe cache so this endpoint stays fast.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	redisStatus := "disabled"
	if h.rdb != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.rdb.Ping(pingCtx).Err(); err != nil {
			redisStatus = "down"
		} else {
			redisStatus = "up"
		}
	}

	upstreamStatus := "unknown"
	var checkedAt time.Time
	if h.probe != nil {
		status, at, err := h.probe.Snapshot()
		checkedAt = at
		switch {
		case err != nil:
			upstreamStatus = "down"
		case status != nil:
			upstreamStatus = "up"
		}
	}

	overall := "healthy"
	if redisStatus == "down" {
		overall = "degraded"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    overall,
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Redis:     redisStatus,
		Upstream:  upstreamStatus,
		CheckedAt: checkedAt,
	})
}

// CORSTest does one live round trip to the backend's /cors-test endpoint.
// Used from the login page to diagnose connectivity before credentials are
// entered.
func (h *HealthHandler) CORSTest(c *gin.Context) {
	body, err := h.up.CORSTest(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "backend unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "backend reachable", "backend": body})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
	r.GET("/cors-test", h.CORSTest)
}
