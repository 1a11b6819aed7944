package http

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jevi-chat/console/internal/upstream"
)

// UpstreamProbe checks the backend's /health on a schedule and caches the
// result so /health and the dashboard read a recent answer instead of
// blocking on a live round trip.
type UpstreamProbe struct {
	up *upstream.Client

	mu        sync.RWMutex
	status    *upstream.HealthStatus
	lastErr   error
	checkedAt time.Time
}

// NewUpstreamProbe creates a new UpstreamProbe
func NewUpstreamProbe(up *upstream.Client) *UpstreamProbe {
	return &UpstreamProbe{up: up}
}

// Start runs the first check immediately, then every 30 seconds via cron.
func (p *UpstreamProbe) Start() *cron.Cron {
	p.check()

	c := cron.New()
	_, err := c.AddFunc("@every 30s", p.check)
	if err != nil {
		log.Printf("Failed to create health probe job: %v", err)
		return c
	}
	c.Start()
	log.Println("Upstream health probe started (every 30s)")
	return c
}

func (p *UpstreamProbe) check() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	status, err := p.up.Health(ctx)

	p.mu.Lock()
	p.status = status
	p.lastErr = err
	p.checkedAt = time.Now().UTC()
	p.mu.Unlock()

	if err != nil {
		log.Printf("[warn] upstream health probe failed: %v", err)
	}
}

// Snapshot returns the cached probe result. A nil status with a nil error
// means the probe has not run yet.
func (p *UpstreamProbe) Snapshot() (*upstream.HealthStatus, time.Time, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status, p.checkedAt, p.lastErr
}
