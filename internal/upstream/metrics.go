package upstream

import (
	"sync/atomic"
	"time"
)

// Metrics tracks upstream call counters
type Metrics struct {
	Calls     int64
	Errors    int64
	LatencyNS int64 // Total latency in nanoseconds
	Since     time.Time
}

var (
	globalMetrics = &Metrics{}
	metricsSince  = time.Now()
)

func recordCall(d time.Duration, err error) {
	atomic.AddInt64(&globalMetrics.Calls, 1)
	atomic.AddInt64(&globalMetrics.LatencyNS, int64(d))
	if err != nil {
		atomic.AddInt64(&globalMetrics.Errors, 1)
	}
}

// GetMetrics returns the current metrics snapshot
func GetMetrics() Metrics {
	return Metrics{
		Calls:     atomic.LoadInt64(&globalMetrics.Calls),
		Errors:    atomic.LoadInt64(&globalMetrics.Errors),
		LatencyNS: atomic.LoadInt64(&globalMetrics.LatencyNS),
		Since:     metricsSince,
	}
}

// ResetMetrics resets all counters (useful for testing)
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.Calls, 0)
	atomic.StoreInt64(&globalMetrics.Errors, 0)
	atomic.StoreInt64(&globalMetrics.LatencyNS, 0)
	metricsSince = time.Now()
}
