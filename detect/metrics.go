package detect

import (
	"sync/atomic"
	"time"
)

// RoundStats summarizes one refinement round.
type RoundStats struct {
	Round        int
	Threshold    float64
	Centroids    int
	Splits       int
	Pruned       int
	Verified     int
	Calculations int
	Duration     time.Duration
}

// MetricsCollector receives run and round metrics. Implement it to forward
// metrics to a monitoring system.
type MetricsCollector interface {
	// RecordRound is called after each refinement round.
	RecordRound(stats RoundStats)
	// RecordRun is called once per run; err is nil on success.
	RecordRun(calculations int, duration time.Duration, err error)
}

// NoopMetricsCollector discards all metrics.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRound(RoundStats)              {}
func (NoopMetricsCollector) RecordRun(int, time.Duration, error) {}

// BasicMetricsCollector keeps simple in-memory counters.
type BasicMetricsCollector struct {
	Runs         atomic.Int64
	RunErrors    atomic.Int64
	RunNanos     atomic.Int64
	Rounds       atomic.Int64
	Splits       atomic.Int64
	Pruned       atomic.Int64
	Calculations atomic.Int64
	LastVerified atomic.Int64
}

// RecordRound implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRound(stats RoundStats) {
	b.Rounds.Add(1)
	b.Splits.Add(int64(stats.Splits))
	b.Pruned.Add(int64(stats.Pruned))
	b.LastVerified.Store(int64(stats.Verified))
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(calculations int, duration time.Duration, err error) {
	b.Runs.Add(1)
	b.RunNanos.Add(duration.Nanoseconds())
	b.Calculations.Add(int64(calculations))
	if err != nil {
		b.RunErrors.Add(1)
	}
}
