package agent

import (
	"sync/atomic"
	"time"
)

// Stats tracks process-wide request counters. Owned by the agent instance
// and updated atomically; reset only on process restart.
type Stats struct {
	start   time.Time
	total   atomic.Int64
	success atomic.Int64
	failed  atomic.Int64
}

// NewStats returns counters with the start timestamp set to now.
func NewStats() *Stats {
	return &Stats{start: time.Now()}
}

func (s *Stats) RecordRequest() { s.total.Add(1) }
func (s *Stats) RecordSuccess() { s.success.Add(1) }
func (s *Stats) RecordFailure() { s.failed.Add(1) }

// Snapshot returns the current counter values.
func (s *Stats) Snapshot() (total, success, failed int64) {
	return s.total.Load(), s.success.Load(), s.failed.Load()
}

// StartTime returns when the counters were created.
func (s *Stats) StartTime() time.Time { return s.start }
