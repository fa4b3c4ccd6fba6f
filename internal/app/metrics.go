package app

import (
	"sync/atomic"
	"time"
)

// Metrics counts the work done by the update loop.
type Metrics struct {
	// Render timing
	renderCount   atomic.Uint64
	renderTotalNs atomic.Int64
	renderMaxNs   atomic.Int64

	// Input handling
	eventCount   atomic.Uint64
	eventTotalNs atomic.Int64

	// Background results
	accepted atomic.Uint64
	stale    atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordRender records render timing.
func (m *Metrics) RecordRender(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.renderCount.Add(1)
	m.renderTotalNs.Add(ns)

	for {
		old := m.renderMaxNs.Load()
		if ns <= old || m.renderMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordEvent records input event handling timing.
func (m *Metrics) RecordEvent(duration time.Duration) {
	m.eventCount.Add(1)
	m.eventTotalNs.Add(duration.Nanoseconds())
}

// RecordResult records a drained background result.
func (m *Metrics) RecordResult(accepted bool) {
	if accepted {
		m.accepted.Add(1)
	} else {
		m.stale.Add(1)
	}
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Uptime:          time.Since(m.startTime),
		RenderCount:     m.renderCount.Load(),
		MaxRenderNs:     m.renderMaxNs.Load(),
		EventCount:      m.eventCount.Load(),
		ResultsAccepted: m.accepted.Load(),
		ResultsStale:    m.stale.Load(),
	}
	if s.RenderCount > 0 {
		s.AvgRenderNs = m.renderTotalNs.Load() / int64(s.RenderCount)
	}
	if s.EventCount > 0 {
		s.AvgEventNs = m.eventTotalNs.Load() / int64(s.EventCount)
	}
	return s
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime          time.Duration
	RenderCount     uint64
	AvgRenderNs     int64
	MaxRenderNs     int64
	EventCount      uint64
	AvgEventNs      int64
	ResultsAccepted uint64
	ResultsStale    uint64
}

// StaleRate returns the percentage of background results that were
// dropped as stale.
func (s MetricsSnapshot) StaleRate() float64 {
	total := s.ResultsAccepted + s.ResultsStale
	if total == 0 {
		return 0
	}
	return float64(s.ResultsStale) / float64(total) * 100
}

// Timer measures elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
