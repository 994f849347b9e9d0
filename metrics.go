package wets

import "sync/atomic"

// Metrics is an opt-in set of atomic counters, enabled via WithMetrics.
// Incrementing these never changes dispatch behavior — they are pure
// instrumentation, grounded on the teacher's eventloop/metrics.go counter
// struct.
type Metrics struct {
	Dispatches             atomic.Uint64
	OrphanBitsCleared      atomic.Uint64
	DelayExpiries          atomic.Uint64
	CyclicExpiries         atomic.Uint64
	IdleCycles             atomic.Uint64
	EventBufferFullErrors  atomic.Uint64
	TimerUnavailableErrors atomic.Uint64
}

// MetricsSnapshot is a point-in-time copy of Metrics, safe to read without
// further synchronization.
type MetricsSnapshot struct {
	Dispatches             uint64
	OrphanBitsCleared      uint64
	DelayExpiries          uint64
	CyclicExpiries         uint64
	IdleCycles             uint64
	EventBufferFullErrors  uint64
	TimerUnavailableErrors uint64
}

func (m *Metrics) snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Dispatches:             m.Dispatches.Load(),
		OrphanBitsCleared:      m.OrphanBitsCleared.Load(),
		DelayExpiries:          m.DelayExpiries.Load(),
		CyclicExpiries:         m.CyclicExpiries.Load(),
		IdleCycles:             m.IdleCycles.Load(),
		EventBufferFullErrors:  m.EventBufferFullErrors.Load(),
		TimerUnavailableErrors: m.TimerUnavailableErrors.Load(),
	}
}

// Metrics returns a snapshot of the scheduler's counters, and true, if
// WithMetrics(true) was passed to New. Otherwise it returns the zero value
// and false.
func (s *Scheduler) Metrics() (MetricsSnapshot, bool) {
	if s.metrics == nil {
		return MetricsSnapshot{}, false
	}
	return s.metrics.snapshot(), true
}
