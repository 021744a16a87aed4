package kitectx

import (
	"context"
	"sync/atomic"
)

var globalMetrics *Metrics

// InitializeMetrics enables global expiry tracking.
// It is not thread-safe and should be called during process initialization. It is idempotent.
func InitializeMetrics() *Metrics {
	if globalMetrics == nil {
		globalMetrics = &Metrics{}
	}
	return globalMetrics
}

// Metrics counts kitectx aborts by reason
type Metrics struct {
	deadlineExceeded uint64
	canceled         uint64
	callLimit        uint64
	other            uint64
}

// MetricsSnapshot is a by-value copy of Metrics
type MetricsSnapshot struct {
	DeadlineExceeded uint64
	Canceled         uint64
	CallLimit        uint64
	Other            uint64
}

func (m *Metrics) hit(err error) {
	switch err {
	case context.DeadlineExceeded:
		atomic.AddUint64(&m.deadlineExceeded, 1)
	case context.Canceled:
		atomic.AddUint64(&m.canceled, 1)
	case ErrCallLimit:
		atomic.AddUint64(&m.callLimit, 1)
	default:
		atomic.AddUint64(&m.other, 1)
	}
}

// Read returns the current counts.
func (m *Metrics) Read() MetricsSnapshot {
	return MetricsSnapshot{
		DeadlineExceeded: atomic.LoadUint64(&m.deadlineExceeded),
		Canceled:         atomic.LoadUint64(&m.canceled),
		CallLimit:        atomic.LoadUint64(&m.callLimit),
		Other:            atomic.LoadUint64(&m.other),
	}
}
