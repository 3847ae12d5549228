package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncDashboardBuilt is a no-op.
func (n *NoopRecorder) IncDashboardBuilt() {}

// ObserveAggregationDuration is a no-op.
func (n *NoopRecorder) ObserveAggregationDuration(duration time.Duration) {}

// IncExport is a no-op.
func (n *NoopRecorder) IncExport(format string) {}

// IncFilterRejected is a no-op.
func (n *NoopRecorder) IncFilterRejected() {}

// IncResponseSubmitted is a no-op.
func (n *NoopRecorder) IncResponseSubmitted(status string) {}

// IncRateLimited is a no-op.
func (n *NoopRecorder) IncRateLimited(scope string) {}
