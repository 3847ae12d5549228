// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Dashboard metrics
	IncDashboardBuilt()
	ObserveAggregationDuration(duration time.Duration)
	IncExport(format string) // format: "csv", "json", "excel"
	IncFilterRejected()

	// Guest submission metrics
	IncResponseSubmitted(status string) // status: "accepted" or "rejected"

	// Rate limiting
	IncRateLimited(scope string) // scope: "api" or "submit"
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
