package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	DashboardsBuilt            uint64
	AggregationDurationCount   uint64
	AggregationDurationTotalNs int64
	ExportsCSV                 uint64
	ExportsJSON                uint64
	ExportsExcel               uint64
	FiltersRejected            uint64
	ResponsesAccepted          uint64
	ResponsesRejected          uint64
	RateLimitedAPI             uint64
	RateLimitedSubmit          uint64
}

// InMemoryRecorder stores metrics in memory for tests and the /metrics endpoint.
type InMemoryRecorder struct {
	dashboardsBuilt            uint64
	aggregationDurationCount   uint64
	aggregationDurationTotalNs int64
	exportsCSV                 uint64
	exportsJSON                uint64
	exportsExcel               uint64
	filtersRejected            uint64
	responsesAccepted          uint64
	responsesRejected          uint64
	rateLimitedAPI             uint64
	rateLimitedSubmit          uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		DashboardsBuilt:            atomic.LoadUint64(&m.dashboardsBuilt),
		AggregationDurationCount:   atomic.LoadUint64(&m.aggregationDurationCount),
		AggregationDurationTotalNs: atomic.LoadInt64(&m.aggregationDurationTotalNs),
		ExportsCSV:                 atomic.LoadUint64(&m.exportsCSV),
		ExportsJSON:                atomic.LoadUint64(&m.exportsJSON),
		ExportsExcel:               atomic.LoadUint64(&m.exportsExcel),
		FiltersRejected:            atomic.LoadUint64(&m.filtersRejected),
		ResponsesAccepted:          atomic.LoadUint64(&m.responsesAccepted),
		ResponsesRejected:          atomic.LoadUint64(&m.responsesRejected),
		RateLimitedAPI:             atomic.LoadUint64(&m.rateLimitedAPI),
		RateLimitedSubmit:          atomic.LoadUint64(&m.rateLimitedSubmit),
	}
}

// IncDashboardBuilt increments the dashboards built counter.
func (m *InMemoryRecorder) IncDashboardBuilt() {
	atomic.AddUint64(&m.dashboardsBuilt, 1)
}

// ObserveAggregationDuration records how long one aggregation pass took.
func (m *InMemoryRecorder) ObserveAggregationDuration(duration time.Duration) {
	atomic.AddUint64(&m.aggregationDurationCount, 1)
	atomic.AddInt64(&m.aggregationDurationTotalNs, duration.Nanoseconds())
}

// IncExport increments the export counter for a format.
func (m *InMemoryRecorder) IncExport(format string) {
	switch format {
	case "csv":
		atomic.AddUint64(&m.exportsCSV, 1)
	case "json":
		atomic.AddUint64(&m.exportsJSON, 1)
	case "excel":
		atomic.AddUint64(&m.exportsExcel, 1)
	}
}

// IncFilterRejected increments the rejected filter counter.
func (m *InMemoryRecorder) IncFilterRejected() {
	atomic.AddUint64(&m.filtersRejected, 1)
}

// IncResponseSubmitted increments the guest submission counter.
func (m *InMemoryRecorder) IncResponseSubmitted(status string) {
	switch status {
	case "accepted":
		atomic.AddUint64(&m.responsesAccepted, 1)
	case "rejected":
		atomic.AddUint64(&m.responsesRejected, 1)
	}
}

// IncRateLimited increments the rate limit counter for a scope.
func (m *InMemoryRecorder) IncRateLimited(scope string) {
	switch scope {
	case "api":
		atomic.AddUint64(&m.rateLimitedAPI, 1)
	case "submit":
		atomic.AddUint64(&m.rateLimitedSubmit, 1)
	}
}
