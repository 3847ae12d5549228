package handler

import (
	"fmt"
	"net/http"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "rsvp_dashboards_built_total %d\n", snap.DashboardsBuilt)
	writeMetric(w, "rsvp_dashboard_aggregation_seconds_count %d\n", snap.AggregationDurationCount)
	writeMetric(w, "rsvp_dashboard_aggregation_seconds_sum %.6f\n", float64(snap.AggregationDurationTotalNs)/1e9)

	writeMetric(w, "rsvp_exports_total{format=\"csv\"} %d\n", snap.ExportsCSV)
	writeMetric(w, "rsvp_exports_total{format=\"json\"} %d\n", snap.ExportsJSON)
	writeMetric(w, "rsvp_exports_total{format=\"excel\"} %d\n", snap.ExportsExcel)
	writeMetric(w, "rsvp_filters_rejected_total %d\n", snap.FiltersRejected)

	writeMetric(w, "rsvp_responses_submitted_total{status=\"accepted\"} %d\n", snap.ResponsesAccepted)
	writeMetric(w, "rsvp_responses_submitted_total{status=\"rejected\"} %d\n", snap.ResponsesRejected)

	writeMetric(w, "rsvp_rate_limited_total{scope=\"api\"} %d\n", snap.RateLimitedAPI)
	writeMetric(w, "rsvp_rate_limited_total{scope=\"submit\"} %d\n", snap.RateLimitedSubmit)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
