package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/metrics"
)

func TestMetricsHandler(t *testing.T) {
	recorder := metrics.NewInMemory()
	recorder.IncDashboardBuilt()
	recorder.ObserveAggregationDuration(1500 * time.Microsecond)
	recorder.IncExport("csv")
	recorder.IncExport("csv")
	recorder.IncResponseSubmitted("rejected")
	recorder.IncRateLimited("submit")

	h := NewMetricsHandler(recorder)
	rec := httptest.NewRecorder()
	h.Metrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, line := range []string{
		"rsvp_dashboards_built_total 1\n",
		"rsvp_dashboard_aggregation_seconds_sum 0.001500\n",
		"rsvp_exports_total{format=\"csv\"} 2\n",
		"rsvp_exports_total{format=\"json\"} 0\n",
		"rsvp_responses_submitted_total{status=\"rejected\"} 1\n",
		"rsvp_rate_limited_total{scope=\"submit\"} 1\n",
	} {
		if !strings.Contains(body, line) {
			t.Errorf("missing %q in:\n%s", line, body)
		}
	}
}

func TestMetricsHandler_NoSnapshotter(t *testing.T) {
	h := NewMetricsHandler(nil)
	rec := httptest.NewRecorder()
	h.Metrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rec.Code)
	}
}
