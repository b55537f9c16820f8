package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"climate-dashboard/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddleware_RecordsNormalizedPath(t *testing.T) {
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/feed" {
			_, _ = w.Write([]byte("[]"))
			return
		}
		http.NotFound(w, r)
	}))

	tests := []struct {
		path         string
		expectedPath string
		status       string
	}{
		{"/api/feed", "/api/feed", "200"},
		{"/wp-admin/setup.php", "/other", "404"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			before := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, tt.expectedPath, tt.status))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			after := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, tt.expectedPath, tt.status))
			if after-before != 1 {
				t.Errorf("http_requests_total{path=%q,status=%q} delta = %v, want 1", tt.expectedPath, tt.status, after-before)
			}
		})
	}
}

func TestMetricsMiddleware_InFlightReturnsToZero(t *testing.T) {
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := testutil.ToFloat64(httpRequestsInFlight); got < 1 {
			t.Errorf("in-flight during request = %v, want >= 1", got)
		}
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	if got := testutil.ToFloat64(httpRequestsInFlight); got != 0 {
		t.Errorf("in-flight after request = %v, want 0", got)
	}
}

func TestMetricsHandler_ExposesDashboardMetrics(t *testing.T) {
	metrics.RecordUpdateSubmitted("accepted")

	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "dashboard_updates_submitted_total") {
		t.Error("metrics output missing updates_submitted_total")
	}
}
