package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	c, err := vec.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("get metric: %v", err)
	}
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestMetricsMiddleware_CountsRequests(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := MetricsMiddleware(metrics)(inner)

	for range 3 {
		req := httptest.NewRequest(http.MethodPost, "/v1/check", nil)
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	if got := counterValue(t, metrics.RequestsTotal, "/v1/check", "ok"); got != 3 {
		t.Errorf("requests_total{/v1/check,ok} = %v, want 3", got)
	}
}

func TestMetricsMiddleware_ErrorLabel(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	h := MetricsMiddleware(metrics)(inner)

	req := httptest.NewRequest(http.MethodPost, "/v1/check", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got := counterValue(t, metrics.RequestsTotal, "/v1/check", "error"); got != 1 {
		t.Errorf("requests_total{/v1/check,error} = %v, want 1", got)
	}
}

func TestMetricsMiddleware_SkipsProbeEndpoints(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := MetricsMiddleware(metrics)(inner)

	for _, path := range []string{"/metrics", "/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		h.ServeHTTP(httptest.NewRecorder(), req)

		if got := counterValue(t, metrics.RequestsTotal, path, "ok"); got != 0 {
			t.Errorf("requests_total{%s,ok} = %v, want 0", path, got)
		}
	}
}

func TestStatusToLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code int
		want string
	}{
		{200, "ok"},
		{204, "ok"},
		{301, "ok"},
		{400, "error"},
		{401, "error"},
		{500, "error"},
	}
	for _, tt := range tests {
		if got := statusToLabel(tt.code); got != tt.want {
			t.Errorf("statusToLabel(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestGatewayMetrics_AuthFailures(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	capture := &captureHandler{}
	h := newTestHandler(testToken, capture, WithMetrics(metrics))

	post(h, "/v1/check", `{}`, nil)

	if got := counterValue(t, metrics.AuthFailuresTotal, "unauthorized"); got != 1 {
		t.Errorf("auth_failures_total{unauthorized} = %v, want 1", got)
	}

	hMissing := newTestHandler("", capture, WithMetrics(metrics))
	post(hMissing, "/v1/check", `{}`, nil)

	if got := counterValue(t, metrics.AuthFailuresTotal, "missing_server_secret"); got != 1 {
		t.Errorf("auth_failures_total{missing_server_secret} = %v, want 1", got)
	}
}

func TestGatewayMetrics_HandlerErrors(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	capture := &captureHandler{err: errors.New("handler failed")}
	h := newTestHandler(testToken, capture, WithMetrics(metrics))
	postAuthed(h, "/v1/check", `{}`)

	if got := counterValue(t, metrics.HandlerErrorsTotal, "check"); got != 1 {
		t.Errorf("handler_errors_total{check} = %v, want 1", got)
	}
}
