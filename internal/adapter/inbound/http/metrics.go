package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the gateway.
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	AuthFailuresTotal  *prometheus.CounterVec
	HandlerErrorsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics with the given registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RequestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fngate",
				Name:      "requests_total",
				Help:      "Total number of gateway requests processed",
			},
			[]string{"path", "status"}, // status=ok/error
		),
		RequestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "fngate",
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"path"},
		),
		AuthFailuresTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fngate",
				Name:      "auth_failures_total",
				Help:      "Total authentication failures",
			},
			[]string{"reason"}, // reason=unauthorized/missing_server_secret
		),
		HandlerErrorsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fngate",
				Name:      "handler_errors_total",
				Help:      "Total handler invocations that returned an error",
			},
			[]string{"route"},
		),
	}
}
