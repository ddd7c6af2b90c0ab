package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ClientMetrics tracks calls the client makes against the inventory API.
// All methods are safe on a nil receiver so metrics stay optional.
type ClientMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	AuthAttempts    *prometheus.CounterVec
}

// NewClientMetrics registers the client metrics on reg using the configured prefix
func NewClientMetrics(prefix string, reg prometheus.Registerer) *ClientMetrics {
	factory := promauto.With(reg)

	return &ClientMetrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_api_requests_total",
				Help: "Total number of inventory API requests",
			},
			[]string{"operation", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_api_request_duration_seconds",
				Help:    "Duration of inventory API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		AuthAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_auth_attempts_total",
				Help: "Total number of login and register attempts",
			},
			[]string{"kind", "outcome"},
		),
	}
}

// ObserveRequest records one API call. A zero status means the request never got a response.
func (m *ClientMetrics) ObserveRequest(operation string, status int, start time.Time) {
	if m == nil {
		return
	}

	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.RequestsTotal.WithLabelValues(operation, label).Inc()
	m.RequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// RecordAuth counts a login or register attempt with its outcome
func (m *ClientMetrics) RecordAuth(kind, outcome string) {
	if m == nil {
		return
	}
	m.AuthAttempts.WithLabelValues(kind, outcome).Inc()
}

// Handler returns an HTTP handler exposing the metrics gathered by g
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
