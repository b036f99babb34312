package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "discount24"

// OutcomeNetworkError labels requests that never produced a status.
const OutcomeNetworkError = "network_error"

// Metrics counts HTTP requests and their latency for one side of the wire.
type Metrics struct {
	Registry        *prometheus.Registry
	Requests        *prometheus.CounterVec
	Latency         *prometheus.HistogramVec
	SessionsExpired prometheus.Counter
}

// NewMetrics registers request metrics under discount24_<subsystem>_* on a
// fresh registry, so several instances can live in one process (tests).
func NewMetrics(subsystem string) *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "requests_total",
			Help:      "HTTP requests by method and status code or failure outcome.",
		}, []string{"method", "code"}),
		Latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		SessionsExpired: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sessions_expired_total",
			Help:      "Sessions torn down after a 401.",
		}),
	}
}

// Observe records one finished request. code is an HTTP status, or 0 with a
// non-empty outcome for failures before a status was available.
func (m *Metrics) Observe(method string, code int, outcome string, started time.Time) {
	if m == nil {
		return
	}
	label := outcome
	if code != 0 {
		label = strconv.Itoa(code)
	}
	m.Requests.WithLabelValues(method, label).Inc()
	m.Latency.WithLabelValues(method).Observe(time.Since(started).Seconds())
}

// SessionExpired counts one session teardown.
func (m *Metrics) SessionExpired() {
	if m == nil {
		return
	}
	m.SessionsExpired.Inc()
}
