package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bryanwahyu/rcis/internal/analytics"
)

// Metrics holds the Prometheus collectors for the HTTP surface and the
// insight engine.
type Metrics struct {
	gatherer prometheus.Gatherer

	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	inFlight  prometheus.Gauge
	insights  *prometheus.CounterVec
	narrative *prometheus.CounterVec
}

// NewMetrics registers collectors on reg. Pass a fresh registry in tests.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rcis",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rcis",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "rcis",
			Name:      "http_requests_in_flight",
			Help:      "Requests currently being served.",
		}),
		insights: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rcis",
			Name:      "insights_generated_total",
			Help:      "Pattern alerts returned, by type.",
		}, []string{"type"}),
		narrative: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rcis",
			Name:      "narratives_total",
			Help:      "AI narrative requests by outcome.",
		}, []string{"outcome"}),
	}
}

// Middleware tracks request count, latency and in-flight requests.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		start := time.Now()
		wrapped := wrap(w)
		next.ServeHTTP(wrapped, r)

		route := routePattern(r)
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.statusCode)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) ObserveInsights(list []analytics.Insight) {
	for _, in := range list {
		m.insights.WithLabelValues(in.Type).Inc()
	}
}

func (m *Metrics) ObserveNarrative(outcome string) {
	m.narrative.WithLabelValues(outcome).Inc()
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
