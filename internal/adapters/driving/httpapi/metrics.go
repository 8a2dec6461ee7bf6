package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the collectors of one server. Each server owns its registry
// so several can coexist in one process.
type metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	activeRequests  prometheus.Gauge
	rateLimitHits   prometheus.Counter

	recommendations       *prometheus.CounterVec
	recommendationResults prometheus.Histogram
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &metrics{
		registry: reg,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sourcy_http_requests_total",
				Help: "Total HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sourcy_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
		activeRequests: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "sourcy_http_active_requests",
				Help: "Requests currently being served",
			},
		),
		rateLimitHits: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "sourcy_http_rate_limit_hits_total",
				Help: "Requests rejected by the rate limiter",
			},
		),
		recommendations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sourcy_recommendations_total",
				Help: "Recommendation requests by selection mode and outcome",
			},
			[]string{"mode", "outcome"},
		),
		recommendationResults: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sourcy_recommendation_results",
				Help:    "Number of products returned per recommendation request",
				Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
			},
		),
	}
}

// handler serves the registry in the Prometheus exposition format.
func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// observeRecommendation records the outcome of one recommendation request.
func (m *metrics) observeRecommendation(mode, outcome string, results int) {
	m.recommendations.WithLabelValues(mode, outcome).Inc()
	if outcome == "ok" || outcome == "empty" {
		m.recommendationResults.Observe(float64(results))
	}
}

// instrument records request counts and latency. The route label is the
// matched chi pattern so path parameters do not explode cardinality.
func (m *metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.activeRequests.Inc()
		defer m.activeRequests.Dec()

		start := time.Now()
		wrapper := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(wrapper.statusCode)).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
