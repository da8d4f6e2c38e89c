package webapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the API's Prometheus collectors. Each Metrics owns its
// registry so servers built in tests do not collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	// evaluations counts evaluate requests.
	// Labels: mode (classification, regression), status (ok, invalid)
	evaluations *prometheus.CounterVec

	// evaluationDuration measures time spent inside the evaluator.
	// Labels: mode
	evaluationDuration *prometheus.HistogramVec

	// rows tracks the size of evaluated tables.
	// Labels: mode
	rows *prometheus.HistogramVec

	// requests counts HTTP requests by route pattern and status code.
	requests *prometheus.CounterVec
}

// NewMetrics creates the collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "versus",
			Subsystem: "api",
			Name:      "evaluations_total",
			Help:      "Evaluate requests by mode and outcome",
		}, []string{"mode", "status"}),
		evaluationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "versus",
			Subsystem: "api",
			Name:      "evaluation_duration_seconds",
			Help:      "Time spent computing an evaluation",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"mode"}),
		rows: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "versus",
			Subsystem: "api",
			Name:      "evaluation_rows",
			Help:      "Data rows per evaluated table",
			Buckets:   prometheus.ExponentialBuckets(10, 10, 6),
		}, []string{"mode"}),
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "versus",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "code"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) recordEvaluation(mode, status string, d time.Duration, rows int) {
	m.evaluations.WithLabelValues(mode, status).Inc()
	if status == "ok" {
		m.evaluationDuration.WithLabelValues(mode).Observe(d.Seconds())
		m.rows.WithLabelValues(mode).Observe(float64(rows))
	}
}

// Middleware counts each request under the mux pattern that matched it.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, strconv.Itoa(sw.status)).Inc()
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
