package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	scoresSaved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_scores_saved_total",
			Help: "Total number of score cards saved, by resulting status",
		},
		[]string{"status"},
	)

	leadsImported = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_imported_total",
			Help: "Total number of roster rows imported",
		},
	)

	importRowsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "import_rows_skipped_total",
			Help: "Total number of import rows dropped for lacking an identifier",
		},
	)

	unlockAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_unlock_attempts_total",
			Help: "Total number of access gate unlock attempts",
		},
		[]string{"result"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordScoreSaved(status string) {
	scoresSaved.WithLabelValues(status).Inc()
}

func RecordImport(imported, skipped int) {
	leadsImported.Add(float64(imported))
	importRowsSkipped.Add(float64(skipped))
}

func RecordUnlockAttempt(ok bool) {
	result := "denied"
	if ok {
		result = "granted"
	}
	unlockAttempts.WithLabelValues(result).Inc()
}
