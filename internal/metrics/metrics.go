package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Protocol round metrics, one increment per HTTP round the orchestrator
	// completes successfully.
	ProtocolRoundsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecdsa_protocol_rounds_total",
			Help: "Total number of protocol rounds completed",
		},
		[]string{"protocol", "round"}, // protocol: keygen/sign/rotate/recover
	)

	ProtocolRoundLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ecdsa_protocol_round_latency_seconds",
			Help:    "Latency of a single protocol round in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		},
		[]string{"protocol", "round"},
	)

	ProtocolErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecdsa_protocol_errors_total",
			Help: "Total number of protocol round failures by error class",
		},
		[]string{"protocol", "round", "error_class"},
	)

	// ActiveShareRejectionsTotal counts keygen attempts rejected by the
	// active-share guard.
	ActiveShareRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ecdsa_active_share_rejections_total",
			Help: "Total number of keygen requests rejected due to an existing active share",
		},
	)

	// API metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecdsa_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ecdsa_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecdsa_auth_attempts_total",
			Help: "Total number of bearer token verification attempts",
		},
		[]string{"result"}, // success, failure
	)

	StorageOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecdsa_storage_operations_total",
			Help: "Total number of persistence adapter operations",
		},
		[]string{"backend", "op", "result"}, // backend: local/cloud, op: insert/get/has_active_share
	)
)

// MetricsMiddleware wraps HTTP handlers with request count/latency metrics.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: 200}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := r.URL.Path

		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Handler returns the Prometheus metrics handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordProtocolRound records a completed protocol round and its latency.
func RecordProtocolRound(protocol, round string, latency time.Duration) {
	ProtocolRoundsTotal.WithLabelValues(protocol, round).Inc()
	ProtocolRoundLatency.WithLabelValues(protocol, round).Observe(latency.Seconds())
}

// RecordProtocolError records a failed protocol round.
func RecordProtocolError(protocol, round, errorClass string) {
	ProtocolErrorsTotal.WithLabelValues(protocol, round, errorClass).Inc()
}

// RecordActiveShareRejection records a keygen rejected by the active-share guard.
func RecordActiveShareRejection() {
	ActiveShareRejectionsTotal.Inc()
}

// RecordAuthAttempt records a bearer token verification outcome.
func RecordAuthAttempt(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	AuthAttemptsTotal.WithLabelValues(result).Inc()
}

// RecordStorageOp records a persistence adapter operation outcome.
func RecordStorageOp(backend, op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	StorageOperationsTotal.WithLabelValues(backend, op, result).Inc()
}
