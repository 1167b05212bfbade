// Package metrics provides Prometheus metrics and HTTP middleware
// for monitoring the forum API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestsTotal counts all HTTP requests by method, route pattern, and status.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDuration records HTTP request duration in seconds by method and route pattern.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "forum_request_duration_seconds",
			Help:    "Request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// AuthFailuresTotal counts authentication failures by kind
	// (login, invalid_token, expired_token, malformed_header).
	AuthFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_auth_failures_total",
			Help: "Authentication failures",
		},
		[]string{"kind"},
	)

	// OwnershipDenialsTotal counts mutations denied by the ownership rule.
	OwnershipDenialsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "forum_ownership_denials_total",
			Help: "Mutations denied because the principal is not the resource author",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		AuthFailuresTotal,
		OwnershipDenialsTotal,
	)
}

// statusRecorder captures the response status code for metrics labeling.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware instruments every request with a counter and a duration
// histogram. The path label uses the chi route pattern rather than the
// raw URL, which keeps label cardinality bounded.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		RequestsTotal.WithLabelValues(
			r.Method, path, strconv.Itoa(rec.status)).Inc()
		RequestDuration.WithLabelValues(
			r.Method, path).Observe(time.Since(start).Seconds())
	})
}
