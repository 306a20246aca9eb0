package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeApplied = "applied"
	OutcomeNoop    = "noop"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodorder_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "foodorder_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route", "status"},
	)

	lifecycleOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodorder_lifecycle_operations_total",
			Help: "Cart and order lifecycle operations by outcome",
		},
		[]string{"operation", "outcome"},
	)
)

// Middleware records request count and latency labelled by the chi route
// pattern, so path parameters do not explode cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		code := strconv.Itoa(status)

		httpRequestsTotal.WithLabelValues(r.Method, route, code).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route, code).Observe(time.Since(start).Seconds())
	})
}

// RecordLifecycleOperation counts one cart/order operation. applied is false
// when the call was a no-op.
func RecordLifecycleOperation(operation string, applied bool) {
	outcome := OutcomeApplied
	if !applied {
		outcome = OutcomeNoop
	}
	lifecycleOperations.WithLabelValues(operation, outcome).Inc()
}

// LifecycleCount exposes the current counter value for a label pair.
func LifecycleCount(operation, outcome string) prometheus.Counter {
	return lifecycleOperations.WithLabelValues(operation, outcome)
}
