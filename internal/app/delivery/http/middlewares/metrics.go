package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "patient_service"

const unmatchedRoute = "unmatched"

type RequestMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// NewRequestMetrics registers the HTTP collectors on registerer.
func NewRequestMetrics(registerer prometheus.Registerer) *RequestMetrics {
	factory := promauto.With(registerer)
	return &RequestMetrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "Total number of requests processed",
		}, []string{"method", "route", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "Request duration",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_in_flight",
			Help:      "The number of requests being served at the moment",
		}),
	}
}

// Metrics labels by chi route pattern, so /patient/P1 and /patient/P2 share
// one series.
func (m *Middlewares) Metrics(next http.Handler) http.Handler {
	if m.RequestMetrics == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.RequestMetrics.inFlight.Inc()
		defer m.RequestMetrics.inFlight.Dec()

		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := unmatchedRoute
		if routeContext := chi.RouteContext(r.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		m.RequestMetrics.requests.WithLabelValues(r.Method, route, strconv.Itoa(rec.statusCode)).Inc()
		m.RequestMetrics.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
