package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	initOnce sync.Once

	// Console HTTP metrics
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Backend API client metrics
	backendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_requests_total",
			Help: "Total number of backend API requests.",
		},
		[]string{"method", "endpoint", "status"},
	)

	backendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Backend API request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// Init registers all collectors exactly once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(httpRequestsTotal)
		prometheus.MustRegister(httpRequestDuration)
		prometheus.MustRegister(backendRequestsTotal)
		prometheus.MustRegister(backendRequestDuration)
	})
}

// Handler exposes the /metrics HTTP handler.
func Handler() http.Handler {
	Init()
	return promhttp.Handler()
}

// statusCapturingWriter records the response status for the HTTP middleware.
type statusCapturingWriter struct {
	w      http.ResponseWriter
	status int
}

func (s *statusCapturingWriter) Header() http.Header         { return s.w.Header() }
func (s *statusCapturingWriter) Write(b []byte) (int, error) { return s.w.Write(b) }
func (s *statusCapturingWriter) WriteHeader(code int) {
	s.status = code
	s.w.WriteHeader(code)
}

// HTTPMetricsMiddleware captures basic HTTP metrics for the console itself.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	Init()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		scw := &statusCapturingWriter{w: w, status: 200}
		next.ServeHTTP(scw, r)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(scw.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

// ObserveBackend records one backend API call.
func ObserveBackend(method, endpoint string, status int, duration time.Duration) {
	Init()
	backendRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	backendRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
