package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vendordocs"

// Metrics contadores de negocio expuestos en /metrics.
type Metrics struct {
	LoginsTotal  *prometheus.CounterVec
	UploadsTotal *prometheus.CounterVec
	UploadBytes  prometheus.Counter
	ReviewsTotal *prometheus.CounterVec
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	registry     *prometheus.Registry
}

// New registra las métricas en un registro propio (uno por app, también en tests)
// junto con los collectors de proceso y runtime.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Metrics{
		LoginsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Total login attempts by outcome.",
		}, []string{"outcome"}), // outcome: success, invalid_credentials, throttled
		UploadsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "uploads_total",
			Help:      "Total uploaded documents by category.",
		}, []string{"category"}),
		UploadBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "upload_bytes_total",
			Help:      "Total bytes of uploaded documents.",
		}),
		ReviewsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "reviews_total",
			Help:      "Total review decisions by resulting status and reviewer role.",
		}, []string{"status", "role"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		registry: reg,
	}
}

// Registry registro para el handler promhttp.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// LoginAttempt implementa auth.LoginMetrics.
func (m *Metrics) LoginAttempt(outcome string) {
	m.LoginsTotal.WithLabelValues(outcome).Inc()
}

// DocumentUploaded implementa documents.Metrics.
func (m *Metrics) DocumentUploaded(category string, size int64) {
	m.UploadsTotal.WithLabelValues(category).Inc()
	if size > 0 {
		m.UploadBytes.Add(float64(size))
	}
}

// DocumentReviewed implementa documents.Metrics.
func (m *Metrics) DocumentReviewed(status, role string) {
	m.ReviewsTotal.WithLabelValues(status, role).Inc()
}
