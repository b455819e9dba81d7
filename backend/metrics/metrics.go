// ABOUTME: Prometheus collectors for HTTP traffic and sizing calculations
// ABOUTME: Owns a private registry exposed through the /metrics handler

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "avi_sizer"

// Estimate kinds and outcomes used as label values
const (
	KindQuick    = "quick"
	KindAdvanced = "advanced"

	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeCached  = "cached"
)

var latencyBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}

// Metrics holds the service collectors. A nil *Metrics records nothing,
// so callers can run with metrics disabled.
type Metrics struct {
	registry *prometheus.Registry

	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	estimates *prometheus.CounterVec
	peakSUs   prometheus.Histogram
}

// New creates collectors on a fresh registry together with the Go runtime
// and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests partitioned by status code, method and route pattern.",
		}, []string{"code", "method", "path"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Time spent serving HTTP requests partitioned by method and route pattern.",
			Buckets:   latencyBuckets,
		}, []string{"method", "path"}),
		estimates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "estimates_total",
			Help:      "Number of sizing estimates partitioned by kind and outcome.",
		}, []string{"kind", "outcome"}),
		peakSUs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "advanced_peak_service_units",
			Help:      "Peak yearly grand total of service units returned by advanced estimates.",
			Buckets:   prometheus.ExponentialBuckets(8, 2, 10),
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.latency,
		m.estimates,
		m.peakSUs,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests and extra collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveEstimate counts one estimate request
func (m *Metrics) ObserveEstimate(kind, outcome string) {
	if m == nil {
		return
	}
	m.estimates.WithLabelValues(kind, outcome).Inc()
}

// ObservePeakSUs records the peak grand total of an advanced estimate
func (m *Metrics) ObservePeakSUs(sus int) {
	if m == nil {
		return
	}
	m.peakSUs.Observe(float64(sus))
}

// statusRecorder captures the response code for labeling
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Instrument wraps a handler registered on a ServeMux. The route pattern
// rather than the raw path is used as the label to bound cardinality.
func (m *Metrics) Instrument(next http.HandlerFunc) http.HandlerFunc {
	if m == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		m.requests.WithLabelValues(strconv.Itoa(rec.status), r.Method, path).Inc()
		m.latency.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	}
}
