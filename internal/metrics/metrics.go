package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	assessmentsScored *prometheus.CounterVec
	gateDenials       *prometheus.CounterVec
	sessionsActive    prometheus.Gauge
	scansTotal        prometheus.Counter
	scanDuration      prometheus.Histogram
	backtestsTotal    *prometheus.CounterVec
	backtestDuration  prometheus.Histogram
	jobsActive        *prometheus.GaugeVec
	wsClientsActive   prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Business metrics
	r.assessmentsScored = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stratix_assessments_scored_total",
			Help: "Total number of assessments scored",
		},
		[]string{"level"},
	)
	r.gateDenials = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stratix_gate_denials_total",
			Help: "Total number of feature gate denials",
		},
		[]string{"feature"},
	)
	r.sessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "stratix_sessions_active",
			Help: "Number of active user sessions",
		},
	)
	r.scansTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stratix_scans_total",
			Help: "Total number of scanner runs",
		},
	)
	r.scanDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stratix_scan_duration_seconds",
			Help:    "Scanner run duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
	r.backtestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stratix_backtests_total",
			Help: "Total number of backtests",
		},
		[]string{"status"},
	)
	r.backtestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stratix_backtest_duration_seconds",
			Help:    "Backtest duration in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)
	r.jobsActive = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stratix_jobs_active",
			Help: "Number of active jobs",
		},
		[]string{"type"},
	)
	r.wsClientsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "stratix_ws_clients_active",
			Help: "Number of connected quote stream clients",
		},
	)

	reg.MustRegister(r.assessmentsScored)
	reg.MustRegister(r.gateDenials)
	reg.MustRegister(r.sessionsActive)
	reg.MustRegister(r.scansTotal)
	reg.MustRegister(r.scanDuration)
	reg.MustRegister(r.backtestsTotal)
	reg.MustRegister(r.backtestDuration)
	reg.MustRegister(r.jobsActive)
	reg.MustRegister(r.wsClientsActive)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordAssessment records a scored assessment at the resulting level.
func (r *Registry) RecordAssessment(level string) {
	r.assessmentsScored.WithLabelValues(level).Inc()
}

// RecordGateDenial records a feature gate denial.
func (r *Registry) RecordGateDenial(feature string) {
	r.gateDenials.WithLabelValues(feature).Inc()
}

// SessionOpened increments the active session gauge.
func (r *Registry) SessionOpened() {
	r.sessionsActive.Inc()
}

// SessionClosed decrements the active session gauge.
func (r *Registry) SessionClosed() {
	r.sessionsActive.Dec()
}

// RecordScan records a scanner run completion.
func (r *Registry) RecordScan(duration float64) {
	r.scansTotal.Inc()
	r.scanDuration.Observe(duration)
}

// RecordBacktest records a backtest completion.
func (r *Registry) RecordBacktest(status string, duration float64) {
	r.backtestsTotal.WithLabelValues(status).Inc()
	r.backtestDuration.Observe(duration)
}

// SetJobsActive sets the number of active jobs of a type.
func (r *Registry) SetJobsActive(jobType string, count int) {
	r.jobsActive.WithLabelValues(jobType).Set(float64(count))
}

// WSClientConnected increments the connected stream client gauge.
func (r *Registry) WSClientConnected() {
	r.wsClientsActive.Inc()
}

// WSClientDisconnected decrements the connected stream client gauge.
func (r *Registry) WSClientDisconnected() {
	r.wsClientsActive.Dec()
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
