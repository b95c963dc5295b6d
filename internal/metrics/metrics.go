package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the Cleanaid client
type Metrics struct {
	// Transport metrics
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestFailures *prometheus.CounterVec
	AuthRedirects   prometheus.Counter

	// Cache metrics
	CacheHits          *prometheus.CounterVec
	CacheMisses        *prometheus.CounterVec
	CacheFetches       *prometheus.CounterVec
	CacheInvalidations *prometheus.CounterVec
	CacheEvictions     prometheus.Counter
	CacheEntries       prometheus.Gauge

	// Mutation metrics
	Mutations *prometheus.CounterVec

	// Error metrics (by error code from structured errors)
	Errors *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cleanaid_http_requests_total",
				Help: "Total number of admin API requests by method and status",
			},
			[]string{"method", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cleanaid_http_request_duration_seconds",
				Help:    "Admin API request latency in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"method"},
		),
		RequestFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cleanaid_http_request_failures_total",
				Help: "Total number of admin API requests that got no response",
			},
			[]string{"method", "error_code"},
		),
		AuthRedirects: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "cleanaid_auth_redirects_total",
				Help: "Total number of login redirects triggered by a 401",
			},
		),

		CacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cleanaid_cache_hits_total",
				Help: "Total number of reads served from fresh cache entries",
			},
			[]string{"namespace"},
		),
		CacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cleanaid_cache_misses_total",
				Help: "Total number of reads that needed a fetch",
			},
			[]string{"namespace"},
		),
		CacheFetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cleanaid_cache_fetches_total",
				Help: "Total number of completed cache fetches by outcome",
			},
			[]string{"namespace", "outcome"},
		),
		CacheInvalidations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cleanaid_cache_invalidations_total",
				Help: "Total number of cache entries marked stale",
			},
			[]string{"namespace"},
		),
		CacheEvictions: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "cleanaid_cache_evictions_total",
				Help: "Total number of inactive cache entries garbage collected",
			},
		),
		CacheEntries: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "cleanaid_cache_entries",
				Help: "Number of entries currently held by the cache",
			},
		),

		Mutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cleanaid_mutations_total",
				Help: "Total number of executed mutations",
			},
			[]string{"success"},
		),

		Errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cleanaid_errors_total",
				Help: "Total number of errors by error code",
			},
			[]string{"error_code", "component"},
		),
	}
}

// The helpers below accept a nil receiver so components can run without metrics.

// ObserveRequest records a request that received a response.
func (m *Metrics) ObserveRequest(method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveFailure records a request that failed before a response arrived.
func (m *Metrics) ObserveFailure(method, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestFailures.WithLabelValues(method, code).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// AuthRedirect counts a login redirect.
func (m *Metrics) AuthRedirect() {
	if m == nil {
		return
	}
	m.AuthRedirects.Inc()
}

// CacheHit counts a read served without fetching.
func (m *Metrics) CacheHit(namespace string) {
	if m == nil {
		return
	}
	m.CacheHits.WithLabelValues(namespace).Inc()
}

// CacheMiss counts a read that needed a fetch.
func (m *Metrics) CacheMiss(namespace string) {
	if m == nil {
		return
	}
	m.CacheMisses.WithLabelValues(namespace).Inc()
}

// CacheFetch counts a finished fetch. Outcome is success, error or cancelled.
func (m *Metrics) CacheFetch(namespace, outcome string) {
	if m == nil {
		return
	}
	m.CacheFetches.WithLabelValues(namespace, outcome).Inc()
}

// CacheInvalidated counts n entries marked stale.
func (m *Metrics) CacheInvalidated(namespace string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.CacheInvalidations.WithLabelValues(namespace).Add(float64(n))
}

// CacheEvicted counts one garbage collected entry.
func (m *Metrics) CacheEvicted() {
	if m == nil {
		return
	}
	m.CacheEvictions.Inc()
}

// SetCacheEntries sets the entry gauge.
func (m *Metrics) SetCacheEntries(n int) {
	if m == nil {
		return
	}
	m.CacheEntries.Set(float64(n))
}

// Mutation counts an executed mutation.
func (m *Metrics) Mutation(success bool) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(strconv.FormatBool(success)).Inc()
}

// Error counts an error by code and component.
func (m *Metrics) Error(code, component string) {
	if m == nil || code == "" {
		return
	}
	m.Errors.WithLabelValues(code, component).Inc()
}
