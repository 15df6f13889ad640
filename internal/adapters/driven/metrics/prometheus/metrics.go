// Package prometheus records aggregation pipeline metrics in a Prometheus
// registry and serves them over HTTP.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/trustsearch/internal/core/ports/driven"
)

// Ensure Metrics implements the interface.
var _ driven.Metrics = (*Metrics)(nil)

const namespace = "trustsearch"

// Metrics implements driven.Metrics with Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	providerDuration *prometheus.HistogramVec
	providerItems    *prometheus.CounterVec
	providerEmpty    *prometheus.CounterVec

	aggregationDuration prometheus.Histogram
	aggregationItems    prometheus.Histogram

	cacheRequests *prometheus.CounterVec
}

// New creates the collectors and registers them in a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		providerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "provider",
			Name:      "duration_seconds",
			Help:      "Time spent in one provider call, including abandoned calls.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 15},
		}, []string{"provider"}),
		providerItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "provider",
			Name:      "items_total",
			Help:      "Candidate items contributed by each provider.",
		}, []string{"provider"}),
		providerEmpty: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "provider",
			Name:      "empty_total",
			Help:      "Provider calls that contributed no items.",
		}, []string{"provider"}),
		aggregationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "aggregation",
			Name:      "duration_seconds",
			Help:      "Time spent in one full pipeline run.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 15, 20},
		}),
		aggregationItems: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "aggregation",
			Name:      "items",
			Help:      "Items returned across all sections per run.",
			Buckets:   prometheus.LinearBuckets(0, 10, 9),
		}),
		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "requests_total",
			Help:      "Aggregation cache lookups by result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		m.providerDuration,
		m.providerItems,
		m.providerEmpty,
		m.aggregationDuration,
		m.aggregationItems,
		m.cacheRequests,
	)
	return m
}

// ObserveProvider records one provider call.
func (m *Metrics) ObserveProvider(provider string, d time.Duration, items int) {
	m.providerDuration.WithLabelValues(provider).Observe(d.Seconds())
	m.providerItems.WithLabelValues(provider).Add(float64(items))
	if items == 0 {
		m.providerEmpty.WithLabelValues(provider).Inc()
	}
}

// ObserveAggregation records one full pipeline run.
func (m *Metrics) ObserveAggregation(d time.Duration, items int) {
	m.aggregationDuration.Observe(d.Seconds())
	m.aggregationItems.Observe(float64(items))
}

// CacheHit counts a result served from the cache.
func (m *Metrics) CacheHit() {
	m.cacheRequests.WithLabelValues("hit").Inc()
}

// CacheMiss counts a request that ran the pipeline.
func (m *Metrics) CacheMiss() {
	m.cacheRequests.WithLabelValues("miss").Inc()
}

// Registry returns the registry holding the pipeline collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
