// Package metrics provides observability for tabular using Prometheus
// metrics. Tables report forks, column cache fills, and cast and validation
// failures through a Collector.
//
// # Basic Usage
//
//	collector := metrics.ForNamespace("tabular")
//	t, _ := table.New(rows, names, types, table.WithMetrics(collector))
//
//	http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
//
// A nil *Collector is valid and records nothing, so library code never has
// to check whether metrics are enabled.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every collector created by ForNamespace.
var Registry = prometheus.NewRegistry()

var (
	collectorsMu sync.Mutex
	collectors   = make(map[string]*Collector)
)

// Fork origins
const (
	OriginMap    = "map"
	OriginCounts = "counts"
	OriginCast   = "cast"
)

// Column caches
const (
	CacheData    = "data"
	CacheNonNull = "non_null"
	CacheSorted  = "sorted"
)

// Collector wraps the prometheus counters for one namespace.
type Collector struct {
	namespace          string
	forks              *prometheus.CounterVec
	cacheFills         *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	castFailures       *prometheus.CounterVec
}

// NewCollector creates a collector registered on reg.
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		namespace: namespace,
		forks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "forks_total",
				Help:      "Total number of tables produced by the fork protocol",
			},
			[]string{"origin"},
		),
		cacheFills: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "column_cache_fills_total",
				Help:      "Total number of lazily computed column caches",
			},
			[]string{"cache"},
		),
		validationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_failures_total",
				Help:      "Total number of failed column validations",
			},
			[]string{"column_type"},
		),
		castFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cast_failures_total",
				Help:      "Total number of failed column casts",
			},
			[]string{"column_type"},
		),
	}
}

// ForNamespace returns the collector for namespace on Registry, creating it
// on first use.
func ForNamespace(namespace string) *Collector {
	collectorsMu.Lock()
	defer collectorsMu.Unlock()

	if c, ok := collectors[namespace]; ok {
		return c
	}
	c := NewCollector(namespace, Registry)
	collectors[namespace] = c
	return c
}

// Namespace returns the collector namespace.
func (c *Collector) Namespace() string {
	if c == nil {
		return ""
	}
	return c.namespace
}

// RecordFork counts a table produced by the fork protocol.
func (c *Collector) RecordFork(origin string) {
	if c == nil {
		return
	}
	c.forks.WithLabelValues(origin).Inc()
}

// RecordCacheFill counts a column cache computation.
func (c *Collector) RecordCacheFill(cache string) {
	if c == nil {
		return
	}
	c.cacheFills.WithLabelValues(cache).Inc()
}

// RecordValidationFailure counts a failed Validate call.
func (c *Collector) RecordValidationFailure(columnType string) {
	if c == nil {
		return
	}
	c.validationFailures.WithLabelValues(columnType).Inc()
}

// RecordCastFailure counts a failed Cast call.
func (c *Collector) RecordCastFailure(columnType string) {
	if c == nil {
		return
	}
	c.castFailures.WithLabelValues(columnType).Inc()
}
