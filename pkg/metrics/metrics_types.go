// Package metrics exposes Prometheus instrumentation for the rendering and
// dataset pipelines.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Render pipeline metrics
	RendersTotal   *prometheus.CounterVec
	RenderDuration *prometheus.HistogramVec
	RenderNodes    *prometheus.HistogramVec
	RenderEdges    *prometheus.HistogramVec

	// Layout metrics
	LayoutsTotal   *prometheus.CounterVec
	LayoutDuration *prometheus.HistogramVec

	// Export metrics
	ExportsTotal   *prometheus.CounterVec
	ExportDuration *prometheus.HistogramVec
	ExportBytes    *prometheus.HistogramVec

	// Dataset provider metrics
	DatasetFetchesTotal     *prometheus.CounterVec
	DatasetFetchDuration    *prometheus.HistogramVec
	DatasetBytesTotal       *prometheus.CounterVec
	DatasetCacheHitsTotal   prometheus.Counter
	DatasetCacheMissesTotal prometheus.Counter

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initRenderMetrics()
	r.initExportMetrics()
	r.initDatasetMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
