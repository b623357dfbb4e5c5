package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initDatasetMetrics() {
	r.DatasetFetchesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "signet_dataset_fetches_total",
			Help: "Total number of dataset fetches",
		},
		[]string{"source", "status"},
	)

	r.DatasetFetchDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "signet_dataset_fetch_duration_seconds",
			Help:    "Dataset fetch duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0, 120.0},
		},
		[]string{"source"},
	)

	r.DatasetBytesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "signet_dataset_bytes_total",
			Help: "Total bytes downloaded from dataset sources",
		},
		[]string{"source"},
	)

	r.DatasetCacheHitsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "signet_dataset_cache_hits_total",
			Help: "Total number of dataset cache hits",
		},
	)

	r.DatasetCacheMissesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "signet_dataset_cache_misses_total",
			Help: "Total number of dataset cache misses",
		},
	)
}
