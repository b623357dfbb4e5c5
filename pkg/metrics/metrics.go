package metrics

import "time"

// RecordRender tracks one render pass over a network.
func (r *Registry) RecordRender(mode, status string, duration time.Duration, nodes, edges int) {
	r.RendersTotal.WithLabelValues(mode, status).Inc()
	r.RenderDuration.WithLabelValues(mode).Observe(duration.Seconds())
	r.RenderNodes.WithLabelValues(mode).Observe(float64(nodes))
	r.RenderEdges.WithLabelValues(mode).Observe(float64(edges))
}

// RecordLayout tracks one layout computation.
func (r *Registry) RecordLayout(prog, status string, duration time.Duration) {
	r.LayoutsTotal.WithLabelValues(prog, status).Inc()
	r.LayoutDuration.WithLabelValues(prog).Observe(duration.Seconds())
}

// RecordExport tracks one artifact export.
func (r *Registry) RecordExport(format, status string, duration time.Duration, bytes int) {
	r.ExportsTotal.WithLabelValues(format, status).Inc()
	r.ExportDuration.WithLabelValues(format).Observe(duration.Seconds())
	if bytes > 0 {
		r.ExportBytes.WithLabelValues(format).Observe(float64(bytes))
	}
}

// RecordDatasetFetch tracks one dataset retrieval from a remote source.
func (r *Registry) RecordDatasetFetch(source, status string, duration time.Duration, bytes int64) {
	r.DatasetFetchesTotal.WithLabelValues(source, status).Inc()
	r.DatasetFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
	if bytes > 0 {
		r.DatasetBytesTotal.WithLabelValues(source).Add(float64(bytes))
	}
}

// RecordCacheHit increments the dataset cache hit counter.
func (r *Registry) RecordCacheHit() {
	r.DatasetCacheHitsTotal.Inc()
}

// RecordCacheMiss increments the dataset cache miss counter.
func (r *Registry) RecordCacheMiss() {
	r.DatasetCacheMissesTotal.Inc()
}
