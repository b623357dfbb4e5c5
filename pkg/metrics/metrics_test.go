package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if r.RendersTotal == nil {
		t.Error("RendersTotal not initialized")
	}
	if r.LayoutsTotal == nil {
		t.Error("LayoutsTotal not initialized")
	}
	if r.ExportsTotal == nil {
		t.Error("ExportsTotal not initialized")
	}
	if r.DatasetFetchesTotal == nil {
		t.Error("DatasetFetchesTotal not initialized")
	}
}

func TestDefaultRegistrySingleton(t *testing.T) {
	a := DefaultRegistry()
	b := DefaultRegistry()
	if a != b {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordRender(t *testing.T) {
	r := NewRegistry()

	r.RecordRender("default", "success", 100*time.Millisecond, 40, 120)
	r.RecordRender("default", "success", 200*time.Millisecond, 10, 15)
	r.RecordRender("sign_consistent", "error", 50*time.Millisecond, 0, 0)

	counter, err := r.RendersTotal.GetMetricWithLabelValues("default", "success")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 2 {
		t.Errorf("Render counter = %v, want 2", metric.Counter.GetValue())
	}

	nodes, err := r.RenderNodes.GetMetricWithLabelValues("default")
	if err != nil {
		t.Fatalf("Failed to get histogram: %v", err)
	}

	if err := nodes.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Histogram.GetSampleSum() != 50 {
		t.Errorf("Node sample sum = %v, want 50", metric.Histogram.GetSampleSum())
	}
}

func TestRecordLayout(t *testing.T) {
	r := NewRegistry()

	r.RecordLayout("spring", "success", 10*time.Millisecond)
	r.RecordLayout("spring", "success", 20*time.Millisecond)
	r.RecordLayout("dot", "error", 5*time.Millisecond)

	successCounter, err := r.LayoutsTotal.GetMetricWithLabelValues("spring", "success")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := successCounter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 2 {
		t.Errorf("Success counter = %v, want 2", metric.Counter.GetValue())
	}

	errorCounter, err := r.LayoutsTotal.GetMetricWithLabelValues("dot", "error")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	if err := errorCounter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 1 {
		t.Errorf("Error counter = %v, want 1", metric.Counter.GetValue())
	}
}

func TestRecordExport(t *testing.T) {
	r := NewRegistry()

	r.RecordExport("png", "success", 50*time.Millisecond, 2048)

	counter, err := r.ExportsTotal.GetMetricWithLabelValues("png", "success")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 1 {
		t.Errorf("Export counter = %v, want 1", metric.Counter.GetValue())
	}

	bytes, err := r.ExportBytes.GetMetricWithLabelValues("png")
	if err != nil {
		t.Fatalf("Failed to get histogram: %v", err)
	}

	if err := bytes.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Histogram.GetSampleSum() != 2048 {
		t.Errorf("Byte sample sum = %v, want 2048", metric.Histogram.GetSampleSum())
	}
}

func TestRecordExportSkipsZeroBytes(t *testing.T) {
	r := NewRegistry()

	r.RecordExport("dot", "error", time.Millisecond, 0)

	bytes, err := r.ExportBytes.GetMetricWithLabelValues("dot")
	if err != nil {
		t.Fatalf("Failed to get histogram: %v", err)
	}

	var metric dto.Metric
	if err := bytes.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Histogram.GetSampleCount() != 0 {
		t.Errorf("Byte sample count = %v, want 0 for failed export", metric.Histogram.GetSampleCount())
	}
}

func TestRecordDatasetFetch(t *testing.T) {
	r := NewRegistry()

	r.RecordDatasetFetch("http", "success", 300*time.Millisecond, 1<<20)

	counter, err := r.DatasetBytesTotal.GetMetricWithLabelValues("http")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != float64(1<<20) {
		t.Errorf("Bytes counter = %v, want %v", metric.Counter.GetValue(), float64(1<<20))
	}
}

func TestRecordCacheHitMiss(t *testing.T) {
	r := NewRegistry()

	r.RecordCacheHit()
	r.RecordCacheHit()
	r.RecordCacheMiss()

	var metric dto.Metric
	if err := r.DatasetCacheHitsTotal.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2 {
		t.Errorf("Cache hits = %v, want 2", metric.Counter.GetValue())
	}

	if err := r.DatasetCacheMissesTotal.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 1 {
		t.Errorf("Cache misses = %v, want 1", metric.Counter.GetValue())
	}
}

func TestGetPrometheusRegistry(t *testing.T) {
	r := NewRegistry()

	r.RecordRender("default", "success", time.Millisecond, 3, 3)
	r.RecordLayout("spring", "success", time.Millisecond)
	r.RecordExport("png", "success", time.Millisecond, 100)
	r.RecordDatasetFetch("http", "success", time.Millisecond, 100)
	r.RecordCacheHit()
	r.RecordCacheMiss()

	promRegistry := r.GetPrometheusRegistry()
	if promRegistry == nil {
		t.Fatal("GetPrometheusRegistry() returned nil")
	}

	metrics, err := promRegistry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	expectedMetrics := []string{
		"signet_renders_total",
		"signet_render_duration_seconds",
		"signet_layouts_total",
		"signet_exports_total",
		"signet_export_bytes",
		"signet_dataset_fetches_total",
		"signet_dataset_cache_hits_total",
		"signet_dataset_cache_misses_total",
	}

	metricNames := make(map[string]bool)
	for _, m := range metrics {
		metricNames[m.GetName()] = true
	}

	for _, expected := range expectedMetrics {
		if !metricNames[expected] {
			t.Errorf("Expected metric %s not found", expected)
		}
	}
}

func TestConcurrentMetricUpdates(t *testing.T) {
	r := NewRegistry()

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				r.RecordRender("default", "success", time.Millisecond, 5, 5)
			}
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}

	counter, err := r.RendersTotal.GetMetricWithLabelValues("default", "success")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 1000 {
		t.Errorf("Counter = %v, want 1000", metric.Counter.GetValue())
	}
}
