package assetstore

// metrics.go is a thin Prometheus abstraction over asset-store the same way
// arena-cache's pkg/metrics.go wraps the cache: a metricsSink interface with
// a no-op implementation used by default, and a Prometheus-backed
// implementation activated by WithMetrics. All metrics are labeled by the
// asset type name so aggregation across multiple AssetStore instances is a
// Prometheus-side sum()/rate().
//
// © 2025 asset-store authors. MIT License.

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metricsSink is the internal abstraction Processor/ReloadRegistry report
// through; never exposed outside the package.
type metricsSink interface {
	incLoaded(assetName string)
	incUnused(assetName string)
	incFailed(assetName string)
	incSwept(assetName string, n int)
	incReloadSpawned(assetName string)
	incReloadFailed(assetName string)
	setQueueDepth(assetName string, depth int)
}

type noopMetrics struct{}

func (noopMetrics) incLoaded(string)            {}
func (noopMetrics) incUnused(string)            {}
func (noopMetrics) incFailed(string)            {}
func (noopMetrics) incSwept(string, int)        {}
func (noopMetrics) incReloadSpawned(string)     {}
func (noopMetrics) incReloadFailed(string)      {}
func (noopMetrics) setQueueDepth(string, int)   {}

type promMetrics struct {
	loaded        *prometheus.CounterVec
	unused        *prometheus.CounterVec
	failed        *prometheus.CounterVec
	swept         *prometheus.CounterVec
	reloadSpawned *prometheus.CounterVec
	reloadFailed  *prometheus.CounterVec
	queueDepth    *prometheus.GaugeVec
}

func newPromMetrics(reg *prometheus.Registry) *promMetrics {
	label := []string{"asset"}
	pm := &promMetrics{
		loaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assetstore", Name: "loaded_total",
			Help: "Number of assets committed after a successful load.",
		}, label),
		unused: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assetstore", Name: "unused_handle_total",
			Help: "Number of loads that finished with no external strong handle.",
		}, label),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assetstore", Name: "failed_total",
			Help: "Number of new-asset loads that failed to fetch or convert.",
		}, label),
		swept: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assetstore", Name: "swept_total",
			Help: "Number of ids freed by the unused-handle sweep.",
		}, label),
		reloadSpawned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assetstore", Name: "reload_spawned_total",
			Help: "Number of hot-reload jobs dispatched to the worker pool.",
		}, label),
		reloadFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assetstore", Name: "reload_failed_total",
			Help: "Number of hot-reload jobs that failed to fetch or convert.",
		}, label),
		queueDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "assetstore", Name: "processed_queue_depth",
			Help: "Approximate depth of the processed queue at last drain.",
		}, label),
	}
	reg.MustRegister(pm.loaded, pm.unused, pm.failed, pm.swept, pm.reloadSpawned, pm.reloadFailed, pm.queueDepth)
	return pm
}

func (m *promMetrics) incLoaded(a string)        { m.loaded.WithLabelValues(a).Inc() }
func (m *promMetrics) incUnused(a string)        { m.unused.WithLabelValues(a).Inc() }
func (m *promMetrics) incFailed(a string)        { m.failed.WithLabelValues(a).Inc() }
func (m *promMetrics) incSwept(a string, n int)  { m.swept.WithLabelValues(a).Add(float64(n)) }
func (m *promMetrics) incReloadSpawned(a string) { m.reloadSpawned.WithLabelValues(a).Inc() }
func (m *promMetrics) incReloadFailed(a string)  { m.reloadFailed.WithLabelValues(a).Inc() }
func (m *promMetrics) setQueueDepth(a string, d int) {
	m.queueDepth.WithLabelValues(a).Set(float64(d))
}

// newMetricsSink decides which implementation to use based on whether the
// caller opted in via WithMetrics.
func newMetricsSink(reg *prometheus.Registry) metricsSink {
	if reg == nil {
		return noopMetrics{}
	}
	return newPromMetrics(reg)
}
