// Package metrics exposes Prometheus instrumentation for the history engine.
// Every Collector owns a private registry so that several engines (and
// tests) can coexist in one process without duplicate registration.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Compression paths.
const (
	PathWorker   = "worker"
	PathFallback = "fallback"
)

// Collector holds all Prometheus metrics of one engine instance.
// A nil *Collector is valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	Transitions  prometheus.Counter
	CursorMoves  *prometheus.CounterVec
	Compressions *prometheus.CounterVec
	Failures     *prometheus.CounterVec
	Duration     *prometheus.HistogramVec
	Saves        *prometheus.CounterVec
	StoredBytes  prometheus.Gauge
}

// NewCollector creates a collector registering its metrics under namespace.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		Transitions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_transitions_total",
			Help:      "Total number of transitions appended to history graphs",
		}),
		CursorMoves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_cursor_moves_total",
			Help:      "Cursor moves by operation",
		}, []string{"op"}),
		Compressions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compression_requests_total",
			Help:      "Compression requests by execution path",
		}, []string{"path"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compression_failures_total",
			Help:      "Compression failures by kind",
		}, []string{"kind"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compression_duration_seconds",
			Help:      "Compression latency as seen by the caller",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		}, []string{"path"}),
		Saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_saves_total",
			Help:      "Persisted history graphs by stored encoding",
		}, []string{"encoding"}),
		StoredBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "persist_last_size_bytes",
			Help:      "Size of the last persisted history payload",
		}),
	}
	c.registry.MustRegister(c.Transitions, c.CursorMoves, c.Compressions, c.Failures, c.Duration, c.Saves, c.StoredBytes)
	return c
}

// Registry returns the registry holding this collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Transition counts one appended transition.
func (c *Collector) Transition() {
	if c == nil {
		return
	}
	c.Transitions.Inc()
}

// CursorMove counts an undo, redo or jump.
func (c *Collector) CursorMove(op string) {
	if c == nil {
		return
	}
	c.CursorMoves.WithLabelValues(op).Inc()
}

// Compression records a compression request settled on path.
func (c *Collector) Compression(path string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.Compressions.WithLabelValues(path).Inc()
	c.Duration.WithLabelValues(path).Observe(elapsed.Seconds())
}

// Failure counts a compression failure of the given kind.
func (c *Collector) Failure(kind string) {
	if c == nil {
		return
	}
	c.Failures.WithLabelValues(kind).Inc()
}

// Saved records a persisted payload.
func (c *Collector) Saved(encoding string, size int) {
	if c == nil {
		return
	}
	c.Saves.WithLabelValues(encoding).Inc()
	c.StoredBytes.Set(float64(size))
}
