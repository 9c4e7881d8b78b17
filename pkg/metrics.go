package jsheap

// metrics.go is a thin abstraction over Prometheus so that the machine can
// be used with or without metrics: a no-op sink when the caller never opts
// in via WithMetrics, and a Prometheus-backed sink when they do, so the
// hot path never pays for a metric update it doesn't need.

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/corvid-rt/jsheap/internal/gc"
)

// metricsSink is an internal interface abstracting away the concrete
// backend (Prometheus vs noop). Machine only knows about these methods.
type metricsSink interface {
	incAlloc()
	setStats(gc.Stats)
}

type noopMetrics struct{}

func (noopMetrics) incAlloc()         {}
func (noopMetrics) setStats(gc.Stats) {}

type promMetrics struct {
	mu        sync.Mutex
	lastColl  uint64
	lastFreed uint64

	allocations  prometheus.Counter
	collections  prometheus.Counter
	objectsFreed prometheus.Counter
	youngBytes   prometheus.Gauge
	oldBytes     prometheus.Gauge
}

func newPromMetrics(reg *prometheus.Registry) *promMetrics {
	pm := &promMetrics{
		allocations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jsheap",
			Name:      "allocations_total",
			Help:      "Number of objects allocated.",
		}),
		collections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jsheap",
			Name:      "collections_total",
			Help:      "Number of collections run.",
		}),
		objectsFreed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jsheap",
			Name:      "objects_freed_total",
			Help:      "Number of objects freed by the collector.",
		}),
		youngBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "jsheap",
			Name:      "young_generation_bytes",
			Help:      "Estimated live bytes in the young generation.",
		}),
		oldBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "jsheap",
			Name:      "old_generation_bytes",
			Help:      "Estimated live bytes in the old generation.",
		}),
	}
	reg.MustRegister(pm.allocations, pm.collections, pm.objectsFreed, pm.youngBytes, pm.oldBytes)
	return pm
}

func (m *promMetrics) incAlloc() { m.allocations.Inc() }

// setStats folds a cumulative Stats snapshot into the Prometheus series:
// collections and objectsFreed are Counters, so only the delta since the
// last snapshot is added; the generation-size gauges are simply set.
func (m *promMetrics) setStats(s gc.Stats) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s.CollectionCount > m.lastColl {
		m.collections.Add(float64(s.CollectionCount - m.lastColl))
		m.lastColl = s.CollectionCount
	}
	if s.ObjectsFreed > m.lastFreed {
		m.objectsFreed.Add(float64(s.ObjectsFreed - m.lastFreed))
		m.lastFreed = s.ObjectsFreed
	}
	m.youngBytes.Set(float64(s.YoungGenerationSize))
	m.oldBytes.Set(float64(s.OldGenerationSize))
}

// newMetricsSink decides which implementation to use.
func newMetricsSink(reg *prometheus.Registry) metricsSink {
	if reg == nil {
		return noopMetrics{}
	}
	return newPromMetrics(reg)
}
