// Package jsheap is the Go-native façade over the managed script-object
// subsystem: a Machine owns a collector, and every allocation comes back as
// a Handle the caller must eventually Release. cmd/libjsheap exposes the
// same operations over a C ABI; bench/ exercises this package directly.
//
// © 2025 jsheap authors. MIT License.
package jsheap

import (
	"go.uber.org/zap"

	"github.com/corvid-rt/jsheap/internal/gc"
	"github.com/corvid-rt/jsheap/internal/intern"
	"github.com/corvid-rt/jsheap/internal/object"
)

// TypeTag is the closed set of script object types. Re-exported from
// internal/object so callers never need to import an internal package.
type TypeTag = object.TypeTag

const (
	TypeObject    = object.TypeObject
	TypeArray     = object.TypeArray
	TypeFunction  = object.TypeFunction
	TypeString    = object.TypeString
	TypeNumber    = object.TypeNumber
	TypeBoolean   = object.TypeBoolean
	TypeNull      = object.TypeNull
	TypeUndefined = object.TypeUndefined
)

// Finalizer is invoked exactly once when a Handle's underlying object is
// destroyed.
type Finalizer func(*Handle)

// Config re-exports the collector's configuration record.
type Config = gc.Config

// DefaultConfig returns the configuration a freshly constructed Machine
// starts with.
func DefaultConfig() Config { return gc.DefaultConfig() }

// Stats re-exports the collector's statistics snapshot.
type Stats = gc.Stats

// Machine is the top-level entry point: one collector, one string
// interner's worth of global dedup (internal/intern.Global), and a
// metrics sink. The zero Machine is not usable; construct with New.
type Machine struct {
	gc      *gc.Collector
	metrics metricsSink
}

// New constructs a Machine. Without options it behaves exactly like
// internal/gc.New plus a no-op metrics sink and logger.
func New(opts ...Option) *Machine {
	cfg := defaultConfig()
	applyOptions(cfg, opts)

	collector := gc.New()
	collector.Configure(cfg.gcConfig)
	collector.SetLogger(cfg.logger)

	return &Machine{
		gc:      collector,
		metrics: newMetricsSink(cfg.registry),
	}
}

// Configure atomically replaces the collector's configuration.
func (m *Machine) Configure(cfg Config) { m.gc.Configure(cfg) }

// CreateObject allocates a fresh object of the given type and returns a
// Handle carrying the host's own strong-reference share, on top of the
// collector's generation-membership share.
func (m *Machine) CreateObject(tag TypeTag) *Handle {
	obj := m.gc.CreateObject(tag)
	obj.Retain()
	m.metrics.incAlloc()
	return &Handle{obj: obj}
}

// AddRoot registers h as a root. A nil Handle is a no-op.
func (m *Machine) AddRoot(h *Handle) {
	if h == nil {
		return
	}
	m.gc.AddRoot(h.obj)
}

// RemoveRoot unregisters h. A nil Handle, or one that was never
// registered, is a no-op.
func (m *Machine) RemoveRoot(h *Handle) {
	if h == nil {
		return
	}
	m.gc.RemoveRoot(h.obj)
}

// Collect triggers a full collection. Re-entrant calls are silently
// rejected, matching internal/gc.Collector.Collect.
func (m *Machine) Collect() {
	m.gc.Collect()
	m.metrics.setStats(m.gc.Statistics())
}

// Statistics returns an atomic snapshot of the collector's counters.
func (m *Machine) Statistics() Stats { return m.gc.Statistics() }

// InternedStringCount returns the number of distinct interned strings
// retained process-wide.
func (m *Machine) InternedStringCount() int { return intern.Global.Count() }

// InternedStringMemory returns the process-wide interner's rough memory
// estimate.
func (m *Machine) InternedStringMemory() uintptr { return intern.Global.MemoryEstimate() }

// SetLogger swaps the machine's logger after construction.
func (m *Machine) SetLogger(l *zap.Logger) { m.gc.SetLogger(l) }
