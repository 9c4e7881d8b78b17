// Package gc implements the generational tracing collector: two tracked
// generations (young, old), a host-registered root set, mark/sweep, and
// promotion. It owns the only strong reference the collector itself holds
// to each object it tracks — every other strong reference (a host handle,
// an object-valued property slot) is additional and is what the promotion
// heuristic below looks for.
//
// © 2025 jsheap authors. MIT License.
package gc

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/corvid-rt/jsheap/internal/object"
	"github.com/corvid-rt/jsheap/internal/slab"
)

// Collector is the generational mark-sweep garbage collector. A Collector
// is safe for concurrent use from multiple host threads; there is no
// internal worker goroutine, collection runs on whichever goroutine calls
// Collect (or triggers one implicitly via CreateObject).
type Collector struct {
	cfg atomic.Pointer[Config]

	youngMu    sync.Mutex
	young      []*object.Object
	youngBytes atomic.Int64

	oldMu    sync.Mutex
	old      []*object.Object
	oldBytes atomic.Int64

	rootsMu sync.Mutex
	roots   map[*object.Object]struct{}

	collecting atomic.Bool

	allocationCount atomic.Uint64
	collectionCount atomic.Uint64
	objectsFreed    atomic.Uint64

	logger *zap.Logger

	survivors *slab.Pool[object.Object]
}

// New constructs a Collector with DefaultConfig and a no-op logger.
func New() *Collector {
	c := &Collector{
		roots:     make(map[*object.Object]struct{}),
		logger:    zap.NewNop(),
		survivors: slab.NewPool[object.Object](),
	}
	cfg := DefaultConfig()
	c.cfg.Store(&cfg)
	return c
}

// SetLogger installs l as the collector's logger, replacing the no-op
// default. Used by pkg.Machine's WithLogger option.
func (c *Collector) SetLogger(l *zap.Logger) {
	if l != nil {
		c.logger = l
	}
}

// Configure atomically replaces the collector's configuration.
func (c *Collector) Configure(cfg Config) {
	c.cfg.Store(&cfg)
}

func (c *Collector) config() Config {
	return *c.cfg.Load()
}

// CreateObject allocates a fresh object of the given type, adds it to the
// young generation with one strong reference (the collector's own
// generation-membership share), and triggers a collection if the
// young-generation byte estimate now exceeds its configured threshold.
func (c *Collector) CreateObject(tag object.TypeTag) *object.Object {
	obj := object.New(tag)

	c.youngMu.Lock()
	c.young = append(c.young, obj)
	c.youngMu.Unlock()

	c.allocationCount.Add(1)
	size := c.youngBytes.Add(obj.EstimateSize())

	if uint64(size) > c.config().YoungGenThresholdKB*1024 {
		// obj has no sharer besides the collector yet; root it for the
		// duration of this collection so the sweep does not release it.
		c.AddRoot(obj)
		c.Collect()
		c.RemoveRoot(obj)
	}
	return obj
}

// AddRoot registers obj as a root. Roots are raw identities, not owning
// references (spec's root-set policy): registering a root does not itself
// retain a share, and the host remains responsible for keeping its own
// share alive for at least as long as the root is registered. Adding an
// already-registered root is a no-op.
func (c *Collector) AddRoot(obj *object.Object) {
	if obj == nil {
		return
	}
	c.rootsMu.Lock()
	defer c.rootsMu.Unlock()
	c.roots[obj] = struct{}{}
}

// RemoveRoot unregisters obj. Removing an unregistered root is a no-op.
func (c *Collector) RemoveRoot(obj *object.Object) {
	if obj == nil {
		return
	}
	c.rootsMu.Lock()
	defer c.rootsMu.Unlock()
	delete(c.roots, obj)
}

// Collect triggers a full collection: mark from the current root set, then
// a young-generation sweep (always), then an old-generation sweep (only if
// the old-generation estimate exceeds its threshold, reusing the same mark
// pass — no re-mark). Re-entrant calls are silently rejected.
func (c *Collector) Collect() {
	if !c.collecting.CompareAndSwap(false, true) {
		return
	}
	defer c.collecting.Store(false)

	roots := c.snapshotRoots()
	for _, r := range roots {
		r.Mark()
	}

	freedYoung, promoted, _ := c.sweepYoung()
	c.collectionCount.Add(1)

	cfg := c.config()
	var freedOld int
	if uint64(c.oldBytes.Load()) > cfg.OldGenThresholdKB*1024 {
		freedOld = c.sweepOld()
	} else {
		// sweepOld isn't running this cycle, so nothing will consume the
		// marks this cycle left on old-generation objects (including the
		// ones just promoted). Clear them here instead of leaving them set
		// for a future cycle's mark phase to misread as "already reachable"
		// without having actually re-marked them.
		c.oldMu.Lock()
		for _, o := range c.old {
			o.Unmark()
		}
		c.oldMu.Unlock()
	}

	if cfg.Verbose {
		c.logger.Info("collection complete",
			zap.Int("freed_young", freedYoung),
			zap.Int("promoted", promoted),
			zap.Int("freed_old", freedOld),
			zap.Int64("young_bytes", c.youngBytes.Load()),
			zap.Int64("old_bytes", c.oldBytes.Load()),
		)
	}
}

func (c *Collector) snapshotRoots() []*object.Object {
	c.rootsMu.Lock()
	defer c.rootsMu.Unlock()

	out := make([]*object.Object, 0, len(c.roots))
	for o := range c.roots {
		out = append(out, o)
	}
	return out
}

// sweepYoung walks the young generation once. Marked objects with an
// external sharer (refcount above the collector's own one share) are
// promoted to the old generation; marked objects with no external sharer
// remain young survivors. Unmarked objects have the collector's share
// released, which destroys them if nothing else holds a reference.
//
// Promoted objects keep their mark bit set on return: they move into the
// old generation still carrying the mark this cycle's mark phase gave them,
// so that if sweepOld runs later in this same Collect call it retains them
// instead of mistaking them for garbage. Collect clears the mark itself for
// any promoted object sweepOld doesn't get to this cycle.
func (c *Collector) sweepYoung() (freed int, promoted int, promotedObjs []*object.Object) {
	c.youngMu.Lock()
	defer c.youngMu.Unlock()

	survivors := c.survivors.Get()
	defer func() { c.survivors.Put(survivors) }()

	var toPromote []*object.Object
	var youngBytes int64

	for _, o := range c.young {
		if o.IsMarked() {
			if o.RefCount() > 1 {
				toPromote = append(toPromote, o)
				promoted++
			} else {
				o.Unmark()
				survivors = append(survivors, o)
				youngBytes += o.EstimateSize()
			}
			continue
		}
		o.Release()
		freed++
	}

	c.young = append(c.young[:0], survivors...)
	c.youngBytes.Store(youngBytes)
	c.objectsFreed.Add(uint64(freed))

	if len(toPromote) > 0 {
		c.oldMu.Lock()
		for _, o := range toPromote {
			c.old = append(c.old, o)
			c.oldBytes.Add(o.EstimateSize())
		}
		c.oldMu.Unlock()
	}
	return freed, promoted, toPromote
}

// sweepOld walks the old generation once, using the mark bits left by the
// same mark pass sweepYoung used. Marked objects are retained (mark
// cleared); unmarked objects have the collector's share released.
func (c *Collector) sweepOld() (freed int) {
	c.oldMu.Lock()
	defer c.oldMu.Unlock()

	survivors := c.survivors.Get()
	defer func() { c.survivors.Put(survivors) }()

	var oldBytes int64
	for _, o := range c.old {
		if o.IsMarked() {
			o.Unmark()
			survivors = append(survivors, o)
			oldBytes += o.EstimateSize()
			continue
		}
		o.Release()
		freed++
	}

	c.old = append(c.old[:0], survivors...)
	c.oldBytes.Store(oldBytes)
	c.objectsFreed.Add(uint64(freed))
	return freed
}

// Statistics returns an atomic snapshot of the collector's counters.
func (c *Collector) Statistics() Stats {
	return Stats{
		AllocationCount:     c.allocationCount.Load(),
		CollectionCount:     c.collectionCount.Load(),
		ObjectsFreed:        c.objectsFreed.Load(),
		YoungGenerationSize: uint64(c.youngBytes.Load()),
		OldGenerationSize:   uint64(c.oldBytes.Load()),
	}
}
