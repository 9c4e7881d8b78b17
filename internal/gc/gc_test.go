package gc

import (
	"testing"

	"github.com/corvid-rt/jsheap/internal/intern"
	"github.com/corvid-rt/jsheap/internal/object"
)

func TestCreateObjectIncrementsAllocationCount(t *testing.T) {
	c := New()
	c.CreateObject(object.TypeObject)
	c.CreateObject(object.TypeObject)
	if got := c.Statistics().AllocationCount; got != 2 {
		t.Fatalf("expected allocation count 2, got %d", got)
	}
}

func TestRootedObjectSurvivesCollection(t *testing.T) {
	c := New()
	a := c.CreateObject(object.TypeObject)
	c.CreateObject(object.TypeObject) // B, unreferenced

	c.AddRoot(a)
	a.SetProperty(intern.InternString("x"), object.Number(1))

	c.Collect()

	v := a.GetProperty(intern.InternString("x"))
	n, ok := v.AsNumber()
	if !ok || n != 1 {
		t.Fatalf("expected rooted object still readable after collect, got %+v ok=%v", v, ok)
	}
	if got := c.Statistics().ObjectsFreed; got < 1 {
		t.Fatalf("expected at least one object freed, got %d", got)
	}
}

func TestChildSurvivesWhileReferencedThenFreedWhenUnreferenced(t *testing.T) {
	c := New()
	cfg := DefaultConfig()
	cfg.OldGenThresholdKB = 0 // force every old-generation sweep to actually run
	c.Configure(cfg)

	a := c.CreateObject(object.TypeObject)
	child := c.CreateObject(object.TypeObject)

	c.AddRoot(a)
	a.SetProperty(intern.InternString("child"), object.Object(child))

	c.Collect()
	if !child.IsMarked() && child.RefCount() == 0 {
		t.Fatalf("child should not have been destroyed while still referenced")
	}

	finalized := false
	child.SetFinalizer(func(*object.Object) { finalized = true })

	a.SetProperty(intern.InternString("child"), object.Null())
	c.Collect()

	if !finalized {
		t.Fatalf("expected child's finalizer to run once it became unreachable")
	}
}

func TestFinalizerRunsExactlyOnceViaCollect(t *testing.T) {
	c := New()
	d := c.CreateObject(object.TypeObject)

	calls := 0
	d.SetFinalizer(func(*object.Object) { calls++ })

	c.Collect() // unrooted, unreferenced: collected on first pass

	if calls != 1 {
		t.Fatalf("expected finalizer to run exactly once, got %d", calls)
	}
}

func TestStatisticsMonotonicity(t *testing.T) {
	c := New()
	var lastAlloc, lastColl uint64
	for i := 0; i < 5; i++ {
		c.CreateObject(object.TypeObject)
		c.Collect()
		s := c.Statistics()
		if s.AllocationCount < lastAlloc || s.CollectionCount < lastColl {
			t.Fatalf("statistics regressed: %+v", s)
		}
		lastAlloc, lastColl = s.AllocationCount, s.CollectionCount
	}
}

func TestReentrantCollectIsNoop(t *testing.T) {
	c := New()
	c.collecting.Store(true)
	before := c.Statistics().CollectionCount
	c.Collect()
	after := c.Statistics().CollectionCount
	if before != after {
		t.Fatalf("expected reentrant collect to be a no-op, count moved %d -> %d", before, after)
	}
	c.collecting.Store(false)
}

func TestPromotionToOldGeneration(t *testing.T) {
	c := New()
	a := c.CreateObject(object.TypeObject)
	c.AddRoot(a)
	a.Retain() // external sharer beyond the collector's own young-generation share

	c.Collect()

	s := c.Statistics()
	if s.OldGenerationSize == 0 {
		t.Fatalf("expected externally-shared survivor to be promoted to old generation")
	}
}

func TestAddRootIdempotentRemoveRootNoop(t *testing.T) {
	c := New()
	a := c.CreateObject(object.TypeObject)
	c.AddRoot(a)
	c.AddRoot(a) // idempotent
	c.RemoveRoot(a)
	c.RemoveRoot(a) // no-op on already-removed root

	if len(c.roots) != 0 {
		t.Fatalf("expected empty root set, got %d entries", len(c.roots))
	}
}

func TestAddRootRemoveRootNilIsNoop(t *testing.T) {
	c := New()
	c.AddRoot(nil)
	c.RemoveRoot(nil)
}
