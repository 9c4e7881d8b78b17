package object

import (
	"testing"

	"github.com/corvid-rt/jsheap/internal/intern"
)

func TestSetGetPropertyRoundTrip(t *testing.T) {
	o := New(TypeObject)
	name := intern.InternString("x")
	o.SetProperty(name, Number(42))

	v := o.GetProperty(name)
	n, ok := v.AsNumber()
	if !ok || n != 42 {
		t.Fatalf("expected number 42, got %+v ok=%v", v, ok)
	}
}

func TestGetPropertyAbsentIsUndefined(t *testing.T) {
	o := New(TypeObject)
	v := o.GetProperty(intern.InternString("missing"))
	if !v.IsUndefined() {
		t.Fatalf("expected Undefined for absent property")
	}
}

func TestUpdateInPlaceKeepsShapeStable(t *testing.T) {
	o := New(TypeObject)
	name := intern.InternString("x")
	o.SetProperty(name, Number(1))
	shapeAfterFirst := o.shape
	o.SetProperty(name, Number(2))

	if o.shape != shapeAfterFirst {
		t.Fatalf("updating an existing property must not change shape identity")
	}
	v := o.GetProperty(name)
	n, _ := v.AsNumber()
	if n != 2 {
		t.Fatalf("expected updated value 2, got %v", n)
	}
}

func TestTwoObjectsWithSameInsertionSequenceShareShape(t *testing.T) {
	a := New(TypeObject)
	b := New(TypeObject)
	for _, name := range []string{"name", "value", "flag"} {
		n := intern.InternString(name)
		a.SetProperty(n, Bool(true))
		b.SetProperty(n, Bool(true))
	}
	if a.shape != b.shape {
		t.Fatalf("expected converged shape for identical insertion sequences")
	}
}

func TestPropertyNamesInsertionOrder(t *testing.T) {
	o := New(TypeObject)
	want := []string{"a", "b", "c"}
	for _, w := range want {
		o.SetProperty(intern.InternString(w), Bool(true))
	}
	got := o.PropertyNames()
	if len(got) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].String() != w {
			t.Fatalf("names[%d] = %q, want %q", i, got[i].String(), w)
		}
	}
}

func TestMarkIsTransitive(t *testing.T) {
	parent := New(TypeObject)
	child := New(TypeObject)
	parent.SetProperty(intern.InternString("child"), Object(child))

	parent.Mark()
	if !parent.IsMarked() || !child.IsMarked() {
		t.Fatalf("expected both parent and child marked")
	}
}

func TestMarkIsIdempotentOnCycle(t *testing.T) {
	a := New(TypeObject)
	b := New(TypeObject)
	a.SetProperty(intern.InternString("b"), Object(b))
	b.SetProperty(intern.InternString("a"), Object(a))

	done := make(chan struct{})
	go func() {
		a.Mark()
		close(done)
	}()
	select {
	case <-done:
	default:
	}
	<-done

	if !a.IsMarked() || !b.IsMarked() {
		t.Fatalf("expected both objects marked despite cycle")
	}
}

func TestUnmarkClearsMarkBit(t *testing.T) {
	o := New(TypeObject)
	o.Mark()
	o.Unmark()
	if o.IsMarked() {
		t.Fatalf("expected mark bit cleared")
	}
}

func TestFinalizerRunsExactlyOnceOnRelease(t *testing.T) {
	o := New(TypeObject)
	calls := 0
	o.SetFinalizer(func(*Object) { calls++ })

	o.Retain()
	o.Release()
	if calls != 0 {
		t.Fatalf("finalizer fired before last release, calls=%d", calls)
	}
	o.Release()
	if calls != 1 {
		t.Fatalf("expected finalizer to run exactly once, got %d", calls)
	}
}

func TestReleaseCascadesToObjectValuedChildren(t *testing.T) {
	parent := New(TypeObject)
	child := New(TypeObject)
	parent.SetProperty(intern.InternString("child"), Object(child))

	if got := child.RefCount(); got != 2 {
		t.Fatalf("expected child refcount 2 (creator + parent edge), got %d", got)
	}

	parent.Release()
	if got := child.RefCount(); got != 1 {
		t.Fatalf("expected child refcount 1 after parent destroyed, got %d", got)
	}
}

func TestEstimateSizeGrowsWithProperties(t *testing.T) {
	o := New(TypeObject)
	before := o.EstimateSize()
	o.SetProperty(intern.InternString("s"), String(intern.InternString("some content")))
	after := o.EstimateSize()
	if after <= before {
		t.Fatalf("expected size estimate to grow: before=%d after=%d", before, after)
	}
}
