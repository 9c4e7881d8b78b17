// Package object implements the script object: a typed container holding a
// shape reference, a dense value vector, a mark bit, and an optional
// finalizer. It is the unit internal/gc tracks and collects.
//
// © 2025 jsheap authors. MIT License.
package object

import (
	"sync"
	"sync/atomic"

	"github.com/corvid-rt/jsheap/internal/intern"
	"github.com/corvid-rt/jsheap/internal/shape"
)

// TypeTag is the closed set of script object types. The numeric values
// match the C ABI's type codes exactly (0 Object .. 7 Undefined).
type TypeTag uint8

const (
	TypeObject TypeTag = iota
	TypeArray
	TypeFunction
	TypeString
	TypeNumber
	TypeBoolean
	TypeNull
	TypeUndefined
)

// Finalizer is invoked exactly once when an object is destroyed, before its
// storage is released.
type Finalizer func(*Object)

const (
	// baseOverhead approximates the fixed cost of an Object (struct header,
	// shape pointer, mutex). Exactness is not required — this only needs to
	// be a stable, monotone proxy for threshold triggers.
	baseOverhead = 56
	// perSlotOverhead approximates one Value slot's cost beyond its string
	// payload.
	perSlotOverhead = 16
)

// Object is a heap entity participating in tracing collection. A single
// RWMutex guards shape, values, the mark bit, and the finalizer together:
// reads (GetProperty) take a shared lock, mutations take an exclusive one.
type Object struct {
	mu        sync.RWMutex
	typeTag   TypeTag
	shape     *shape.Shape
	values    []Value
	marked    bool
	finalizer Finalizer

	// refCount is the object's total strong-reference share count: one
	// share per outstanding host Handle, one share per object-valued
	// property slot elsewhere pointing at this object, and while the
	// collector holds this object in a generation slice, one share for
	// that membership. internal/gc's promotion heuristic and Release's
	// destroy-on-zero behavior both depend on this count — the atomic
	// counter stands in for a borrow checker we don't have.
	refCount atomic.Int32
}

// New constructs a fresh object of the given type with the empty shape and
// an empty value vector, and exactly one strong reference — the share
// belonging to whichever caller is about to take ownership of it (in
// practice, internal/gc.Collector.CreateObject, which hands that single
// share to the generation slice it appends the object to; there is no
// separate Retain for generation membership, that one share covers it).
func New(tag TypeTag) *Object {
	o := &Object{
		typeTag: tag,
		shape:   shape.Empty(),
	}
	o.refCount.Store(1)
	return o
}

// Type returns the object's type tag. The tag is fixed at construction and
// never mutates, so no lock is needed to read it.
func (o *Object) Type() TypeTag { return o.typeTag }

// Retain adds one strong-reference share and returns the receiver, for
// chaining at call sites that immediately store the result (e.g. as a
// property value).
func (o *Object) Retain() *Object {
	if o == nil {
		return o
	}
	o.refCount.Add(1)
	return o
}

// Release drops one strong-reference share. If this was the last share,
// the object is destroyed: its finalizer (if any) runs exactly once, and
// any object-valued property slots it owns are released in turn, cascading
// destruction through a tree of owned references. This does not make
// cycles collectible: two objects that strongly reference each other keep
// each other's count above zero, so even after the tracing collector drops
// its own generation share for an unreachable cycle, neither object is
// destroyed and neither finalizer runs.
func (o *Object) Release() {
	if o == nil {
		return
	}
	if o.refCount.Add(-1) == 0 {
		o.destroy()
	}
}

// RefCount returns the current strong-reference share count. Exposed for
// internal/gc's promotion heuristic.
func (o *Object) RefCount() int32 { return o.refCount.Load() }

func (o *Object) destroy() {
	o.mu.Lock()
	fin := o.finalizer
	owned := o.values
	o.finalizer = nil
	o.values = nil
	o.mu.Unlock()

	if fin != nil {
		fin(o)
	}
	for _, v := range owned {
		if v.kind == KindObject && v.obj != nil {
			v.obj.Release()
		}
	}
}

// SetProperty interns name's slot via the current shape and writes value,
// transitioning to a successor shape when the property is new. If value
// replaces a previous object-valued slot, the old referent's share is
// released after the new one (if any) is retained — retain-before-release
// avoids a transient drop to zero when the same object is written back
// into its own slot.
func (o *Object) SetProperty(name *intern.String, v Value) {
	if v.kind == KindObject && v.obj != nil {
		v.obj.Retain()
	}

	o.mu.Lock()
	var old Value
	if idx, ok := o.shape.Index(name); ok {
		o.growTo(idx + 1)
		old = o.values[idx]
		o.values[idx] = v
	} else {
		next := o.shape.TransitionTo(name)
		idx, _ := next.Index(name)
		o.growTo(idx + 1)
		old = o.values[idx]
		o.values[idx] = v

		o.shape.RemoveReference()
		next.AddReference()
		o.shape = next
	}
	o.mu.Unlock()

	if old.kind == KindObject && old.obj != nil {
		old.obj.Release()
	}
}

// growTo pads the value vector with Undefined up to length n. Under normal
// operation this is a no-op: shape.TransitionTo always hands back an index
// equal to the current value-vector length. It only matters if that
// invariant is ever violated.
func (o *Object) growTo(n int) {
	for len(o.values) < n {
		o.values = append(o.values, Undefined)
	}
}

// GetProperty returns the slotted value for name, or Undefined if the
// property is absent or the shape's slot index falls outside the current
// value vector. Never fails: an absent read returns Undefined.
func (o *Object) GetProperty(name *intern.String) Value {
	o.mu.RLock()
	defer o.mu.RUnlock()

	idx, ok := o.shape.Index(name)
	if !ok || idx >= len(o.values) {
		return Undefined
	}
	return o.values[idx]
}

// PropertyNames returns the object's property names in insertion order.
func (o *Object) PropertyNames() []*intern.String {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.shape.Names()
}

// Mark sets the mark bit and recursively marks every object reachable
// through an object-valued property. It short-circuits on an
// already-marked object, which is what makes it safe to call on a cyclic
// object graph instead of recursing unconditionally and overflowing the
// stack. Children are marked after the receiver's lock is released, so
// that a cycle back to an ancestor finds it already marked (and returns
// immediately) instead of deadlocking on a re-entrant lock.
func (o *Object) Mark() {
	if o == nil {
		return
	}
	o.mu.Lock()
	if o.marked {
		o.mu.Unlock()
		return
	}
	o.marked = true

	var children []*Object
	for _, v := range o.values {
		if v.kind == KindObject && v.obj != nil {
			children = append(children, v.obj)
		}
	}
	o.mu.Unlock()

	for _, c := range children {
		c.Mark()
	}
}

// Unmark clears the mark bit.
func (o *Object) Unmark() {
	o.mu.Lock()
	o.marked = false
	o.mu.Unlock()
}

// IsMarked reports whether the mark bit is currently set.
func (o *Object) IsMarked() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.marked
}

// SetFinalizer installs fn as the object's finalizer, replacing any
// previously installed one.
func (o *Object) SetFinalizer(fn Finalizer) {
	o.mu.Lock()
	o.finalizer = fn
	o.mu.Unlock()
}

// EstimateSize approximates the object's contribution to a generation's
// byte-size estimate: a constant overhead, plus the property count times a
// per-slot overhead, plus the byte length of every string-valued slot.
// Exactness is not required.
func (o *Object) EstimateSize() int64 {
	o.mu.RLock()
	defer o.mu.RUnlock()

	size := int64(baseOverhead) + int64(o.shape.Count())*perSlotOverhead
	for _, v := range o.values {
		if v.kind == KindString && v.str != nil {
			size += int64(v.str.Len())
		}
	}
	return size
}
