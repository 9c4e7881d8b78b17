// Package shape implements the hidden-class-style property shape used by
// internal/object: an immutable descriptor mapping interned property names
// to dense slot indices, with structural sharing across every object that
// evolves through the same property-insertion sequence.
//
// Two objects that call SetProperty with the same sequence of names,
// starting from Empty(), end up sharing the identical *Shape instance —
// that convergence is the entire point: a property lookup becomes an index
// into a slice once the shape is known, and the shape itself is looked up
// once per transition, not once per access.
//
// © 2025 jsheap authors. MIT License.
package shape

import (
	"sync"
	"sync/atomic"
	"weak"

	"github.com/corvid-rt/jsheap/internal/intern"
)

var nextShapeID atomic.Uint64

// Shape is an immutable property-layout descriptor. Shape values are never
// mutated after construction; TransitionTo always returns a (possibly
// newly built) successor rather than mutating the receiver.
type Shape struct {
	id     uint64
	index  map[*intern.String]int // dense, 0-based, insertion order
	order  []*intern.String       // property_names(), insertion order
	parent weak.Pointer[Shape]    // empty for the root shape
	added  *intern.String         // property introduced at this transition; nil for root

	transMu     sync.RWMutex
	transitions map[*intern.String]weak.Pointer[Shape]

	refCount atomic.Int64 // advisory only — does not govern lifetime
}

// emptyRoot is the single canonical shape with no properties. Every object
// starts from it, so two objects that transition through the same sequence
// of property names share the transition cache at every step and converge
// on the identical *Shape instance — the convergence guarantee breaks if
// each object gets its own private root instead.
var emptyRoot = &Shape{
	id:          nextShapeID.Add(1) - 1,
	index:       map[*intern.String]int{},
	transitions: map[*intern.String]weak.Pointer[Shape]{},
}

// Empty returns the canonical root shape with no properties. It is a
// process-wide singleton, not a fresh allocation: callers that each start
// from Empty() and transition through the same property names converge on
// shared *Shape instances all the way down.
func Empty() *Shape {
	return emptyRoot
}

// ID returns the shape's process-unique, monotonically increasing id.
func (s *Shape) ID() uint64 { return s.id }

// Index returns the slot index for name, if this shape has it.
func (s *Shape) Index(name *intern.String) (int, bool) {
	idx, ok := s.index[name]
	return idx, ok
}

// Count returns the number of properties in this shape.
func (s *Shape) Count() int { return len(s.order) }

// Names returns the property names in insertion order.
func (s *Shape) Names() []*intern.String {
	out := make([]*intern.String, len(s.order))
	copy(out, s.order)
	return out
}

// AddReference and RemoveReference track advisory statistics only; they
// never affect whether a Shape can be garbage collected by Go's own
// runtime (that is governed entirely by the strong references objects and
// callers hold).
func (s *Shape) AddReference()         { s.refCount.Add(1) }
func (s *Shape) RemoveReference()      { s.refCount.Add(-1) }
func (s *Shape) ReferenceCount() int64 { return s.refCount.Load() }

// Parent returns the parent shape, if it is still alive. A nil result with
// ok=false means either this is the root shape, or the parent has already
// been reclaimed — both are legal outcomes of a weak reference.
func (s *Shape) Parent() (parent *Shape, ok bool) {
	if s.added == nil {
		return nil, false
	}
	p := s.parent.Value()
	return p, p != nil
}

// AddedProperty returns the interned name introduced at this transition,
// or nil for the root shape.
func (s *Shape) AddedProperty() *intern.String { return s.added }

// TransitionTo returns the successor shape obtained by adding name to this
// shape's property set.
//
// If name is already present, TransitionTo returns the receiver unchanged.
// That check happens here, inside TransitionTo itself, not only at the
// object.SetProperty call site, so shape convergence on in-place updates
// holds even for callers that transition directly.
func (s *Shape) TransitionTo(name *intern.String) *Shape {
	if _, exists := s.index[name]; exists {
		return s
	}

	if cached, ok := s.lookupTransition(name); ok {
		return cached
	}

	next := s.buildSuccessor(name)

	s.transMu.Lock()
	defer s.transMu.Unlock()

	// Re-check under the write lock: another goroutine may have installed
	// a transition for `name` while we were building ours. First writer
	// wins; we discard the shape we just built and adopt theirs instead,
	// so that concurrent adds of the same new property converge on one
	// shape identity.
	if existing, ok := s.transitions[name]; ok {
		if live := existing.Value(); live != nil {
			return live
		}
	}
	s.transitions[name] = weak.Make(next)
	return next
}

func (s *Shape) lookupTransition(name *intern.String) (*Shape, bool) {
	s.transMu.RLock()
	defer s.transMu.RUnlock()

	weakShape, ok := s.transitions[name]
	if !ok {
		return nil, false
	}
	live := weakShape.Value()
	return live, live != nil
}

func (s *Shape) buildSuccessor(name *intern.String) *Shape {
	next := &Shape{
		id:          nextShapeID.Add(1) - 1,
		index:       make(map[*intern.String]int, len(s.index)+1),
		order:       make([]*intern.String, len(s.order), len(s.order)+1),
		added:       name,
		transitions: map[*intern.String]weak.Pointer[Shape]{},
	}
	for k, v := range s.index {
		next.index[k] = v
	}
	copy(next.order, s.order)
	next.order = append(next.order, name)
	next.index[name] = len(s.order)
	next.parent = weak.Make(s)
	return next
}
