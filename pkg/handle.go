package jsheap

import (
	"github.com/corvid-rt/jsheap/internal/intern"
	"github.com/corvid-rt/jsheap/internal/object"
)

// Handle is an opaque reference to a script object, carrying one strong
// reference share on the caller's behalf. Every Handle obtained from
// Machine.CreateObject or Value.AsHandle must eventually be released with
// Release.
type Handle struct {
	obj *object.Object
}

// Type returns the handle's underlying object type.
func (h *Handle) Type() TypeTag { return h.obj.Type() }

// SetProperty interns name and writes v into the object's corresponding
// slot, transitioning shape if name is new.
func (h *Handle) SetProperty(name string, v Value) {
	h.obj.SetProperty(intern.InternString(name), v.inner)
}

// GetProperty returns the named property's value, or an Undefined Value if
// absent.
func (h *Handle) GetProperty(name string) Value {
	return Value{inner: h.obj.GetProperty(intern.InternString(name))}
}

// PropertyNames returns the object's property names in insertion order.
func (h *Handle) PropertyNames() []string {
	names := h.obj.PropertyNames()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n.String()
	}
	return out
}

// SetFinalizer installs fn as the handle's finalizer, replacing any
// previously installed one. A nil fn clears it.
func (h *Handle) SetFinalizer(fn Finalizer) {
	if fn == nil {
		h.obj.SetFinalizer(nil)
		return
	}
	h.obj.SetFinalizer(func(*object.Object) { fn(h) })
}

// Release drops the caller's strong-reference share. If this was the
// object's last share, it is destroyed and its finalizer (if any) runs.
func (h *Handle) Release() { h.obj.Release() }
