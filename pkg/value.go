package jsheap

import (
	"github.com/corvid-rt/jsheap/internal/intern"
	"github.com/corvid-rt/jsheap/internal/object"
)

// Value is the tagged variant a property slot holds: Undefined, Null, a
// boolean, an IEEE-754 double, an interned string, or a reference to
// another object.
type Value struct {
	inner object.Value
}

// Undefined returns the Undefined value — also what an absent property
// read returns.
func Undefined() Value { return Value{inner: object.Undefined} }

// Null returns the Null value.
func Null() Value { return Value{inner: object.Null()} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{inner: object.Bool(b)} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{inner: object.Number(n)} }

// String interns s and returns a string value over the canonical handle.
func String(s string) Value { return Value{inner: object.String(intern.InternString(s))} }

// ObjectValue returns a value referencing h's underlying object. Writing
// it into a property slot (via Handle.SetProperty) retains a strong share
// on h's behalf automatically.
func ObjectValue(h *Handle) Value {
	if h == nil {
		return Null()
	}
	return Value{inner: object.Object(h.obj)}
}

// IsUndefined reports whether v is the Undefined variant.
func (v Value) IsUndefined() bool { return v.inner.IsUndefined() }

// AsBool returns the boolean payload and whether v held one.
func (v Value) AsBool() (bool, bool) { return v.inner.AsBool() }

// AsNumber returns the numeric payload and whether v held one.
func (v Value) AsNumber() (float64, bool) { return v.inner.AsNumber() }

// AsString returns the string payload and whether v held one.
func (v Value) AsString() (string, bool) {
	s, ok := v.inner.AsString()
	if !ok {
		return "", false
	}
	return s.String(), true
}

// AsHandle returns a fresh Handle over v's object payload, retaining an
// additional strong-reference share the caller is responsible for
// releasing — mirroring spec's "the returned handle carries a fresh
// share" contract for get_property_object. Reports false if v does not
// hold an object.
func (v Value) AsHandle() (*Handle, bool) {
	obj, ok := v.inner.AsObject()
	if !ok || obj == nil {
		return nil, false
	}
	obj.Retain()
	return &Handle{obj: obj}, true
}
