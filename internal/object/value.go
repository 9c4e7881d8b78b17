package object

import "github.com/corvid-rt/jsheap/internal/intern"

// Kind discriminates the variant held by a Value.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindObject
)

// Value is the tagged variant a property slot holds: Undefined, Null, a
// boolean, an IEEE-754 double, an interned string, or a reference to another
// object. It is a plain value type (no heap allocation beyond what Obj/Str
// already carry) so that a slot in an object's value vector is exactly one
// Value wide.
type Value struct {
	kind Kind
	b    bool
	n    float64
	str  *intern.String
	obj  *Object
}

// Undefined is the zero Value; it is also what an absent or out-of-range
// property read returns.
var Undefined = Value{kind: KindUndefined}

// Null constructs a Value holding the null variant.
func Null() Value { return Value{kind: KindNull} }

// Bool constructs a Value holding a boolean.
func Bool(b bool) Value { return Value{kind: KindBoolean, b: b} }

// Number constructs a Value holding an IEEE-754 double.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String constructs a Value holding an interned string.
func String(s *intern.String) Value { return Value{kind: KindString, str: s} }

// Object constructs a Value holding a strong reference to another script
// object: an object reference inside a value holds a strong ownership share
// of the referent. Object itself does not retain obj; SetProperty takes the
// share when the Value is written into a slot.
func Object(obj *Object) Value { return Value{kind: KindObject, obj: obj} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// AsBool returns the boolean payload and whether v held one.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBoolean }

// AsNumber returns the numeric payload and whether v held one.
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == KindNumber }

// AsString returns the interned-string payload and whether v held one.
func (v Value) AsString() (*intern.String, bool) { return v.str, v.kind == KindString }

// AsObject returns the object payload and whether v held one.
func (v Value) AsObject() (*Object, bool) { return v.obj, v.kind == KindObject }

// IsUndefined reports whether v is the Undefined variant.
func (v Value) IsUndefined() bool { return v.kind == KindUndefined }
