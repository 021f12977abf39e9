// Package jsonvalue provides an immutable, ordered JSON tree.
//
// A Value is a tagged union of null, boolean, signed and unsigned 64-bit
// integers, doubles, strings, arrays and objects. Arrays and objects are
// shared by reference: copying a Value is cheap and never copies children.
// Trees are built bottom-up, either by Parse or by the constructors in this
// package, so a Value can never contain a cycle.
//
// Objects keep their members in insertion order and tolerate duplicate keys.
// Lookups return the last member with a matching key.
package jsonvalue

import (
	"math"
	"slices"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	// Null is the zero Kind; the zero Value is a JSON null.
	Null Kind = iota
	Bool
	Int64
	UInt64
	Double
	String
	Array
	Object
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int64:
		return "int64"
	case UInt64:
		return "uint64"
	case Double:
		return "double"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Value is a JSON value. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	u    uint64
	f    float64
	s    string
	arr  *[]Value
	obj  *[]Member
}

// NullValue returns a JSON null.
func NullValue() Value { return Value{} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// IntValue wraps a signed integer.
func IntValue(i int64) Value { return Value{kind: Int64, i: i} }

// UintValue wraps an unsigned integer. Values that fit in an int64 are
// stored as Int64 so equal numbers compare equal regardless of origin.
func UintValue(u uint64) Value {
	if u <= math.MaxInt64 {
		return Value{kind: Int64, i: int64(u)}
	}
	return Value{kind: UInt64, u: u}
}

// DoubleValue wraps a float64.
func DoubleValue(f float64) Value { return Value{kind: Double, f: f} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: String, s: s} }

// ArrayValue builds an array from items. The slice is copied; later changes
// to items do not affect the returned Value.
func ArrayValue(items ...Value) Value {
	cp := slices.Clone(items)
	if cp == nil {
		cp = []Value{}
	}
	return Value{kind: Array, arr: &cp}
}

// ObjectValue builds an object from members in the given order.
func ObjectValue(members ...Member) Value {
	cp := slices.Clone(members)
	if cp == nil {
		cp = []Member{}
	}
	return Value{kind: Object, obj: &cp}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == Null }

// IsNumber reports whether v is an Int64, UInt64 or Double.
func (v Value) IsNumber() bool {
	return v.kind == Int64 || v.kind == UInt64 || v.kind == Double
}

// Bool returns the boolean held by v.
func (v Value) Bool() (bool, bool) {
	if v.kind != Bool {
		return false, false
	}
	return v.b, true
}

// Int returns v as an int64. Only integral kinds that fit are accepted;
// doubles are never truncated.
func (v Value) Int() (int64, bool) {
	switch v.kind {
	case Int64:
		return v.i, true
	case UInt64:
		if v.u <= math.MaxInt64 {
			return int64(v.u), true
		}
	}
	return 0, false
}

// Uint returns v as a uint64. Negative integers and doubles are rejected.
func (v Value) Uint() (uint64, bool) {
	switch v.kind {
	case Int64:
		if v.i >= 0 {
			return uint64(v.i), true
		}
	case UInt64:
		return v.u, true
	}
	return 0, false
}

// Float returns any numeric kind as a float64.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case Int64:
		return float64(v.i), true
	case UInt64:
		return float64(v.u), true
	case Double:
		return v.f, true
	}
	return 0, false
}

// Str returns the string held by v.
func (v Value) Str() (string, bool) {
	if v.kind != String {
		return "", false
	}
	return v.s, true
}

// Len returns the number of array items or object members.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(*v.arr)
	case Object:
		return len(*v.obj)
	}
	return 0
}

// Items returns a copy of the array items, or nil if v is not an array.
func (v Value) Items() []Value {
	if v.kind != Array {
		return nil
	}
	return slices.Clone(*v.arr)
}

// Index returns the i-th array item.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != Array || i < 0 || i >= len(*v.arr) {
		return Value{}, false
	}
	return (*v.arr)[i], true
}

// Members returns a copy of the object members in document order, or nil if
// v is not an object.
func (v Value) Members() []Member {
	if v.kind != Object {
		return nil
	}
	return slices.Clone(*v.obj)
}

// Get returns the last member named key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	members := *v.obj
	for i := len(members) - 1; i >= 0; i-- {
		if members[i].Key == key {
			return members[i].Value, true
		}
	}
	return Value{}, false
}

// Object returns the member named key when it holds an object.
func (v Value) Object(key string) (Value, bool) {
	child, ok := v.Get(key)
	if !ok || child.kind != Object {
		return Value{}, false
	}
	return child, true
}

// ArrayAt returns the member named key when it holds an array.
func (v Value) ArrayAt(key string) (Value, bool) {
	child, ok := v.Get(key)
	if !ok || child.kind != Array {
		return Value{}, false
	}
	return child, true
}

// Interface converts v into plain Go values: nil, bool, int64, uint64,
// float64, string, []any and map[string]any. Duplicate keys collapse to the
// last occurrence.
func (v Value) Interface() any {
	switch v.kind {
	case Bool:
		return v.b
	case Int64:
		return v.i
	case UInt64:
		return v.u
	case Double:
		return v.f
	case String:
		return v.s
	case Array:
		out := make([]any, len(*v.arr))
		for i, item := range *v.arr {
			out[i] = item.Interface()
		}
		return out
	case Object:
		out := make(map[string]any, len(*v.obj))
		for _, m := range *v.obj {
			out[m.Key] = m.Value.Interface()
		}
		return out
	}
	return nil
}

// Equal reports whether a and b hold the same JSON value. Numbers compare
// by value across kinds, objects compare member by member in order.
func Equal(a, b Value) bool {
	if a.IsNumber() && b.IsNumber() {
		return numbersEqual(a, b)
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Null:
		return true
	case Bool:
		return a.b == b.b
	case String:
		return a.s == b.s
	case Array:
		if a.arr == b.arr {
			return true
		}
		return slices.EqualFunc(*a.arr, *b.arr, Equal)
	case Object:
		if a.obj == b.obj {
			return true
		}
		return slices.EqualFunc(*a.obj, *b.obj, func(x, y Member) bool {
			return x.Key == y.Key && Equal(x.Value, y.Value)
		})
	}
	return false
}

func numbersEqual(a, b Value) bool {
	if ai, ok := a.Int(); ok {
		if bi, ok := b.Int(); ok {
			return ai == bi
		}
	}
	if au, ok := a.Uint(); ok {
		if bu, ok := b.Uint(); ok {
			return au == bu
		}
	}
	af, _ := a.Float()
	bf, _ := b.Float()
	return af == bf
}

// ObjectBuilder accumulates members for a freshly built object.
type ObjectBuilder struct {
	members []Member
}

// NewObjectBuilder returns an empty builder.
func NewObjectBuilder() *ObjectBuilder {
	return &ObjectBuilder{}
}

// Set appends a member.
func (b *ObjectBuilder) Set(key string, v Value) *ObjectBuilder {
	b.members = append(b.members, Member{Key: key, Value: v})
	return b
}

// Len returns the number of members added so far.
func (b *ObjectBuilder) Len() int { return len(b.members) }

// Build returns the object. The builder may keep being used; later Set calls
// do not affect values already built.
func (b *ObjectBuilder) Build() Value {
	return ObjectValue(b.members...)
}
