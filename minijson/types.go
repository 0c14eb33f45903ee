package minijson

import (
	"fmt"
	"math"
)

// Kind represents MINIJSON value kinds.
type Kind uint8

const (
	KindNull Kind = iota
	KindNumber
	KindBool
	KindString
	KindArray
	KindObject
	KindUndefined // No representation: dropped from objects, empty in arrays
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindUndefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// Value represents a MINIJSON value. A nil *Value is null.
type Value struct {
	kind Kind

	// Scalar values (only one valid based on kind)
	boolVal bool
	numVal  float64
	strVal  string

	// Container values
	arrVal []*Value
	objVal []Entry
	index  map[string]int // key -> position in objVal, once len >= indexThreshold
}

const indexThreshold = 8

// Entry is a key-value pair of an object.
type Entry struct {
	Key   string
	Value *Value
}

// ============================================================
// Constructors
// ============================================================

// Null creates a null value.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Undefined creates a value with no representation.
func Undefined() *Value {
	return &Value{kind: KindUndefined}
}

// Number creates a numeric value.
func Number(v float64) *Value {
	return &Value{kind: KindNumber, numVal: v}
}

// Bool creates a boolean value.
func Bool(v bool) *Value {
	return &Value{kind: KindBool, boolVal: v}
}

// Str creates a string value.
func Str(v string) *Value {
	return &Value{kind: KindString, strVal: v}
}

// Array creates an array value.
func Array(values ...*Value) *Value {
	return &Value{kind: KindArray, arrVal: values}
}

// Object creates an object value. Duplicate keys keep the position of the
// first occurrence and the value of the last.
func Object(entries ...Entry) *Value {
	v := &Value{kind: KindObject, objVal: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		v.Set(e.Key, e.Value)
	}
	return v
}

// Field creates an Entry for use in Object construction.
func Field(key string, value *Value) Entry {
	return Entry{Key: key, Value: value}
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the value kind.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull returns true if this is a null value.
func (v *Value) IsNull() bool {
	return v == nil || v.kind == KindNull
}

// AsNumber returns the numeric value.
func (v *Value) AsNumber() (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("minijson: nil value")
	}
	if v.kind != KindNumber {
		return 0, fmt.Errorf("minijson: expected number, got %s", v.kind)
	}
	return v.numVal, nil
}

// AsBool returns the boolean value.
func (v *Value) AsBool() (bool, error) {
	if v == nil {
		return false, fmt.Errorf("minijson: nil value")
	}
	if v.kind != KindBool {
		return false, fmt.Errorf("minijson: expected bool, got %s", v.kind)
	}
	return v.boolVal, nil
}

// AsStr returns the string value.
func (v *Value) AsStr() (string, error) {
	if v == nil {
		return "", fmt.Errorf("minijson: nil value")
	}
	if v.kind != KindString {
		return "", fmt.Errorf("minijson: expected string, got %s", v.kind)
	}
	return v.strVal, nil
}

// AsArray returns the array elements.
func (v *Value) AsArray() ([]*Value, error) {
	if v == nil {
		return nil, fmt.Errorf("minijson: nil value")
	}
	if v.kind != KindArray {
		return nil, fmt.Errorf("minijson: expected array, got %s", v.kind)
	}
	return v.arrVal, nil
}

// AsObject returns the object entries in insertion order.
func (v *Value) AsObject() ([]Entry, error) {
	if v == nil {
		return nil, fmt.Errorf("minijson: nil value")
	}
	if v.kind != KindObject {
		return nil, fmt.Errorf("minijson: expected object, got %s", v.kind)
	}
	return v.objVal, nil
}

// Len returns the length of an array or object.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KindArray:
		return len(v.arrVal)
	case KindObject:
		return len(v.objVal)
	default:
		return 0
	}
}

// Keys returns the object keys in insertion order.
func (v *Value) Keys() []string {
	if v == nil || v.kind != KindObject {
		return nil
	}
	keys := make([]string, len(v.objVal))
	for i, e := range v.objVal {
		keys[i] = e.Key
	}
	return keys
}

// Get returns a field value by key, or nil if absent.
func (v *Value) Get(key string) *Value {
	if v == nil || v.kind != KindObject {
		return nil
	}
	if i, ok := v.lookup(key); ok {
		return v.objVal[i].Value
	}
	return nil
}

// Has reports whether an object contains key.
func (v *Value) Has(key string) bool {
	if v == nil || v.kind != KindObject {
		return false
	}
	_, ok := v.lookup(key)
	return ok
}

// Index returns the i-th element of an array.
func (v *Value) Index(i int) (*Value, error) {
	if v == nil || v.kind != KindArray {
		return nil, fmt.Errorf("minijson: not an array")
	}
	if i < 0 || i >= len(v.arrVal) {
		return nil, fmt.Errorf("minijson: index %d out of bounds (len=%d)", i, len(v.arrVal))
	}
	return v.arrVal[i], nil
}

func (v *Value) lookup(key string) (int, bool) {
	if v.index != nil {
		i, ok := v.index[key]
		return i, ok
	}
	for i := range v.objVal {
		if v.objVal[i].Key == key {
			return i, true
		}
	}
	return 0, false
}

// ============================================================
// Mutators
// ============================================================

// Set sets a field value on an object. An existing key keeps its position.
func (v *Value) Set(key string, val *Value) {
	if v.kind != KindObject {
		panic("minijson: cannot set on non-object")
	}
	if i, ok := v.lookup(key); ok {
		v.objVal[i].Value = val
		return
	}
	v.objVal = append(v.objVal, Entry{Key: key, Value: val})
	switch {
	case v.index != nil:
		v.index[key] = len(v.objVal) - 1
	case len(v.objVal) >= indexThreshold:
		v.index = make(map[string]int, len(v.objVal))
		for i, e := range v.objVal {
			v.index[e.Key] = i
		}
	}
}

// Append adds a value to an array.
func (v *Value) Append(val *Value) {
	if v.kind != KindArray {
		panic("minijson: cannot append to non-array")
	}
	v.arrVal = append(v.arrVal, val)
}

// ============================================================
// Conversion & Comparison
// ============================================================

// Interface converts the value to plain Go values: nil, float64, bool,
// string, []any and map[string]any. Undefined becomes nil.
func (v *Value) Interface() any {
	switch v.Kind() {
	case KindNumber:
		return v.numVal
	case KindBool:
		return v.boolVal
	case KindString:
		return v.strVal
	case KindArray:
		out := make([]any, len(v.arrVal))
		for i, elem := range v.arrVal {
			out[i] = elem.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.objVal))
		for _, e := range v.objVal {
			out[e.Key] = e.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// Equal reports whether v and w are structurally equal. Object key order
// matters. NaN equals NaN and -0 differs from 0, so equality matches what
// survives a round trip.
func (v *Value) Equal(w *Value) bool {
	if v.Kind() != w.Kind() {
		return false
	}
	switch v.Kind() {
	case KindNull, KindUndefined:
		return true
	case KindNumber:
		a, b := v.numVal, w.numVal
		if math.IsNaN(a) || math.IsNaN(b) {
			return math.IsNaN(a) && math.IsNaN(b)
		}
		return a == b && math.Signbit(a) == math.Signbit(b)
	case KindBool:
		return v.boolVal == w.boolVal
	case KindString:
		return v.strVal == w.strVal
	case KindArray:
		if len(v.arrVal) != len(w.arrVal) {
			return false
		}
		for i := range v.arrVal {
			if !v.arrVal[i].Equal(w.arrVal[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.objVal) != len(w.objVal) {
			return false
		}
		for i := range v.objVal {
			if v.objVal[i].Key != w.objVal[i].Key || !v.objVal[i].Value.Equal(w.objVal[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// String returns the MINIJSON token for v, or a placeholder when v has no
// representation or contains a cycle.
func (v *Value) String() string {
	s, err := Stringify(v)
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return s
}
