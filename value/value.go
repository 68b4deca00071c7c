package value

import (
	json "github.com/goccy/go-json"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a generic structured value: null, bool, number, string, array, or
// an insertion-ordered object with validated keys. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	num  json.Number
	str  string
	arr  []Value
	obj  Map[Value]
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric value holding the given decimal text.
func Number(n json.Number) Value { return Value{kind: KindNumber, num: n} }

// Int returns a numeric value for i.
func Int(i int64) Value { return Number(json.Number(formatInt(i))) }

// Float returns a numeric value for f.
func Float(f float64) Value { return Number(json.Number(formatFloat(f))) }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Array returns an array value of the given items.
func Array(items ...Value) Value {
	return Value{kind: KindArray, arr: items}
}

// Object returns an object value wrapping the given ordered map.
func Object(m Map[Value]) Value { return Value{kind: KindObject, obj: m} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload; ok is false for other kinds.
func (v Value) Bool() (b, ok bool) { return v.b, v.kind == KindBool }

// Number returns the numeric payload; ok is false for other kinds.
func (v Value) Number() (json.Number, bool) { return v.num, v.kind == KindNumber }

// String returns the string payload; ok is false for other kinds.
func (v Value) String() (string, bool) { return v.str, v.kind == KindString }

// Items returns the array payload; ok is false for other kinds.
func (v Value) Items() ([]Value, bool) { return v.arr, v.kind == KindArray }

// Object returns the object payload; ok is false for other kinds.
func (v Value) Obj() (Map[Value], bool) { return v.obj, v.kind == KindObject }

// Equal reports deep equality. Numbers compare by their decimal text.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.num == other.num
	case KindString:
		return v.str == other.str
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if v.obj.Len() != other.obj.Len() {
			return false
		}
		equal := true
		v.obj.Each(func(k Key, item Value) bool {
			o, ok := other.obj.Get(k)
			if !ok || !item.Equal(o) {
				equal = false
				return false
			}
			return true
		})
		return equal
	}
	return false
}
