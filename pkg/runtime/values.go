package runtime

import (
	"fmt"
	"iter"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBoolean
	KindList
	KindDict
)

// String returns the type name used by the `is` operator.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindBoolean:
		return "Boolean"
	case KindList:
		return "List"
	case KindDict:
		return "Dict"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// KindByName resolves a type name as written on the right of `is`.
func KindByName(name string) (Kind, bool) {
	switch name {
	case "Number":
		return KindNumber, true
	case "String":
		return KindString, true
	case "Boolean":
		return KindBoolean, true
	case "List":
		return KindList, true
	case "Dict":
		return KindDict, true
	default:
		return 0, false
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBoolean }

//-----------------------------------------------------------------------------
// Collections
//-----------------------------------------------------------------------------

// ListValue is shared by reference: indexed assignment through any alias is
// visible through all of them.
type ListValue struct {
	Elements []Value
}

func NewList(elements []Value) *ListValue {
	return &ListValue{Elements: elements}
}

func (v *ListValue) Kind() Kind { return KindList }

// Concat returns a new list holding the elements of v followed by other.
func (v *ListValue) Concat(other *ListValue) *ListValue {
	out := make([]Value, 0, len(v.Elements)+len(other.Elements))
	out = append(out, v.Elements...)
	out = append(out, other.Elements...)
	return NewList(out)
}

// Key is a dict key: a scalar value reduced to a comparable form. Keys of
// different kinds never collide.
type Key struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
}

// KeyOf converts a scalar value to a key. Lists and dicts are not keys.
func KeyOf(v Value) (Key, bool) {
	switch val := v.(type) {
	case StringValue:
		return Key{Kind: KindString, Str: val.Val}, true
	case NumberValue:
		return Key{Kind: KindNumber, Num: val.Val}, true
	case BoolValue:
		return Key{Kind: KindBoolean, Bool: val.Val}, true
	default:
		return Key{}, false
	}
}

// Value returns the scalar value the key was built from.
func (k Key) Value() Value {
	switch k.Kind {
	case KindNumber:
		return NumberValue{Val: k.Num}
	case KindBoolean:
		return BoolValue{Val: k.Bool}
	default:
		return StringValue{Val: k.Str}
	}
}

// DictValue maps scalar keys to values and remembers insertion order for
// display. Like ListValue it has reference semantics.
type DictValue struct {
	keys    []Key
	entries map[Key]Value
}

func NewDict() *DictValue {
	return &DictValue{entries: make(map[Key]Value)}
}

func (v *DictValue) Kind() Kind { return KindDict }

func (v *DictValue) Len() int { return len(v.keys) }

func (v *DictValue) Get(key Key) (Value, bool) {
	val, ok := v.entries[key]
	return val, ok
}

// Set inserts or replaces the entry for key. Replacing keeps the key's
// original position.
func (v *DictValue) Set(key Key, val Value) {
	if _, ok := v.entries[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.entries[key] = val
}

// All yields entries in insertion order.
func (v *DictValue) All() iter.Seq2[Key, Value] {
	return func(yield func(Key, Value) bool) {
		for _, key := range v.keys {
			if !yield(key, v.entries[key]) {
				return
			}
		}
	}
}

// Merge returns a new dict with the entries of v overridden by other.
func (v *DictValue) Merge(other *DictValue) *DictValue {
	out := NewDict()
	for key, val := range v.All() {
		out.Set(key, val)
	}
	for key, val := range other.All() {
		out.Set(key, val)
	}
	return out
}
