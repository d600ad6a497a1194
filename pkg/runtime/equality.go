package runtime

import "math"

// Epsilon is the tolerance `==` applies to numbers.
const Epsilon = 1e-9

// Equal is the `==` relation: numbers compare within Epsilon, lists element
// by element, dicts by key set and per-key Equal. Values of different kinds
// are never equal.
func Equal(a, b Value) bool {
	return compare(a, b, true)
}

// Identical is exact structural equality; `!=` is its negation.
func Identical(a, b Value) bool {
	return compare(a, b, false)
}

func compare(a, b Value, tolerant bool) bool {
	switch left := a.(type) {
	case NumberValue:
		right, ok := b.(NumberValue)
		if !ok {
			return false
		}
		if tolerant {
			return left.Val == right.Val || math.Abs(left.Val-right.Val) < Epsilon
		}
		return left.Val == right.Val
	case StringValue:
		right, ok := b.(StringValue)
		return ok && left.Val == right.Val
	case BoolValue:
		right, ok := b.(BoolValue)
		return ok && left.Val == right.Val
	case *ListValue:
		right, ok := b.(*ListValue)
		if !ok || len(left.Elements) != len(right.Elements) {
			return false
		}
		for i := range left.Elements {
			if !compare(left.Elements[i], right.Elements[i], tolerant) {
				return false
			}
		}
		return true
	case *DictValue:
		right, ok := b.(*DictValue)
		if !ok || left.Len() != right.Len() {
			return false
		}
		for key, lv := range left.All() {
			rv, found := right.Get(key)
			if !found || !compare(lv, rv, tolerant) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
