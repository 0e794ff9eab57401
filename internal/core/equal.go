package core

import (
	"math"

	"github.com/brunoga/profile/value"
)

// Equal performs a deep equality check between a and b.
//
// Two nils are equal. Objects are equal when they hold the same keys with
// equal values, regardless of order. Arrays are equal when they have the same
// length and equal elements in order. Numbers only equal numbers of the same
// variant, so Int(1) and Long(1) differ. Floating point values compare by bit
// pattern with NaN canonicalised: NaN equals NaN and 0.0 differs from -0.0.
func Equal(a, b value.Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch a := a.(type) {
	case value.Null:
		_, ok := b.(value.Null)
		return ok
	case value.Bool, value.Int, value.Long, value.String, value.Marker:
		return a == b
	case value.Float:
		bf, ok := b.(value.Float)
		return ok && floatBits(float64(a)) == floatBits(float64(bf))
	case value.Double:
		bd, ok := b.(value.Double)
		return ok && floatBits(float64(a)) == floatBits(float64(bd))
	case *value.Array:
		bArr, ok := b.(*value.Array)
		if !ok {
			return false
		}
		if a == bArr {
			return true
		}
		if a.Len() != bArr.Len() {
			return false
		}
		for i, item := range a.Values() {
			if !Equal(item, bArr.At(i)) {
				return false
			}
		}
		return true
	case *value.Object:
		bObj, ok := b.(*value.Object)
		if !ok {
			return false
		}
		if a == bObj {
			return true
		}
		if a.Len() != bObj.Len() {
			return false
		}
		equal := true
		a.Range(func(key string, item value.Value) bool {
			other, found := bObj.Get(key)
			equal = found && Equal(item, other)
			return equal
		})
		return equal
	}
	return false
}

func floatBits(f float64) uint64 {
	if math.IsNaN(f) {
		return math.Float64bits(math.NaN())
	}
	return math.Float64bits(f)
}
