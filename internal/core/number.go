package core

import (
	"golang.org/x/exp/constraints"

	"github.com/brunoga/profile/value"
)

// Number variants ordered from least to most general. The result of a binary
// operation takes the rank of its most general operand.
const (
	rankInt = iota
	rankLong
	rankFloat
	rankDouble
)

func rank(n value.Number) int {
	switch n.(type) {
	case value.Long:
		return rankLong
	case value.Float:
		return rankFloat
	case value.Double:
		return rankDouble
	}
	return rankInt
}

// AddNumbers returns a + b in the most general variant of the two.
func AddNumbers(a, b value.Number) value.Number {
	return combine(a, b, add[int32], add[int64], add[float32], add[float64])
}

// SubtractNumbers returns a - b in the most general variant of the two.
func SubtractNumbers(a, b value.Number) value.Number {
	return combine(a, b, sub[int32], sub[int64], sub[float32], sub[float64])
}

// NegateNumber returns -n in the variant of n.
func NegateNumber(n value.Number) value.Number {
	switch n := n.(type) {
	case value.Int:
		return -n
	case value.Long:
		return -n
	case value.Float:
		return -n
	case value.Double:
		return -n
	}
	return n
}

type numeric interface {
	constraints.Integer | constraints.Float
}

func add[T numeric](a, b T) T { return a + b }
func sub[T numeric](a, b T) T { return a - b }

func combine(a, b value.Number,
	onInt func(a, b int32) int32,
	onLong func(a, b int64) int64,
	onFloat func(a, b float32) float32,
	onDouble func(a, b float64) float64) value.Number {
	switch max(rank(a), rank(b)) {
	case rankDouble:
		return value.Double(onDouble(convert[float64](a), convert[float64](b)))
	case rankFloat:
		return value.Float(onFloat(convert[float32](a), convert[float32](b)))
	case rankLong:
		return value.Long(onLong(convert[int64](a), convert[int64](b)))
	}
	return value.Int(onInt(convert[int32](a), convert[int32](b)))
}

// convert widens n to T. It is only called with a T at least as general as
// the variant of n.
func convert[T numeric](n value.Number) T {
	switch n := n.(type) {
	case value.Int:
		return T(n)
	case value.Long:
		return T(n)
	case value.Float:
		return T(n)
	case value.Double:
		return T(n)
	}
	return 0
}
