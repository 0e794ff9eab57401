package value

import (
	"fmt"
	"strconv"
)

// Kind identifies the concrete variant of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindString
	KindArray
	KindObject
	KindMarker
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindMarker:
		return "marker"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a node in a profile or patch document. The set of implementations
// is closed: Null, Bool, Int, Long, Float, Double, String, *Array, *Object and
// Marker.
type Value interface {
	fmt.Stringer
	Kind() Kind
	isValue()
}

// Number is implemented by Int, Long, Float and Double.
type Number interface {
	Value
	isNumber()
}

type (
	// Null is the JSON null literal.
	Null struct{}
	// Bool is a JSON boolean.
	Bool bool
	// Int is a 32-bit integer.
	Int int32
	// Long is a 64-bit integer.
	Long int64
	// Float is a 32-bit floating point number.
	Float float32
	// Double is a 64-bit floating point number.
	Double float64
	// String is a JSON string.
	String string
)

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Int) Kind() Kind    { return KindInt }
func (Long) Kind() Kind   { return KindLong }
func (Float) Kind() Kind  { return KindFloat }
func (Double) Kind() Kind { return KindDouble }
func (String) Kind() Kind { return KindString }

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Int) isValue()    {}
func (Long) isValue()   {}
func (Float) isValue()  {}
func (Double) isValue() {}
func (String) isValue() {}

func (Int) isNumber()    {}
func (Long) isNumber()   {}
func (Float) isNumber()  {}
func (Double) isNumber() {}

func (Null) String() string     { return "null" }
func (b Bool) String() string   { return strconv.FormatBool(bool(b)) }
func (i Int) String() string    { return strconv.FormatInt(int64(i), 10) }
func (l Long) String() string   { return strconv.FormatInt(int64(l), 10) }
func (f Float) String() string  { return formatFloat(float64(f), 32) }
func (d Double) String() string { return formatFloat(float64(d), 64) }
func (s String) String() string { return strconv.Quote(string(s)) }

// Marker is a control node that only appears in patch documents and in
// change-set values. It is never confused with string data.
type Marker uint8

const (
	// MarkerDelete requests removal of the key or array element it replaces.
	MarkerDelete Marker = iota + 1
	// MarkerGet is written as the new side of a change recorded by a read.
	MarkerGet
)

func (Marker) Kind() Kind { return KindMarker }
func (Marker) isValue()   {}

func (m Marker) String() string {
	switch m {
	case MarkerDelete:
		return "<delete>"
	case MarkerGet:
		return "<get>"
	}
	return "<marker " + strconv.Itoa(int(m)) + ">"
}

// IsContainer reports whether v is an *Array or an *Object.
func IsContainer(v Value) bool {
	switch v.(type) {
	case *Array, *Object:
		return true
	}
	return false
}

// IsNumber reports whether v is one of the numeric variants.
func IsNumber(v Value) bool {
	_, ok := v.(Number)
	return ok
}

// IsMarker reports whether v is the marker m.
func IsMarker(v Value, m Marker) bool {
	got, ok := v.(Marker)
	return ok && got == m
}

func formatFloat(f float64, bitSize int) string {
	s := strconv.FormatFloat(f, 'g', -1, bitSize)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', 'e', 'E', 'N', 'I':
			return s
		}
	}
	// Keep a fractional part so the number decodes back as a float.
	return s + ".0"
}
