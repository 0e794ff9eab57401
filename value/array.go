package value

import "strings"

// Array is an ordered, index-addressed sequence of values. The zero value is
// an empty array ready to use.
type Array struct {
	items []Value
}

// NewArray returns an array holding items. The slice is used as is.
func NewArray(items ...Value) *Array {
	return &Array{items: items}
}

func (*Array) Kind() Kind { return KindArray }
func (*Array) isValue()   {}

// Len returns the number of elements.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.items)
}

// At returns the element at index i. It panics if i is out of range.
func (a *Array) At(i int) Value {
	return a.items[i]
}

// Set replaces the element at index i. It panics if i is out of range.
func (a *Array) Set(i int, v Value) {
	a.items[i] = v
}

// Append adds values to the end of the array.
func (a *Array) Append(vs ...Value) {
	a.items = append(a.items, vs...)
}

// RemoveAt deletes the element at index i, shifting later elements down.
func (a *Array) RemoveAt(i int) {
	copy(a.items[i:], a.items[i+1:])
	a.items[len(a.items)-1] = nil
	a.items = a.items[:len(a.items)-1]
}

// Values returns the elements. The returned slice must not be modified.
func (a *Array) Values() []Value {
	if a == nil {
		return nil
	}
	return a.items
}

// Clone returns a deep copy of a.
func (a *Array) Clone() *Array {
	if a == nil {
		return nil
	}
	items := make([]Value, len(a.items))
	for i, v := range a.items {
		items[i] = Clone(v)
	}
	return &Array{items: items}
}

func (a *Array) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range a.Values() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(v.String())
	}
	b.WriteByte(']')
	return b.String()
}

// MarshalJSON implements json.Marshaler.
func (a *Array) MarshalJSON() ([]byte, error) {
	return Marshal(a)
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Array) UnmarshalJSON(data []byte) error {
	v, err := Parse(data)
	if err != nil {
		return err
	}
	arr, ok := v.(*Array)
	if !ok {
		return ErrNotArray
	}
	a.items = arr.items
	return nil
}
