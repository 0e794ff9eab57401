package value

import (
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is a string-keyed mapping that remembers insertion order. The zero
// value is an empty object ready to use.
type Object struct {
	fields *orderedmap.OrderedMap[string, Value]
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{fields: orderedmap.New[string, Value]()}
}

func (*Object) Kind() Kind { return KindObject }
func (*Object) isValue()   {}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil || o.fields == nil {
		return 0
	}
	return o.fields.Len()
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil || o.fields == nil {
		return nil, false
	}
	return o.fields.Get(key)
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set stores v under key. An existing key keeps its position.
func (o *Object) Set(key string, v Value) {
	if o.fields == nil {
		o.fields = orderedmap.New[string, Value]()
	}
	o.fields.Set(key, v)
}

// Delete removes key and returns the value it held.
func (o *Object) Delete(key string) (Value, bool) {
	if o == nil || o.fields == nil {
		return nil, false
	}
	return o.fields.Delete(key)
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	o.Range(func(key string, _ Value) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Range calls fn for every key in insertion order until fn returns false.
// fn may delete the key it was called with, but must not add keys.
func (o *Object) Range(fn func(key string, v Value) bool) {
	if o == nil || o.fields == nil {
		return
	}
	for pair := o.fields.Oldest(); pair != nil; {
		next := pair.Next()
		if !fn(pair.Key, pair.Value) {
			return
		}
		pair = next
	}
}

// Clone returns a deep copy of o.
func (o *Object) Clone() *Object {
	if o == nil {
		return nil
	}
	c := NewObject()
	o.Range(func(key string, v Value) bool {
		c.fields.Set(key, Clone(v))
		return true
	})
	return c
}

func (o *Object) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	o.Range(func(key string, v Value) bool {
		if !first {
			b.WriteByte(',')
		}
		first = false
		b.WriteString(strconv.Quote(key))
		b.WriteByte(':')
		b.WriteString(v.String())
		return true
	})
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON implements json.Marshaler.
func (o *Object) MarshalJSON() ([]byte, error) {
	return Marshal(o)
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Object) UnmarshalJSON(data []byte) error {
	parsed, err := ParseObject(data)
	if err != nil {
		return err
	}
	o.fields = parsed.fields
	return nil
}

// Clone returns a deep copy of v. Leaves are immutable and returned as is.
func Clone(v Value) Value {
	switch v := v.(type) {
	case *Array:
		return v.Clone()
	case *Object:
		return v.Clone()
	}
	return v
}
