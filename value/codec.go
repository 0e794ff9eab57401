package value

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

const (
	// DefaultDeleteMarker is the patch text decoded as MarkerDelete.
	DefaultDeleteMarker = "$delete"
	// DefaultGetMarker is the text MarkerGet encodes to.
	DefaultGetMarker = "$get"
)

var (
	ErrNotObject        = errors.New("value: document is not an object")
	ErrNotArray         = errors.New("value: document is not an array")
	ErrTrailingData     = errors.New("value: unexpected data after top-level value")
	ErrUnsupportedValue = errors.New("value: unsupported value")
)

var api = jsoniter.ConfigCompatibleWithStandardLibrary

// CodecOption configures parsing and encoding.
type CodecOption func(*codecConfig)

type codecConfig struct {
	markers    bool
	deleteText string
	getText    string
	indent     int
}

func newCodecConfig(opts []CodecOption) *codecConfig {
	c := &codecConfig{
		deleteText: DefaultDeleteMarker,
		getText:    DefaultGetMarker,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithDeleteMarker sets the text that stands for MarkerDelete.
func WithDeleteMarker(text string) CodecOption {
	return func(c *codecConfig) {
		c.deleteText = text
	}
}

// WithGetMarker sets the text that stands for MarkerGet.
func WithGetMarker(text string) CodecOption {
	return func(c *codecConfig) {
		c.getText = text
	}
}

// WithIndent makes Marshal emit indented output, step spaces per level.
func WithIndent(step int) CodecOption {
	return func(c *codecConfig) {
		c.indent = step
	}
}

// Parse decodes a JSON object or array. Marker texts are kept as strings.
func Parse(data []byte) (Value, error) {
	return parse(data, newCodecConfig(nil))
}

// ParseObject decodes a profile document. Marker texts are kept as strings.
func ParseObject(data []byte) (*Object, error) {
	return parseObject(data, newCodecConfig(nil))
}

// ParsePatch decodes a patch document. Strings equal to the delete or get
// marker text become Marker nodes.
func ParsePatch(data []byte, opts ...CodecOption) (*Object, error) {
	c := newCodecConfig(opts)
	c.markers = true
	return parseObject(data, c)
}

// MustParseObject is like ParseObject but panics on error.
func MustParseObject(s string) *Object {
	o, err := ParseObject([]byte(s))
	if err != nil {
		panic(err)
	}
	return o
}

// MustParsePatch is like ParsePatch but panics on error.
func MustParsePatch(s string, opts ...CodecOption) *Object {
	o, err := ParsePatch([]byte(s), opts...)
	if err != nil {
		panic(err)
	}
	return o
}

func parseObject(data []byte, c *codecConfig) (*Object, error) {
	v, err := parse(data, c)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotObject, v.Kind())
	}
	return obj, nil
}

func parse(data []byte, c *codecConfig) (Value, error) {
	iter := api.BorrowIterator(data)
	defer api.ReturnIterator(iter)

	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue, jsoniter.ArrayValue:
	default:
		return nil, fmt.Errorf("%w: top-level value must be an object or array", ErrUnsupportedValue)
	}

	v := decode(iter, c)
	// A complete container never reads past its closing byte, so even io.EOF
	// here means the input was cut short.
	if iter.Error != nil {
		return nil, fmt.Errorf("value: parse: %w", iter.Error)
	}
	if iter.WhatIsNext() != jsoniter.InvalidValue {
		return nil, ErrTrailingData
	}
	return v, nil
}

func decode(iter *jsoniter.Iterator, c *codecConfig) Value {
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		obj := NewObject()
		iter.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
			obj.Set(field, decode(it, c))
			return it.Error == nil
		})
		return obj
	case jsoniter.ArrayValue:
		arr := &Array{}
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			arr.Append(decode(it, c))
			return it.Error == nil
		})
		return arr
	case jsoniter.StringValue:
		return decodeString(iter.ReadString(), c)
	case jsoniter.NumberValue:
		n := iter.ReadNumber()
		v, err := ParseNumber(string(n))
		if err != nil {
			iter.ReportError("decode", err.Error())
		}
		return v
	case jsoniter.BoolValue:
		return Bool(iter.ReadBool())
	case jsoniter.NilValue:
		iter.ReadNil()
		return Null{}
	}
	iter.ReportError("decode", "expected a JSON value")
	return nil
}

func decodeString(s string, c *codecConfig) Value {
	if c.markers {
		switch s {
		case c.deleteText:
			return MarkerDelete
		case c.getText:
			return MarkerGet
		}
	}
	return String(s)
}

// ParseNumber maps a JSON number literal to the narrowest variant that holds
// it: Int, then Long for integer literals, Double for everything else.
func ParseNumber(s string) (Number, error) {
	if !strings.ContainsAny(s, ".eE") {
		i, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			if i >= math.MinInt32 && i <= math.MaxInt32 {
				return Int(i), nil
			}
			return Long(i), nil
		}
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || !errors.Is(numErr.Err, strconv.ErrRange) {
			return nil, fmt.Errorf("value: invalid number %q", s)
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("value: invalid number %q", s)
	}
	return Double(f), nil
}

// Marshal encodes v as JSON. Markers are written as their marker text.
func Marshal(v Value, opts ...CodecOption) ([]byte, error) {
	c := newCodecConfig(opts)
	cfg := api
	if c.indent > 0 {
		cfg = jsoniter.Config{
			EscapeHTML:    true,
			IndentionStep: c.indent,
		}.Froze()
	}

	stream := cfg.BorrowStream(nil)
	defer cfg.ReturnStream(stream)

	encode(stream, v, c)
	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

func encode(stream *jsoniter.Stream, v Value, c *codecConfig) {
	switch v := v.(type) {
	case nil, Null:
		stream.WriteNil()
	case Bool:
		stream.WriteBool(bool(v))
	case Int:
		stream.WriteInt32(int32(v))
	case Long:
		stream.WriteInt64(int64(v))
	case Float:
		encodeFloat(stream, float64(v), 32)
	case Double:
		encodeFloat(stream, float64(v), 64)
	case String:
		stream.WriteString(string(v))
	case Marker:
		switch v {
		case MarkerDelete:
			stream.WriteString(c.deleteText)
		case MarkerGet:
			stream.WriteString(c.getText)
		default:
			stream.Error = fmt.Errorf("%w: %s", ErrUnsupportedValue, v)
		}
	case *Array:
		if v.Len() == 0 {
			stream.WriteEmptyArray()
			return
		}
		stream.WriteArrayStart()
		for i, item := range v.Values() {
			if i > 0 {
				stream.WriteMore()
			}
			encode(stream, item, c)
		}
		stream.WriteArrayEnd()
	case *Object:
		if v.Len() == 0 {
			stream.WriteEmptyObject()
			return
		}
		stream.WriteObjectStart()
		first := true
		v.Range(func(key string, item Value) bool {
			if !first {
				stream.WriteMore()
			}
			first = false
			stream.WriteObjectField(key)
			encode(stream, item, c)
			return stream.Error == nil
		})
		stream.WriteObjectEnd()
	}
}

func encodeFloat(stream *jsoniter.Stream, f float64, bitSize int) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		if stream.Error == nil {
			stream.Error = fmt.Errorf("%w: %v", ErrUnsupportedValue, f)
		}
		return
	}
	stream.WriteRaw(formatFloat(f, bitSize))
}
