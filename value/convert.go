package value

import (
	"encoding/json"
	"fmt"
	"math"

	"golang.org/x/exp/slices"
)

// FromInterface converts the natural Go representation of a JSON tree
// (map[string]any, []any, numbers, bool, string, nil) into a Value. Map keys
// are added in sorted order since Go maps carry none.
func FromInterface(v any) (Value, error) {
	switch v := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return Clone(v), nil
	case bool:
		return Bool(v), nil
	case int:
		return fromInt64(int64(v)), nil
	case int8:
		return Int(v), nil
	case int16:
		return Int(v), nil
	case int32:
		return Int(v), nil
	case int64:
		return Long(v), nil
	case uint8:
		return Int(v), nil
	case uint16:
		return Int(v), nil
	case uint32:
		return fromInt64(int64(v)), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return Double(v), nil
		}
		return fromInt64(int64(v)), nil
	case uint64:
		if v > math.MaxInt64 {
			return Double(v), nil
		}
		return fromInt64(int64(v)), nil
	case float32:
		return Float(v), nil
	case float64:
		return Double(v), nil
	case json.Number:
		return ParseNumber(string(v))
	case string:
		return String(v), nil
	case []any:
		arr := &Array{items: make([]Value, 0, len(v))}
		for i, item := range v {
			converted, err := FromInterface(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr.Append(converted)
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		obj := NewObject()
		for _, k := range keys {
			converted, err := FromInterface(v[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			obj.Set(k, converted)
		}
		return obj, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
}

func fromInt64(i int64) Value {
	if i >= math.MinInt32 && i <= math.MaxInt32 {
		return Int(i)
	}
	return Long(i)
}

// ToInterface converts v into plain Go values. Int, Long, Float and Double
// become int32, int64, float32 and float64; markers become their default
// marker text.
func ToInterface(v Value) any {
	switch v := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(v)
	case Int:
		return int32(v)
	case Long:
		return int64(v)
	case Float:
		return float32(v)
	case Double:
		return float64(v)
	case String:
		return string(v)
	case Marker:
		if v == MarkerGet {
			return DefaultGetMarker
		}
		return DefaultDeleteMarker
	case *Array:
		out := make([]any, v.Len())
		for i, item := range v.Values() {
			out[i] = ToInterface(item)
		}
		return out
	case *Object:
		out := make(map[string]any, v.Len())
		v.Range(func(key string, item Value) bool {
			out[key] = ToInterface(item)
			return true
		})
		return out
	}
	return nil
}
