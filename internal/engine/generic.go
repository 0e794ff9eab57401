package engine

import (
	"github.com/brunoga/profile/internal/core"
	"github.com/brunoga/profile/value"
)

// handleOperation applies UPDATE, INCREMENT, DECREMENT, GET and the array
// operations to target[key].
func (t *traversal) handleOperation(target *value.Object, key string, newValue value.Value, path string) {
	if _, ok := newValue.(value.Marker); ok {
		t.skip(path, "markers are only valid in delete patches")
		return
	}

	oldValue, ok := target.Get(key)
	if !ok {
		t.handleMissingKey(target, key, newValue, path)
		return
	}

	switch oldValue := oldValue.(type) {
	case *value.Object:
		if newObj, ok := newValue.(*value.Object); ok {
			t.merge(oldValue, newObj, path)
			return
		}
	case *value.Array:
		if newArr, ok := newValue.(*value.Array); ok {
			t.handleArray(target, key, oldValue, newArr, path)
			return
		}
	}

	switch {
	case t.op.IsNumeric():
		t.applyNumeric(target, key, oldValue, newValue, path)
	case t.op == Get:
		t.changes.record(path, value.Clone(oldValue), value.MarkerGet)
	case t.op == Update:
		t.replace(target, key, oldValue, newValue, path)
	default:
		t.skip(path, "patch value does not match the shape the operation needs")
	}
}

// handleMissingKey creates target[key] when the operation allows it.
func (t *traversal) handleMissingKey(target *value.Object, key string, newValue value.Value, path string) {
	switch t.op {
	case Get, ArrayRemove:
		t.skip(path, "key does not exist")
	case Increment, Decrement:
		n, ok := newValue.(value.Number)
		if !ok {
			t.skip(path, "operand is not a number")
			return
		}
		if t.op == Decrement {
			n = core.NegateNumber(n)
		}
		target.Set(key, n)
		t.changes.recordAddition(path, n)
	default:
		if hasMarker(newValue) {
			t.skip(path, "markers are only valid in delete patches")
			return
		}
		target.Set(key, value.Clone(newValue))
		t.changes.recordAllLeafValues(path, value.Clone(newValue))
	}
}

func (t *traversal) applyNumeric(target *value.Object, key string, oldValue, newValue value.Value, path string) {
	oldNum, ok := oldValue.(value.Number)
	if !ok {
		t.skip(path, "current value is not a number")
		return
	}
	newNum, ok := newValue.(value.Number)
	if !ok {
		t.skip(path, "operand is not a number")
		return
	}

	result := t.arithmetic(oldNum, newNum)
	if core.Equal(result, oldNum) {
		return
	}
	target.Set(key, result)
	t.changes.record(path, oldNum, result)
}

func (t *traversal) arithmetic(a, b value.Number) value.Number {
	if t.op == Decrement {
		return core.SubtractNumbers(a, b)
	}
	return core.AddNumbers(a, b)
}

// replace overwrites target[key] with a copy of newValue. When an object is
// replaced by something else, or something else by an object, the leaves of
// the object side are recorded one by one.
func (t *traversal) replace(target *value.Object, key string, oldValue, newValue value.Value, path string) {
	if core.Equal(oldValue, newValue) {
		return
	}
	if hasMarker(newValue) {
		t.skip(path, "markers are only valid in delete patches")
		return
	}

	target.Set(key, value.Clone(newValue))

	oldObj, oldIsObj := oldValue.(*value.Object)
	newObj, newIsObj := newValue.(*value.Object)
	switch {
	case oldIsObj && oldObj.Len() == 0, newIsObj && newObj.Len() == 0:
		// An empty object has no leaves to spread over, so the whole
		// replacement is one entry at path.
		t.changes.record(path, oldValue, value.Clone(newValue))
	case oldIsObj:
		// Two objects never get here: they are merged key by key.
		t.changes.recordAllLeafDeletions(path, oldValue)
		t.changes.recordAddition(path, value.Clone(newValue))
	case newIsObj:
		t.changes.recordDeletion(path, oldValue)
		t.changes.recordAllLeafValues(path, value.Clone(newValue))
	default:
		t.changes.record(path, oldValue, value.Clone(newValue))
	}
}
