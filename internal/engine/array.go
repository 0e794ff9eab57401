package engine

import (
	"github.com/samber/lo"

	"github.com/brunoga/profile/internal/core"
	"github.com/brunoga/profile/value"
)

// handleArray applies the current operation to an array held at parent[key].
// Every operation except GET records a single change for the whole array.
func (t *traversal) handleArray(parent *value.Object, key string, oldArr, newArr *value.Array, path string) {
	if newArr.Len() == 0 {
		return
	}

	switch t.op {
	case ArrayAdd:
		t.arrayAdd(oldArr, newArr, path)
	case ArrayRemove:
		t.arrayRemove(parent, key, oldArr, newArr, path)
	case Update:
		t.arrayReplace(parent, key, oldArr, newArr, path)
	case Get:
		t.arrayGet(oldArr, newArr, path)
	case Increment, Decrement:
		t.arrayArithmetic(oldArr, newArr, path)
	}
}

func stringsOf(arr *value.Array) []value.String {
	return lo.FilterMap(arr.Values(), func(v value.Value, _ int) (value.String, bool) {
		s, ok := v.(value.String)
		return s, ok
	})
}

// arrayAdd appends the string elements of newArr. Duplicates are kept.
func (t *traversal) arrayAdd(oldArr, newArr *value.Array, path string) {
	additions := stringsOf(newArr)
	if len(additions) == 0 {
		t.skip(path, "no string elements to add")
		return
	}

	before := oldArr.Clone()
	for _, s := range additions {
		oldArr.Append(s)
	}
	t.changes.record(path, before, oldArr.Clone())
}

// arrayRemove drops every element of oldArr that is a string listed in newArr.
func (t *traversal) arrayRemove(parent *value.Object, key string, oldArr, newArr *value.Array, path string) {
	removals := stringsOf(newArr)
	kept := lo.Reject(oldArr.Values(), func(v value.Value, _ int) bool {
		s, ok := v.(value.String)
		return ok && lo.Contains(removals, s)
	})
	if len(kept) == oldArr.Len() {
		return
	}

	before := oldArr.Clone()
	result := value.NewArray(kept...)
	parent.Set(key, result)
	t.changes.record(path, before, result.Clone())
}

func (t *traversal) arrayReplace(parent *value.Object, key string, oldArr, newArr *value.Array, path string) {
	if core.Equal(oldArr, newArr) {
		return
	}
	if hasMarker(newArr) {
		t.skip(path, "markers are only valid in delete patches")
		return
	}

	parent.Set(key, newArr.Clone())
	t.changes.record(path, oldArr, newArr.Clone())
}

// arrayGet records a read for every index present in both arrays, descending
// into element pairs that are both objects.
func (t *traversal) arrayGet(oldArr, newArr *value.Array, path string) {
	for i, newElem := range newArr.Values() {
		elemPath := core.IndexPath(path, i)
		if i >= oldArr.Len() {
			t.skip(elemPath, "index out of range")
			continue
		}

		oldElem := oldArr.At(i)
		oldObj, oldIsObj := oldElem.(*value.Object)
		newObj, newIsObj := newElem.(*value.Object)
		if oldIsObj && newIsObj {
			t.merge(oldObj, newObj, elemPath)
			continue
		}
		t.changes.record(elemPath, value.Clone(oldElem), value.MarkerGet)
	}
}

// arrayArithmetic increments or decrements paired elements. Object pairs are
// merged recursively; their nested changes only decide whether the array
// changed, the recorded change is the whole array before and after.
func (t *traversal) arrayArithmetic(oldArr, newArr *value.Array, path string) {
	before := oldArr.Clone()
	modified := false

	for i := 0; i < min(oldArr.Len(), newArr.Len()); i++ {
		switch oldElem := oldArr.At(i).(type) {
		case *value.Object:
			newObj, ok := newArr.At(i).(*value.Object)
			if !ok {
				continue
			}
			elemPath := core.IndexPath(path, i)
			if t.scratch(func() { t.merge(oldElem, newObj, elemPath) }) {
				modified = true
			}
		case value.Number:
			newNum, ok := newArr.At(i).(value.Number)
			if !ok {
				t.skip(core.IndexPath(path, i), "operand is not a number")
				continue
			}
			result := t.arithmetic(oldElem, newNum)
			if !core.Equal(result, oldElem) {
				oldArr.Set(i, result)
				modified = true
			}
		}
	}

	if modified {
		t.changes.record(path, before, oldArr.Clone())
	}
}
