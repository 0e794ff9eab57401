package engine

import (
	"github.com/samber/lo"

	"github.com/brunoga/profile/internal/core"
	"github.com/brunoga/profile/value"
)

// handleDelete applies a DELETE patch value to target[key]. Only leaves can be
// deleted; objects and arrays are only ever emptied through their leaves.
func (t *traversal) handleDelete(target *value.Object, key string, newValue value.Value, path string) {
	oldValue, ok := target.Get(key)
	if !ok {
		return
	}

	switch oldValue := oldValue.(type) {
	case *value.Object:
		if newObj, ok := newValue.(*value.Object); ok {
			wasEmpty := oldValue.Len() == 0
			t.merge(oldValue, newObj, path)
			if !wasEmpty && oldValue.Len() == 0 {
				target.Delete(key)
			}
			return
		}
	case *value.Array:
		if newArr, ok := newValue.(*value.Array); ok {
			t.deleteFromArray(target, key, oldValue, newArr, path)
			return
		}
	}

	t.deleteLeaf(target, key, oldValue, newValue, path)
}

func (t *traversal) deleteLeaf(target *value.Object, key string, oldValue, newValue value.Value, path string) {
	if value.IsContainer(oldValue) {
		t.skip(path, "only leaf values can be deleted")
		return
	}
	if value.IsContainer(newValue) {
		t.skip(path, "patch value does not match the shape the operation needs")
		return
	}

	target.Delete(key)
	t.changes.recordDeletion(path, oldValue)
}

func isDeleteMarker(v value.Value) bool {
	return value.IsMarker(v, value.MarkerDelete)
}

func isObject(v value.Value) bool {
	_, ok := v.(*value.Object)
	return ok
}

func (t *traversal) deleteFromArray(parent *value.Object, key string, oldArr, newArr *value.Array, path string) {
	switch {
	case lo.ContainsBy(newArr.Values(), isDeleteMarker):
		t.deleteArrayElements(oldArr, newArr, path)
	case lo.ContainsBy(newArr.Values(), isObject):
		t.deleteArrayFields(oldArr, newArr, path)
	default:
		t.deleteLeaf(parent, key, oldArr, newArr, path)
	}
}

// deleteArrayElements removes the leaf elements of oldArr at the indices where
// newArr holds the delete marker.
func (t *traversal) deleteArrayElements(oldArr, newArr *value.Array, path string) {
	var indices []int
	for i, v := range newArr.Values() {
		if !isDeleteMarker(v) {
			continue
		}
		if i >= oldArr.Len() {
			t.skip(core.IndexPath(path, i), "index out of range")
			continue
		}
		if value.IsContainer(oldArr.At(i)) {
			t.skip(core.IndexPath(path, i), "only leaf values can be deleted")
			continue
		}
		indices = append(indices, i)
	}
	if len(indices) == 0 {
		return
	}

	before := oldArr.Clone()
	// Highest index first so earlier removals do not shift later ones.
	for _, i := range lo.Reverse(indices) {
		oldArr.RemoveAt(i)
	}
	t.changes.record(path, before, oldArr.Clone())
}

// deleteArrayFields deletes fields from object elements of oldArr, pairing
// them with object elements of newArr by index. Elements left empty are
// removed.
func (t *traversal) deleteArrayFields(oldArr, newArr *value.Array, path string) {
	before := oldArr.Clone()
	touched := false
	var emptied []int

	for i := 0; i < min(oldArr.Len(), newArr.Len()); i++ {
		oldObj, ok := oldArr.At(i).(*value.Object)
		if !ok {
			continue
		}
		newObj, ok := newArr.At(i).(*value.Object)
		if !ok {
			continue
		}

		elemPath := core.IndexPath(path, i)
		if !t.scratch(func() { t.merge(oldObj, newObj, elemPath) }) {
			continue
		}
		touched = true
		if oldObj.Len() == 0 {
			emptied = append(emptied, i)
		}
	}
	if !touched {
		return
	}

	for _, i := range lo.Reverse(emptied) {
		oldArr.RemoveAt(i)
	}
	t.changes.record(path, before, oldArr.Clone())
}
