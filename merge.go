package profile

import (
	"github.com/brunoga/profile/internal/core"
)

// Merge composes two change-sets recorded one after the other on the same
// document into one that goes straight from the state before a to the state
// after b.
//
// A path present in both keeps the old value from a and the new value from b,
// and is dropped when those are equal. Other paths are carried over as they
// are. Neither input is modified; values are shared with them, not copied.
func Merge(a, b ChangeSet) ChangeSet {
	out := make(ChangeSet, len(a)+len(b))
	for path, change := range a {
		out[path] = change
	}

	for path, later := range b {
		earlier, ok := out[path]
		if !ok {
			out[path] = later
			continue
		}
		merged := Change{Old: earlier.Old, New: later.New}
		if core.Equal(merged.Old, merged.New) {
			delete(out, path)
			continue
		}
		out[path] = merged
	}
	return out
}
