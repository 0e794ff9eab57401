package engine

import (
	"io"
	"log/slog"

	"github.com/brunoga/profile/internal/core"
	"github.com/brunoga/profile/value"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// traversal holds the state of one pass over a target and a source document.
// The handlers for each operation family are its methods and recurse through
// merge.
type traversal struct {
	op      Operation
	changes ChangeSet
	logger  *slog.Logger
}

// Traverse walks source key by key, applying op to the matching parts of
// target. target is mutated in place; source is only read. The returned
// change-set is owned by the caller and shares no containers with either
// document.
func Traverse(target, source *value.Object, op Operation, logger *slog.Logger) ChangeSet {
	if logger == nil {
		logger = discardLogger
	}
	t := &traversal{
		op:      op,
		changes: make(ChangeSet),
		logger:  logger,
	}
	t.merge(target, source, "")
	return t.changes
}

func (t *traversal) merge(target, source *value.Object, basePath string) {
	source.Range(func(key string, newValue value.Value) bool {
		path := core.BuildPath(basePath, key)
		if t.op == Delete {
			t.handleDelete(target, key, newValue, path)
		} else {
			t.handleOperation(target, key, newValue, path)
		}
		return true
	})
}

// scratch runs fn with a fresh change-set and reports whether fn recorded
// anything. The recorded changes are dropped; callers record one change for
// the enclosing array instead.
func (t *traversal) scratch(fn func()) bool {
	saved := t.changes
	t.changes = make(ChangeSet)
	fn()
	touched := len(t.changes) > 0
	t.changes = saved
	return touched
}

func (t *traversal) skip(path, reason string) {
	t.logger.Debug("skipping", "op", t.op, "path", path, "reason", reason)
}

// hasMarker reports whether a marker appears anywhere in v.
func hasMarker(v value.Value) bool {
	switch v := v.(type) {
	case value.Marker:
		return true
	case *value.Array:
		for _, item := range v.Values() {
			if hasMarker(item) {
				return true
			}
		}
	case *value.Object:
		found := false
		v.Range(func(_ string, item value.Value) bool {
			found = hasMarker(item)
			return !found
		})
		return found
	}
	return false
}
