package engine

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/brunoga/profile/internal/core"
	"github.com/brunoga/profile/value"
)

// Change is the before and after state of one path. A nil Old marks an
// addition and a nil New marks a removal. A New of value.MarkerGet marks a
// read.
type Change struct {
	Old value.Value
	New value.Value
}

func (c Change) String() string {
	return fmt.Sprintf("%s -> %s", describe(c.Old), describe(c.New))
}

func describe(v value.Value) string {
	if v == nil {
		return "<absent>"
	}
	return v.String()
}

// ChangeSet maps dot-notation paths to the change recorded there.
type ChangeSet map[string]Change

// Paths returns the recorded paths in sorted order.
func (c ChangeSet) Paths() []string {
	paths := maps.Keys(c)
	slices.Sort(paths)
	return paths
}

// Walk calls fn for every change in path order. It stops at the first error
// fn returns and returns it.
func (c ChangeSet) Walk(fn func(path string, old, new value.Value) error) error {
	for _, path := range c.Paths() {
		change := c[path]
		if err := fn(path, change.Old, change.New); err != nil {
			return err
		}
	}
	return nil
}

func (c ChangeSet) String() string {
	var b strings.Builder
	for _, path := range c.Paths() {
		fmt.Fprintf(&b, "%s: %s\n", path, c[path])
	}
	return b.String()
}

// MarshalJSON encodes the change-set as
// {"path":{"oldValue":...,"newValue":...}}, omitting absent sides. Paths are
// written in sorted order.
func (c ChangeSet) MarshalJSON() ([]byte, error) {
	return value.Marshal(c.Object())
}

// Object returns the change-set as a document, in the layout MarshalJSON
// writes.
func (c ChangeSet) Object() *value.Object {
	out := value.NewObject()
	for _, path := range c.Paths() {
		change := c[path]
		entry := value.NewObject()
		if change.Old != nil {
			entry.Set("oldValue", value.Clone(change.Old))
		}
		if change.New != nil {
			entry.Set("newValue", value.Clone(change.New))
		}
		out.Set(path, entry)
	}
	return out
}

// Equal reports whether c and other hold the same paths with equal changes.
func (c ChangeSet) Equal(other ChangeSet) bool {
	if len(c) != len(other) {
		return false
	}
	for path, change := range c {
		o, ok := other[path]
		if !ok || !core.Equal(change.Old, o.Old) || !core.Equal(change.New, o.New) {
			return false
		}
	}
	return true
}

// The record helpers store the values they are given. Callers pass values the
// document no longer references: detached old values, or clones.

func (c ChangeSet) record(path string, old, new value.Value) {
	c[path] = Change{Old: old, New: new}
}

func (c ChangeSet) recordAddition(path string, v value.Value) {
	c.record(path, nil, v)
}

// recordDeletion records v as removed. Objects are never recorded as a whole:
// each leaf inside is recorded at its full path instead.
func (c ChangeSet) recordDeletion(path string, v value.Value) {
	if _, ok := v.(*value.Object); ok {
		c.recordAllLeafDeletions(path, v)
		return
	}
	c.record(path, v, nil)
}

// recordAllLeafValues records every leaf of a newly added subtree. Arrays
// and empty objects count as leaves.
func (c ChangeSet) recordAllLeafValues(path string, v value.Value) {
	obj, ok := v.(*value.Object)
	if !ok || obj.Len() == 0 {
		c.recordAddition(path, v)
		return
	}
	obj.Range(func(key string, item value.Value) bool {
		c.recordAllLeafValues(core.BuildPath(path, key), item)
		return true
	})
}

// recordAllLeafDeletions records every leaf of a removed subtree. Empty
// objects count as leaves.
func (c ChangeSet) recordAllLeafDeletions(path string, v value.Value) {
	obj, ok := v.(*value.Object)
	if !ok || obj.Len() == 0 {
		c.record(path, v, nil)
		return
	}
	obj.Range(func(key string, item value.Value) bool {
		c.recordAllLeafDeletions(core.BuildPath(path, key), item)
		return true
	})
}
