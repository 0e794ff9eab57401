// Package profile applies patch documents to JSON profile documents.
//
// A traversal walks a patch key by key and applies one Operation to the
// matching parts of a profile: values are replaced, added to, subtracted
// from, deleted, read, or treated as string sets. The profile is mutated in
// place and every effect is recorded in a ChangeSet keyed by dot-notation
// path, which callers forward to whatever keeps replicas in sync.
package profile

import (
	"errors"
	"fmt"

	"github.com/brunoga/profile/internal/engine"
	"github.com/brunoga/profile/value"
)

// Operation selects how a patch is applied.
type Operation = engine.Operation

const (
	Update      = engine.Update
	Increment   = engine.Increment
	Decrement   = engine.Decrement
	Delete      = engine.Delete
	ArrayAdd    = engine.ArrayAdd
	ArrayRemove = engine.ArrayRemove
	Get         = engine.Get
)

// Change is the old and new value recorded at one path. Nil means absent.
type Change = engine.Change

// ChangeSet maps dot-notation paths such as "a.b" or "items[2].name" to the
// change recorded there.
type ChangeSet = engine.ChangeSet

var (
	// ErrNilDocument is returned when the target or the patch is nil.
	ErrNilDocument = errors.New("profile: nil document")
	// ErrUnknownOperation is returned for an Operation outside the defined set.
	ErrUnknownOperation = engine.ErrUnknownOperation
)

// ParseOperation returns the operation with the given name, ignoring case.
func ParseOperation(s string) (Operation, error) {
	return engine.ParseOperation(s)
}

// Result is the outcome of a traversal.
type Result struct {
	// Target is the document that was traversed. It has been mutated in
	// place.
	Target *value.Object
	// Changes holds everything the traversal did, or read for a GET. It
	// shares no containers with Target or the patch.
	Changes ChangeSet
}

// Traverse applies source to target under op.
//
// target is mutated in place and source is only read. Values that cannot be
// applied (a DELETE aimed at an object, an INCREMENT of a string) are skipped
// and logged at debug level, never reported as errors. The only errors are a
// nil document and an unknown operation, both detected before anything is
// touched.
func Traverse(target, source *value.Object, op Operation, opts ...Option) (Result, error) {
	if target == nil || source == nil {
		return Result{}, ErrNilDocument
	}
	if !op.Valid() {
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownOperation, int(op))
	}
	if source == target {
		source = source.Clone()
	}

	cfg := newConfig(opts)
	changes := engine.Traverse(target, source, op, cfg.logger)
	return Result{Target: target, Changes: changes}, nil
}
