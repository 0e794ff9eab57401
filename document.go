package profile

import (
	"sync"

	"github.com/brunoga/profile/internal/clock"
	"github.com/brunoga/profile/value"
)

// Stamp orders batches flushed by different writers.
type Stamp = clock.Stamp

// Batch is the net effect of every traversal applied to a Profile between
// two flushes.
type Batch struct {
	Changes ChangeSet `json:"changes"`
	Stamp   Stamp     `json:"stamp"`
}

// Profile guards one long-lived document. Traversals on the same Profile run
// one at a time and their change-sets accumulate until Flush.
type Profile struct {
	mu      sync.Mutex
	doc     *value.Object
	pending ChangeSet
	opts    []Option
	clock   *clock.Clock
}

// New wraps doc. The Profile takes ownership of doc; callers read it through
// Snapshot.
func New(doc *value.Object, opts ...Option) *Profile {
	if doc == nil {
		doc = value.NewObject()
	}
	return &Profile{
		doc:     doc,
		pending: make(ChangeSet),
		opts:    opts,
		clock:   clock.New(newConfig(opts).node),
	}
}

// Apply traverses the document with source under op and returns the changes
// of this traversal alone. Except for GET, they are also folded into the
// pending batch.
func (p *Profile) Apply(source *value.Object, op Operation) (ChangeSet, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	res, err := Traverse(p.doc, source, op, p.opts...)
	if err != nil {
		return nil, err
	}
	if op != Get {
		p.pending = Merge(p.pending, res.Changes)
	}
	return res.Changes, nil
}

// Snapshot returns a deep copy of the current document.
func (p *Profile) Snapshot() *value.Object {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc.Clone()
}

// Pending returns a copy of the changes accumulated since the last Flush.
func (p *Profile) Pending() ChangeSet {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Merge(nil, p.pending)
}

// Flush returns the pending changes stamped with the Profile's clock and
// starts a new batch. An empty batch is returned unstamped.
func (p *Profile) Flush() Batch {
	p.mu.Lock()
	defer p.mu.Unlock()

	batch := Batch{Changes: p.pending}
	if len(p.pending) > 0 {
		batch.Stamp = p.clock.Now()
	}
	p.pending = make(ChangeSet)
	return batch
}

// Observe records a batch stamp seen from another writer, so that batches
// flushed here afterwards order after it.
func (p *Profile) Observe(s Stamp) {
	p.clock.Observe(s)
}
