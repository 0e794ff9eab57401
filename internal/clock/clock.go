// Package clock stamps batches of profile changes with hybrid logical clock
// readings so batches flushed by different writers can be ordered.
package clock

import (
	"cmp"
	"fmt"
	"sync"
	"time"
)

// Stamp is one reading of a hybrid logical clock.
type Stamp struct {
	Wall    int64  `json:"wall"`
	Logical int32  `json:"logical"`
	Node    string `json:"node"`
}

// Compare orders stamps by wall time, then logical counter, then node.
func (s Stamp) Compare(other Stamp) int {
	if c := cmp.Compare(s.Wall, other.Wall); c != 0 {
		return c
	}
	if c := cmp.Compare(s.Logical, other.Logical); c != 0 {
		return c
	}
	return cmp.Compare(s.Node, other.Node)
}

// After reports whether s is strictly later than other.
func (s Stamp) After(other Stamp) bool {
	return s.Compare(other) > 0
}

// IsZero reports whether s was never issued by a clock.
func (s Stamp) IsZero() bool {
	return s == Stamp{}
}

func (s Stamp) String() string {
	return fmt.Sprintf("%d.%d@%s", s.Wall, s.Logical, s.Node)
}

// Clock issues strictly increasing stamps for one node.
type Clock struct {
	mu   sync.Mutex
	last Stamp
	now  func() int64
}

// New returns a clock for node reading the system time.
func New(node string) *Clock {
	return &Clock{
		last: Stamp{Node: node},
		now:  func() int64 { return time.Now().UnixNano() },
	}
}

// Now returns a stamp later than every stamp issued or observed so far.
func (c *Clock) Now() Stamp {
	c.mu.Lock()
	defer c.mu.Unlock()

	if wall := c.now(); wall > c.last.Wall {
		c.last.Wall = wall
		c.last.Logical = 0
	} else {
		c.last.Logical++
	}
	return c.last
}

// Observe merges a stamp received from another node, so that the next stamp
// issued here is later than it.
func (c *Clock) Observe(remote Stamp) {
	c.mu.Lock()
	defer c.mu.Unlock()

	wall := max(c.now(), c.last.Wall, remote.Wall)
	var logical int32
	switch {
	case wall == c.last.Wall && wall == remote.Wall:
		logical = max(c.last.Logical, remote.Logical) + 1
	case wall == c.last.Wall:
		logical = c.last.Logical + 1
	case wall == remote.Wall:
		logical = remote.Logical + 1
	}
	c.last.Wall = wall
	c.last.Logical = logical
}
