package profile

import (
	"github.com/brunoga/profile/internal/core"
	"github.com/brunoga/profile/value"
)

// Equal reports whether a and b are the same JSON tree. Object key order is
// ignored and numbers only equal numbers of the same variant, so Int(1) and
// Long(1) differ.
func Equal(a, b value.Value) bool {
	return core.Equal(a, b)
}
