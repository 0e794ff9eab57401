package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/brunoga/profile/internal/core"
	"github.com/brunoga/profile/value"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// run parses target and patch, traverses them under op and returns the
// mutated target with the recorded changes.
func run(t *testing.T, target, patch string, op Operation) (*value.Object, ChangeSet) {
	t.Helper()
	doc, err := value.ParseObject([]byte(target))
	require.NoError(t, err)
	src, err := value.ParsePatch([]byte(patch))
	require.NoError(t, err)
	return doc, Traverse(doc, src, op, nil)
}

// jv parses a JSON fragment. An empty string stands for an absent value.
func jv(t *testing.T, s string) value.Value {
	t.Helper()
	if s == "" {
		return nil
	}
	obj, err := value.ParseObject([]byte(`{"v":` + s + `}`))
	require.NoError(t, err)
	v, _ := obj.Get("v")
	return v
}

func requireDoc(t *testing.T, want string, got *value.Object) {
	t.Helper()
	require.True(t, core.Equal(value.MustParseObject(want), got), "document is %s, want %s", got, want)
}

func requireChange(t *testing.T, changes ChangeSet, path string, old, new value.Value) {
	t.Helper()
	got, ok := changes[path]
	require.True(t, ok, "no change recorded at %q in\n%s", path, changes)
	require.True(t, core.Equal(old, got.Old), "old value at %q is %s, want %s", path, describe(got.Old), describe(old))
	require.True(t, core.Equal(new, got.New), "new value at %q is %s, want %s", path, describe(got.New), describe(new))
}
