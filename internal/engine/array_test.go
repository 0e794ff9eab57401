package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunoga/profile/internal/core"
	"github.com/brunoga/profile/value"
)

func TestArrayAdd_KeepsDuplicates(t *testing.T) {
	doc, changes := run(t, `{"tags":["a"]}`, `{"tags":["a"]}`, ArrayAdd)

	requireDoc(t, `{"tags":["a","a"]}`, doc)
	require.Len(t, changes, 1)
	requireChange(t, changes, "tags", jv(t, `["a"]`), jv(t, `["a","a"]`))
}

func TestArrayAdd_OnlyStrings(t *testing.T) {
	doc, changes := run(t, `{"tags":["a"]}`, `{"tags":["b",1,{"x":1},null]}`, ArrayAdd)
	requireDoc(t, `{"tags":["a","b"]}`, doc)
	requireChange(t, changes, "tags", jv(t, `["a"]`), jv(t, `["a","b"]`))

	doc, changes = run(t, `{"tags":["a"]}`, `{"tags":[1,2]}`, ArrayAdd)
	requireDoc(t, `{"tags":["a"]}`, doc)
	assert.Empty(t, changes)
}

func TestArrayAdd_ChangeDoesNotAliasDocument(t *testing.T) {
	doc, changes := run(t, `{"tags":["a"]}`, `{"tags":["b"]}`, ArrayAdd)

	tags, _ := doc.Get("tags")
	tags.(*value.Array).Append(value.String("c"))

	requireChange(t, changes, "tags", jv(t, `["a"]`), jv(t, `["a","b"]`))
}

func TestArrayRemove(t *testing.T) {
	doc, changes := run(t, `{"tags":["a","b","a",1]}`, `{"tags":["a",1]}`, ArrayRemove)

	// Only string elements of the patch are matched.
	requireDoc(t, `{"tags":["b",1]}`, doc)
	require.Len(t, changes, 1)
	requireChange(t, changes, "tags", jv(t, `["a","b","a",1]`), jv(t, `["b",1]`))
}

func TestArrayRemove_NothingMatches(t *testing.T) {
	doc, changes := run(t, `{"tags":["a","b"]}`, `{"tags":["z"]}`, ArrayRemove)
	requireDoc(t, `{"tags":["a","b"]}`, doc)
	assert.Empty(t, changes)
}

func TestArrayUpdate(t *testing.T) {
	doc, changes := run(t, `{"tags":["a"]}`, `{"tags":["b","c"]}`, Update)
	requireDoc(t, `{"tags":["b","c"]}`, doc)
	requireChange(t, changes, "tags", jv(t, `["a"]`), jv(t, `["b","c"]`))

	doc, changes = run(t, `{"tags":["a",{"k":1}]}`, `{"tags":["a",{"k":1}]}`, Update)
	requireDoc(t, `{"tags":["a",{"k":1}]}`, doc)
	assert.Empty(t, changes)
}

func TestArray_EmptyPatchIsNoop(t *testing.T) {
	for _, op := range []Operation{Update, ArrayAdd, ArrayRemove, Get, Increment, Decrement} {
		t.Run(op.String(), func(t *testing.T) {
			doc, changes := run(t, `{"tags":["a"]}`, `{"tags":[]}`, op)
			requireDoc(t, `{"tags":["a"]}`, doc)
			assert.Empty(t, changes)
		})
	}
}

func TestArrayGet(t *testing.T) {
	const original = `{"items":[{"id":1,"name":"x"},5,"s"]}`
	doc, changes := run(t, original, `{"items":[{"name":""},0,0,0]}`, Get)

	requireDoc(t, original, doc)
	require.Len(t, changes, 3)
	requireChange(t, changes, "items[0].name", jv(t, `"x"`), value.MarkerGet)
	requireChange(t, changes, "items[1]", jv(t, "5"), value.MarkerGet)
	requireChange(t, changes, "items[2]", jv(t, `"s"`), value.MarkerGet)
	assert.NotContains(t, changes, "items[3]")
}

func TestArrayGet_ElementObjectWithLeafPatch(t *testing.T) {
	doc, changes := run(t, `{"items":[{"id":1}]}`, `{"items":[0]}`, Get)
	requireDoc(t, `{"items":[{"id":1}]}`, doc)
	requireChange(t, changes, "items[0]", jv(t, `{"id":1}`), value.MarkerGet)
}

func TestArrayIncrement_Numbers(t *testing.T) {
	doc, changes := run(t, `{"scores":[1,2.5,10]}`, `{"scores":[1,1,0]}`, Increment)

	requireDoc(t, `{"scores":[2,3.5,10]}`, doc)
	require.Len(t, changes, 1)
	requireChange(t, changes, "scores", jv(t, `[1,2.5,10]`), jv(t, `[2,3.5,10]`))
}

func TestArrayIncrement_Objects(t *testing.T) {
	doc, changes := run(t,
		`{"items":[{"qty":1,"name":"a"},{"qty":5}]}`,
		`{"items":[{"qty":2,"fresh":1},{"qty":0}]}`,
		Increment)

	requireDoc(t, `{"items":[{"qty":3,"name":"a","fresh":1},{"qty":5}]}`, doc)
	// Nested changes are folded into one whole-array change.
	require.Len(t, changes, 1)
	requireChange(t, changes, "items",
		jv(t, `[{"qty":1,"name":"a"},{"qty":5}]`),
		jv(t, `[{"qty":3,"name":"a","fresh":1},{"qty":5}]`))
}

func TestArrayDecrement_PairsUpToShorter(t *testing.T) {
	doc, changes := run(t, `{"v":[10]}`, `{"v":[1,2,3]}`, Decrement)
	requireDoc(t, `{"v":[9]}`, doc)
	requireChange(t, changes, "v", jv(t, "[10]"), jv(t, "[9]"))

	doc, changes = run(t, `{"v":[10,20,"x"]}`, `{"v":[1]}`, Decrement)
	requireDoc(t, `{"v":[9,20,"x"]}`, doc)
	require.Len(t, changes, 1)
}

func TestArrayIncrement_NothingChanges(t *testing.T) {
	doc, changes := run(t, `{"v":[1,"a",{"n":1}]}`, `{"v":[0,1,{"n":0}]}`, Increment)
	requireDoc(t, `{"v":[1,"a",{"n":1}]}`, doc)
	assert.Empty(t, changes)
}

func TestArrayIncrement_BeforeSnapshot(t *testing.T) {
	doc := value.MustParseObject(`{"items":[{"qty":1}]}`)
	items, _ := doc.Get("items")
	changes := Traverse(doc, value.MustParsePatch(`{"items":[{"qty":1}]}`), Increment, nil)

	change := changes["items"]
	require.NotNil(t, change.Old)
	assert.NotSame(t, items, change.Old)
	assert.True(t, core.Equal(jv(t, `[{"qty":1}]`), change.Old))
	assert.True(t, core.Equal(items, change.New))
	assert.NotSame(t, items, change.New)
}
