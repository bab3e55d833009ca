package flatten

import (
	"testing"

	"github.com/Velocidex/ordereddict"
	"github.com/stretchr/testify/assert"
)

func TestFlatten_NestedObjectsAndArrays(t *testing.T) {
	doc := ordereddict.NewDict().
		Set("a", ordereddict.NewDict().Set("b", 1)).
		Set("c", []any{2, 3})

	flat := Flatten(doc, Options{})

	assert.Equal(t, []string{"a.b", "c.0", "c.1"}, flat.Keys())
	v, ok := flat.Get("a.b")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	v, _ = flat.Get("c.1")
	assert.Equal(t, 3, v)
}

func TestFlatten_DeepArrayPath(t *testing.T) {
	doc := map[string]any{
		"a": map[string]any{
			"b": []any{map[string]any{"c": "x"}},
		},
	}
	assert.Equal(t, []string{"a.b.0.c"}, Keys(doc, Options{}))
}

func TestFlatten_MapKeysSorted(t *testing.T) {
	doc := map[string]any{"z": 1, "m": 2, "a": 3}
	assert.Equal(t, []string{"a", "m", "z"}, Keys(doc, Options{}))
}

func TestFlatten_EmptyContainersAreLeaves(t *testing.T) {
	doc := ordereddict.NewDict().
		Set("obj", ordereddict.NewDict()).
		Set("arr", []any{})
	assert.Equal(t, []string{"obj", "arr"}, Keys(doc, Options{}))
}

func TestFlatten_Options(t *testing.T) {
	doc := map[string]any{"a": map[string]any{"b": map[string]any{"c": 1}}}

	assert.Equal(t, []string{"a_b_c"}, Keys(doc, Options{Delimiter: "_"}))

	flat := Flatten(doc, Options{MaxDepth: 2})
	assert.Equal(t, []string{"a.b"}, flat.Keys())
	v, _ := flat.Get("a.b")
	assert.Equal(t, map[string]any{"c": 1}, v)
}

func TestFlatten_SelfReferenceTerminates(t *testing.T) {
	doc := map[string]any{"name": "loop"}
	doc["self"] = doc

	flat := Flatten(doc, Options{})

	assert.Equal(t, []string{"name", "self"}, flat.Keys())
	v, _ := flat.Get("self")
	assert.Equal(t, Circular, v)
}

func TestFlatten_SharedButAcyclicIsVisitedTwice(t *testing.T) {
	shared := map[string]any{"v": 1}
	doc := map[string]any{"left": shared, "right": shared}

	assert.Equal(t, []string{"left.v", "right.v"}, Keys(doc, Options{}))
}

func TestFlatten_ScalarDocument(t *testing.T) {
	assert.Equal(t, 0, Flatten("plain", Options{}).Len())
}
