package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneValueDeepCopies(t *testing.T) {
	orig := map[string]any{"list": []any{1, map[string]any{"x": 1}}, "n": 1}
	clone := CloneValue(orig).(map[string]any)

	clone["list"].([]any)[1].(map[string]any)["x"] = 2
	clone["n"] = 5

	assert.Equal(t, 1, orig["list"].([]any)[1].(map[string]any)["x"])
	assert.Equal(t, 1, orig["n"])

	ints := []int{1, 2}
	cloned := CloneValue(ints).([]int)
	cloned[0] = 9
	assert.Equal(t, 1, ints[0])

	assert.Nil(t, CloneValue(nil))
	assert.Equal(t, "s", CloneValue("s"))
}

func TestStrictEqual(t *testing.T) {
	assert.True(t, StrictEqual(1, 1))
	assert.False(t, StrictEqual(1, 1.0))
	assert.False(t, StrictEqual(1, "1"))
	assert.True(t, StrictEqual([]any{1, "a"}, []any{1, "a"}))
	assert.False(t, StrictEqual([]any{1}, []int{1}))
	assert.True(t, StrictEqual(nil, nil))
	assert.False(t, StrictEqual(nil, 0))
}

func TestLooseEqual(t *testing.T) {
	equal := [][2]any{
		{1, 1.0},
		{1, "1"},
		{"1.5", 1.5},
		{nil, false},
		{nil, ""},
		{nil, 0},
		{true, 1},
		{true, "yes"},
		{false, "0"},
		{"abc", "abc"},
	}
	for _, pair := range equal {
		assert.True(t, LooseEqual(pair[0], pair[1]), "%v == %v", pair[0], pair[1])
		assert.True(t, LooseEqual(pair[1], pair[0]), "%v == %v", pair[1], pair[0])
	}

	different := [][2]any{
		{1, 2},
		{1, "one"},
		{"a", "b"},
		{nil, "x"},
		{true, 0},
	}
	for _, pair := range different {
		assert.False(t, LooseEqual(pair[0], pair[1]), "%v != %v", pair[0], pair[1])
	}
}

func TestMergeFlattensOneLevel(t *testing.T) {
	assert.Equal(t, []any{1, 2}, merge(1, 2))
	assert.Equal(t, []any{1, 2, 3}, merge([]any{1, 2}, 3))
	assert.Equal(t, []any{1, []any{2}}, merge(1, []any{[]any{2}}))
	assert.Equal(t, []any{"a", "b", "c"}, merge([]string{"a", "b"}, "c"))
}

func TestCompareModes(t *testing.T) {
	assert.Equal(t, -1, Compare(2, 10))
	assert.Equal(t, 1, CompareWith(SortString)(2, 10))
	assert.Equal(t, 0, CompareWith(SortNumeric)("3", 3.0))
	assert.Equal(t, -1, Compare(nil, 0))
	assert.Equal(t, -1, Compare(9, "a"))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 3.14, round(3.14159, 2))
	assert.Equal(t, 3.0, round(3.4, 0))
	assert.Equal(t, 3.14159, round(3.14159, -1))
}
