package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	assert.Equal(t, IntKey(42), ParseKey("42"))
	assert.Equal(t, IntKey(-7), ParseKey("-7"))
	assert.Equal(t, IntKey(0), ParseKey("0"))
	assert.Equal(t, StrKey("007"), ParseKey("007"))
	assert.Equal(t, StrKey("+1"), ParseKey("+1"))
	assert.Equal(t, StrKey("name"), ParseKey("name"))
	assert.Equal(t, StrKey(""), ParseKey(""))
}

func TestKeyOf(t *testing.T) {
	for _, v := range []any{3, int8(3), int64(3), uint32(3), 3.0, json.Number("3")} {
		k, err := KeyOf(v)
		require.NoError(t, err, "%T", v)
		assert.Equal(t, IntKey(3), k, "%T", v)
	}

	k, err := KeyOf("3")
	require.NoError(t, err)
	assert.Equal(t, StrKey("3"), k)

	for _, v := range []any{3.5, json.Number("1.5"), true, nil} {
		_, err := KeyOf(v)
		assert.Error(t, err, "%v", v)
	}
}

func TestKeyAccessors(t *testing.T) {
	i, s := IntKey(1), StrKey("1")

	assert.NotEqual(t, i, s)
	assert.Equal(t, i.String(), s.String())
	assert.Equal(t, `"1"`, s.GoString())
	assert.Equal(t, "1", i.GoString())

	n, ok := i.Int()
	assert.True(t, ok)
	assert.Equal(t, 1, n)
	_, ok = i.Str()
	assert.False(t, ok)

	assert.Equal(t, 1, i.Any())
	assert.Equal(t, "1", s.Any())
	assert.Equal(t, IntKey(0), Key{})
}

func TestCompareKeys(t *testing.T) {
	assert.Equal(t, -1, CompareKeys(IntKey(1), IntKey(2)))
	assert.Equal(t, -1, CompareKeys(IntKey(100), StrKey("a")))
	assert.Equal(t, 1, CompareKeys(StrKey("b"), StrKey("a")))
	assert.Equal(t, 0, CompareKeys(StrKey("a"), StrKey("a")))
}

func TestSnapshot(t *testing.T) {
	snap := SnapshotOf("a", "b")
	assert.True(t, snap.IsSequential())
	assert.Equal(t, []Key{IntKey(0), IntKey(1)}, snap.Keys())
	assert.Equal(t, []any{"a", "b"}, snap.Values())

	snap[0].Key = StrKey("x")
	assert.False(t, snap.IsSequential())
	assert.True(t, Snapshot(nil).IsSequential())
}
