package collection

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/ValentinKolb/dColl/lib/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNew(t *testing.T, policy Policy, entries store.Snapshot, opts ...Option) *Collection {
	t.Helper()
	c, err := New(policy, entries, opts...)
	require.NoError(t, err)
	return c
}

func strEntries(pairs ...any) store.Snapshot {
	var snap store.Snapshot
	for i := 0; i+1 < len(pairs); i += 2 {
		snap = append(snap, store.Entry{Key: store.StrKey(pairs[i].(string)), Value: pairs[i+1]})
	}
	return snap
}

// --------------------------------------------------------------------------
// Write operations
// --------------------------------------------------------------------------

func TestSetOverwritesInPlace(t *testing.T) {
	c := mustNew(t, PolicyArray, strEntries("a", 1, "b", 2))

	require.NoError(t, c.Set(store.StrKey("a"), 10))
	assert.Equal(t, strEntries("a", 10, "b", 2), c.ToSnapshot())
}

func TestAddCollisionMergesInOrder(t *testing.T) {
	c := mustNew(t, PolicyArray, nil)
	k := store.IntKey(0)

	require.NoError(t, c.Add(k, 1))
	require.NoError(t, c.Add(k, 2))
	require.NoError(t, c.Add(k, []any{3, 4}))

	assert.Equal(t, []any{1, 2, 3, 4}, c.Get(k, nil))
}

func TestRemoveReindexOnlyForSequentialKinds(t *testing.T) {
	arr := mustNew(t, PolicyArray, store.SnapshotOf("a", "b", "c"))
	removed, err := arr.RemoveReindex(store.IntKey(0))
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, []store.Key{store.IntKey(1), store.IntKey(2)}, arr.ToSnapshot().Keys())

	list := mustNew(t, PolicyList, store.SnapshotOf("a", "b", "c"))
	removed, err = list.RemoveReindex(store.IntKey(0))
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, store.SnapshotOf("b", "c"), list.ToSnapshot())

	removed, err = list.RemoveReindex(store.IntKey(7))
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestReplace(t *testing.T) {
	c := mustNew(t, PolicyList, store.SnapshotOf("a", "b", "a"))

	ok, err := c.ReplaceValue("a", "z", true)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, store.SnapshotOf("z", "b", "a"), c.ToSnapshot())

	ok, err = c.ReplaceValue("missing", "z", true)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.ReplaceKey(store.IntKey(1), "y")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.ReplaceKey(store.IntKey(5), "y")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, store.SnapshotOf("z", "y", "a"), c.ToSnapshot())
}

func TestValueValidatorIsCheckedBeforeMutation(t *testing.T) {
	positive := func(v any) error {
		if n, ok := v.(int); !ok || n <= 0 {
			return errors.New("not a positive int")
		}
		return nil
	}
	c := mustNew(t, PolicyList, store.SnapshotOf(1, 2), WithValueValidator(positive))

	err := c.Append(-1)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), "not a positive int")

	ok, err := c.ReplaceKey(store.IntKey(0), 0)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.False(t, ok)

	assert.Equal(t, store.SnapshotOf(1, 2), c.ToSnapshot())
}

func TestMutationsAreCounted(t *testing.T) {
	before := mutationsTotal.Get()
	c := mustNew(t, PolicyList, nil)
	require.NoError(t, c.Append("a"))
	require.NoError(t, c.Append("b"))
	assert.GreaterOrEqual(t, mutationsTotal.Get()-before, uint64(2))

	rejected := rejectedReadOnlyTotal.Get()
	c.Lock()
	assert.Error(t, c.Append("c"))
	assert.GreaterOrEqual(t, rejectedReadOnlyTotal.Get()-rejected, uint64(1))
}

// --------------------------------------------------------------------------
// Functional transforms
// --------------------------------------------------------------------------

func TestMapAndFilter(t *testing.T) {
	c := mustNew(t, PolicyMap, strEntries("a", 1, "b", nil, "c", 3))

	require.NoError(t, c.Filter(nil, true))
	assert.Equal(t, strEntries("a", 1, "c", 3), c.ToSnapshot())

	require.NoError(t, c.Map(func(k store.Key, v any) (any, error) {
		return k.String() + strings.Repeat("!", v.(int)), nil
	}, true))
	assert.Equal(t, strEntries("a", "a!", "c", "c!!!"), c.ToSnapshot())

	assert.ErrorIs(t, c.Map(nil, true), ErrInvalidArgument)
}

func TestDiscardingKeysFailsForMaps(t *testing.T) {
	c := mustNew(t, PolicyMap, strEntries("b", 2, "a", 1))

	assert.ErrorIs(t, c.Sort(nil, false), ErrInvalidKey)
	assert.Equal(t, strEntries("b", 2, "a", 1), c.ToSnapshot())

	require.NoError(t, c.Sort(nil, true))
	assert.Equal(t, strEntries("a", 1, "b", 2), c.ToSnapshot())
}

func TestCallbackErrorLeavesCollectionUnchanged(t *testing.T) {
	c := mustNew(t, PolicyList, store.SnapshotOf(1, 2, 3))
	boom := errors.New("boom")

	err := c.Map(func(_ store.Key, v any) (any, error) {
		if v == 3 {
			return nil, boom
		}
		return 0, nil
	}, false)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, store.SnapshotOf(1, 2, 3), c.ToSnapshot())
}

func TestSortModes(t *testing.T) {
	c := mustNew(t, PolicyList, store.SnapshotOf(10, 9, "2", 1))

	require.NoError(t, c.SortBy(SortNumeric, false, false))
	assert.Equal(t, store.SnapshotOf(1, "2", 9, 10), c.ToSnapshot())

	require.NoError(t, c.SortBy(SortString, false, false))
	assert.Equal(t, store.SnapshotOf(1, 10, "2", 9), c.ToSnapshot())

	require.NoError(t, c.SortBy(SortRegular, true, false))
	assert.Equal(t, store.SnapshotOf(10, 9, "2", 1), c.ToSnapshot())
}

func TestSortByKeyAndReverse(t *testing.T) {
	c := mustNew(t, PolicyArray, store.Snapshot{
		{Key: store.StrKey("b"), Value: 1},
		{Key: store.IntKey(3), Value: 2},
		{Key: store.StrKey("a"), Value: 3},
		{Key: store.IntKey(1), Value: 4},
	})

	require.NoError(t, c.SortByKey(nil))
	assert.Equal(t, []store.Key{store.IntKey(1), store.IntKey(3), store.StrKey("a"), store.StrKey("b")}, c.ToSnapshot().Keys())

	require.NoError(t, c.Reverse(true))
	assert.Equal(t, []any{1, 3, 2, 4}, c.ToSnapshot().Values())

	require.NoError(t, c.Reverse(false))
	assert.Equal(t, store.SnapshotOf(4, 2, 3, 1), c.ToSnapshot())
}

func TestSetTransformsDropDuplicates(t *testing.T) {
	c := mustNew(t, PolicySet, store.SnapshotOf(1, 2, 3))

	require.NoError(t, c.Map(func(_ store.Key, v any) (any, error) { return v.(int) % 2, nil }, false))
	assert.Equal(t, store.SnapshotOf(1, 0), c.ToSnapshot())
}

// --------------------------------------------------------------------------
// Aggregates and iteration
// --------------------------------------------------------------------------

func TestAggregatesSkipNonNumeric(t *testing.T) {
	c := mustNew(t, PolicyList, store.SnapshotOf(2, "3", "x", nil, []any{1}, true))

	assert.Equal(t, 6.0, c.Sum())
	assert.Equal(t, 6.0, c.Product(0))

	avg, ok := c.Average(3)
	assert.True(t, ok)
	assert.Equal(t, 2.0, avg)

	only := mustNew(t, PolicyList, store.SnapshotOf("x", nil))
	assert.Equal(t, 0.0, only.Product(2))
	_, ok = only.Average(2)
	assert.False(t, ok)
}

func TestProductPrecision(t *testing.T) {
	c := mustNew(t, PolicyList, store.SnapshotOf(1.111, 3))
	assert.Equal(t, 3.33, c.Product(2))
	assert.InDelta(t, 3.333, c.Product(-1), 1e-9)
}

func TestIterationYieldsCopies(t *testing.T) {
	c := mustNew(t, PolicyList, store.SnapshotOf([]any{1}))

	for _, v := range c.All() {
		v.([]any)[0] = 99
	}
	for v := range c.Values() {
		v.([]any)[0] = 98
	}
	assert.Equal(t, []any{1}, c.Get(store.IntKey(0), nil))

	keys := slices.Collect(c.Keys())
	assert.Equal(t, []store.Key{store.IntKey(0)}, keys)
}

func TestIterationStopsEarly(t *testing.T) {
	c := mustNew(t, PolicyList, store.SnapshotOf("a", "b", "c"))

	var seen []any
	for _, v := range c.Backward() {
		seen = append(seen, v)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []any{"c", "b"}, seen)
}

func TestReduceRightOnReadOnly(t *testing.T) {
	c := mustNew(t, PolicyList, store.SnapshotOf("a", "b"), WithReadOnly(true))

	got, err := c.ReduceRight("", func(acc any, k store.Key, v any) (any, error) {
		return acc.(string) + k.String() + v.(string), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "1b0a", got)
}

func TestCloneAndCopy(t *testing.T) {
	src := mustNew(t, PolicyArray, strEntries("a", []any{1}), WithReadOnly(true))
	clone := src.Clone()

	assert.False(t, clone.IsReadOnly())
	assert.Nil(t, clone.ReadOnly(nil))
	assert.Equal(t, src.ToSnapshot(), clone.ToSnapshot())

	dst := mustNew(t, PolicyArray, nil)
	require.NoError(t, src.CopyTo(dst))
	v, _ := dst.GetMutable(store.StrKey("a"))
	v.([]any)[0] = 2
	assert.Equal(t, []any{1}, src.Get(store.StrKey("a"), nil))

	// copying into a read-only collection fails
	assert.ErrorIs(t, clone.CopyTo(src), ErrReadOnly)
}
