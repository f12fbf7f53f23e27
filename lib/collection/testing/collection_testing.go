package testing

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/ValentinKolb/dColl/lib/collection"
	"github.com/ValentinKolb/dColl/lib/store"
)

// Factory creates a container of a fixed kind from a snapshot
type Factory func(entries store.Snapshot, opts ...collection.Option) (collection.ICollection, error)

// RunCollectionTests runs a comprehensive test suite for a container. All tests use
// keys valid for the kind of the container (string keys for maps, integers otherwise)
// and distinct values, so the suite applies to every kind.
func RunCollectionTests(t *testing.T, name string, factory Factory) {
	probe, err := factory(nil)
	if err != nil {
		t.Fatalf("Failed to create empty %s: %v", name, err)
	}
	kind := probe.Kind()

	t.Run(name, func(t *testing.T) {
		t.Run("Set&Get", func(t *testing.T) {
			testSetGet(t, kind, factory)
		})

		t.Run("HasVsHasKey", func(t *testing.T) {
			testHasVsHasKey(t, kind, factory)
		})

		t.Run("CopyOnReadAndWrite", func(t *testing.T) {
			testCopyOnReadAndWrite(t, kind, factory)
		})

		t.Run("ReadOnlyBlocksMutations", func(t *testing.T) {
			testReadOnlyBlocksMutations(t, kind, factory)
		})

		t.Run("ReadOnlyInitialisedOnce", func(t *testing.T) {
			testReadOnlyInitialisedOnce(t, kind, factory)
		})

		t.Run("InvalidKeyConstruction", func(t *testing.T) {
			testInvalidKeyConstruction(t, factory)
		})

		t.Run("SnapshotRoundTrip", func(t *testing.T) {
			testSnapshotRoundTrip(t, kind, factory)
		})

		t.Run("Iteration", func(t *testing.T) {
			testIteration(t, kind, factory)
		})

		t.Run("Search", func(t *testing.T) {
			testSearch(t, kind, factory)
		})

		t.Run("RemoveAndEmpty", func(t *testing.T) {
			testRemoveAndEmpty(t, kind, factory)
		})

		t.Run("Aggregates", func(t *testing.T) {
			testAggregates(t, kind, factory)
		})

		t.Run("Reduce", func(t *testing.T) {
			testReduce(t, kind, factory)
		})

		t.Run("Filter", func(t *testing.T) {
			testFilter(t, kind, factory)
		})

		t.Run("Clone", func(t *testing.T) {
			testClone(t, kind, factory)
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// keyFor returns the i-th key valid for the kind
func keyFor(kind collection.Kind, i int) store.Key {
	if kind == collection.KindMap {
		return store.StrKey(fmt.Sprintf("k%d", i))
	}
	return store.IntKey(i)
}

// snapshotFor creates a snapshot with kind specific keys for the values
func snapshotFor(kind collection.Kind, values ...any) store.Snapshot {
	snap := make(store.Snapshot, len(values))
	for i, v := range values {
		snap[i] = store.Entry{Key: keyFor(kind, i), Value: v}
	}
	return snap
}

func mustCreate(t *testing.T, factory Factory, entries store.Snapshot, opts ...collection.Option) collection.ICollection {
	t.Helper()
	c, err := factory(entries, opts...)
	if err != nil {
		t.Fatalf("Failed to create collection: %v", err)
	}
	return c
}

func expectSnapshot(t *testing.T, got, want store.Snapshot) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected %d entries %v, got %d entries %v", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i].Key != want[i].Key || !reflect.DeepEqual(got[i].Value, want[i].Value) {
			t.Errorf("Expected %v at position %d, got %v", want[i], i, got[i])
		}
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testSetGet(t *testing.T, kind collection.Kind, factory Factory) {
	c := mustCreate(t, factory, nil)
	k0, k1 := keyFor(kind, 0), keyFor(kind, 1)

	if err := c.Set(k0, "first"); err != nil {
		t.Fatalf("Failed to set value: %v", err)
	}
	if err := c.Set(k1, "second"); err != nil {
		t.Fatalf("Failed to set value: %v", err)
	}

	if got := c.Get(k0, nil); got != "first" {
		t.Errorf("Expected %q, got %v", "first", got)
	}
	if got := c.Get(keyFor(kind, 9), "default"); got != "default" {
		t.Errorf("Expected default for missing key, got %v", got)
	}

	// overwrite keeps the position
	if err := c.Set(k0, "updated"); err != nil {
		t.Fatalf("Failed to overwrite value: %v", err)
	}
	expectSnapshot(t, c.ToSnapshot(), store.Snapshot{{Key: k0, Value: "updated"}, {Key: k1, Value: "second"}})

	if c.Len() != 2 || c.IsEmpty() {
		t.Errorf("Expected 2 entries, got %d", c.Len())
	}
}

func testHasVsHasKey(t *testing.T, kind collection.Kind, factory Factory) {
	c := mustCreate(t, factory, snapshotFor(kind, nil, "x"))

	if !c.HasKey(keyFor(kind, 0)) {
		t.Error("Expected HasKey to report a key holding nil")
	}
	if c.Has(keyFor(kind, 0)) {
		t.Error("Expected Has to be false for a nil value")
	}
	if !c.Has(keyFor(kind, 1)) {
		t.Error("Expected Has to be true for a non-nil value")
	}
	if c.HasKey(keyFor(kind, 5)) || c.Has(keyFor(kind, 5)) {
		t.Error("Expected missing key to be reported absent")
	}
}

func testCopyOnReadAndWrite(t *testing.T, kind collection.Kind, factory Factory) {
	in := []any{1, 2}
	c := mustCreate(t, factory, snapshotFor(kind, in))
	in[0] = 100

	got, ok := c.Get(keyFor(kind, 0), nil).([]any)
	if !ok {
		t.Fatalf("Expected []any, got %T", c.Get(keyFor(kind, 0), nil))
	}
	if got[0] != 1 {
		t.Errorf("Expected value to be copied on construction, got %v", got)
	}

	got[1] = 200
	if again := c.Get(keyFor(kind, 0), nil).([]any); again[1] != 2 {
		t.Errorf("Expected value to be copied on read, got %v", again)
	}

	stored, _ := c.Base().GetMutable(keyFor(kind, 0))
	stored.([]any)[1] = 300
	if again := c.Get(keyFor(kind, 0), nil).([]any); again[1] != 300 {
		t.Errorf("Expected GetMutable to alias the stored value, got %v", again)
	}
}

func testReadOnlyBlocksMutations(t *testing.T, kind collection.Kind, factory Factory) {
	entries := snapshotFor(kind, "a", "b", "c")
	c := mustCreate(t, factory, entries, collection.WithReadOnly(true))

	if !c.IsReadOnly() {
		t.Fatal("Expected collection to be read-only")
	}

	k0 := keyFor(kind, 0)
	mutations := map[string]func() error{
		"Set":    func() error { return c.Set(k0, "x") },
		"Add":    func() error { return c.Add(keyFor(kind, 7), "x") },
		"Append": func() error { return c.Append("x") },
		"Remove":        func() error { _, err := c.Remove(k0); return err },
		"RemoveReindex": func() error { _, err := c.RemoveReindex(k0); return err },
		"ReplaceValue": func() error { _, err := c.ReplaceValue("a", "x", true); return err },
		"ReplaceKey":   func() error { _, err := c.ReplaceKey(k0, "x"); return err },
		"Empty":        c.Empty,
		"Map": func() error {
			return c.Map(func(_ store.Key, v any) (any, error) { return v, nil }, true)
		},
		"Filter":    func() error { return c.Filter(nil, true) },
		"Sort":      func() error { return c.Sort(nil, true) },
		"SortByKey": func() error { return c.SortByKey(nil) },
		"Reverse":   func() error { return c.Reverse(true) },
	}

	for name, mutate := range mutations {
		err := mutate()
		if !errors.Is(err, collection.ErrReadOnly) {
			t.Errorf("%s: expected read-only violation, got %v", name, err)
		}
	}

	expectSnapshot(t, c.ToSnapshot(), entries)

	// reading still works
	if v, err := c.Reduce(0, func(acc any, _ store.Key, _ any) (any, error) { return acc.(int) + 1, nil }); err != nil || v != 3 {
		t.Errorf("Expected reduce over 3 entries to return 3, got %v (%v)", v, err)
	}
}

func testReadOnlyInitialisedOnce(t *testing.T, kind collection.Kind, factory Factory) {
	c := mustCreate(t, factory, nil)
	if c.ReadOnly(nil) != nil {
		t.Fatal("Expected uninitialised read-only state")
	}

	yes, no := true, false
	if got := c.ReadOnly(&yes); got == nil || !*got {
		t.Fatalf("Expected first initialisation to win, got %v", got)
	}
	if got := c.ReadOnly(&no); got == nil || !*got {
		t.Errorf("Expected second initialisation to be ignored, got %v", got)
	}

	// unlocking first makes Lock a no-op
	w := mustCreate(t, factory, nil)
	w.Unlock()
	w.Lock()
	if w.IsReadOnly() {
		t.Error("Expected Lock after Unlock to have no effect")
	}
	if err := w.Set(keyFor(kind, 0), "ok"); err != nil {
		t.Errorf("Expected collection to be writable, got %v", err)
	}
}

func testInvalidKeyConstruction(t *testing.T, factory Factory) {
	// an empty string is invalid for every kind
	entries := store.Snapshot{{Key: store.IntKey(0), Value: "a"}, {Key: store.StrKey(""), Value: "b"}}
	c, err := factory(entries)
	if !errors.Is(err, collection.ErrInvalidKey) {
		t.Fatalf("Expected invalid key error, got %v", err)
	}
	if c != nil {
		t.Error("Expected no collection on failed construction")
	}
}

func testSnapshotRoundTrip(t *testing.T, kind collection.Kind, factory Factory) {
	c := mustCreate(t, factory, snapshotFor(kind, "a", 2, []any{"x", "y"}, map[string]any{"n": 1}))

	// a non-trivial order
	if err := c.Reverse(true); err != nil {
		t.Fatalf("Failed to reverse: %v", err)
	}

	snap := c.ToSnapshot()
	other := mustCreate(t, factory, snap)
	expectSnapshot(t, other.ToSnapshot(), snap)
}

func testIteration(t *testing.T, kind collection.Kind, factory Factory) {
	c := mustCreate(t, factory, snapshotFor(kind, "a", "b", "c"))

	var forward, backward []store.Key
	for k := range c.All() {
		forward = append(forward, k)
	}
	for k := range c.Backward() {
		backward = append(backward, k)
	}

	want := []store.Key{keyFor(kind, 0), keyFor(kind, 1), keyFor(kind, 2)}
	if !reflect.DeepEqual(forward, want) {
		t.Errorf("Expected forward order %v, got %v", want, forward)
	}
	if !reflect.DeepEqual(backward, []store.Key{want[2], want[1], want[0]}) {
		t.Errorf("Expected backward order, got %v", backward)
	}

	// every range loop is a fresh pass
	for i := 0; i < 2; i++ {
		n := 0
		for range c.Values() {
			n++
		}
		if n != 3 {
			t.Errorf("Pass %d: expected 3 values, got %d", i, n)
		}
	}

	first, _ := c.First()
	last, _ := c.Last()
	fk, _ := c.FirstKey()
	lk, _ := c.LastKey()
	if first != "a" || last != "c" || fk != want[0] || lk != want[2] {
		t.Errorf("Unexpected first/last: %v %v %v %v", first, last, fk, lk)
	}
}

func testSearch(t *testing.T, kind collection.Kind, factory Factory) {
	c := mustCreate(t, factory, snapshotFor(kind, 1, "two", 1.0))

	if k, ok := c.Search(1, true, false); !ok || k != keyFor(kind, 0) {
		t.Errorf("Expected strict search to find key %v, got %v", keyFor(kind, 0), k)
	}
	if k, ok := c.Search(1, false, true); !ok || k != keyFor(kind, 2) {
		t.Errorf("Expected loose search from end to find key %v, got %v", keyFor(kind, 2), k)
	}
	if !c.HasValue("1", false) {
		t.Error("Expected loose equality between 1 and \"1\"")
	}
	if c.HasValue("1", true) {
		t.Error("Expected strict equality to distinguish 1 and \"1\"")
	}
	if _, ok := c.Search("three", false, false); ok {
		t.Error("Expected missing value not to be found")
	}
}

func testRemoveAndEmpty(t *testing.T, kind collection.Kind, factory Factory) {
	c := mustCreate(t, factory, snapshotFor(kind, "a", "b"))

	removed, err := c.Remove(keyFor(kind, 0))
	if err != nil || !removed {
		t.Fatalf("Expected key to be removed, got %v (%v)", removed, err)
	}
	removed, err = c.Remove(keyFor(kind, 0))
	if err != nil || removed {
		t.Errorf("Expected second remove to report false, got %v (%v)", removed, err)
	}

	if err := c.Empty(); err != nil {
		t.Fatalf("Failed to empty: %v", err)
	}
	if !c.IsEmpty() {
		t.Errorf("Expected empty collection, got %d entries", c.Len())
	}
}

func testAggregates(t *testing.T, kind collection.Kind, factory Factory) {
	empty := mustCreate(t, factory, nil)
	if empty.Sum() != 0 || empty.Product(-1) != 0 {
		t.Error("Expected sum and product of an empty collection to be 0")
	}
	if _, ok := empty.Average(2); ok {
		t.Error("Expected no average for an empty collection")
	}
	if _, ok := empty.Min(); ok {
		t.Error("Expected no minimum for an empty collection")
	}

	c := mustCreate(t, factory, snapshotFor(kind, 3, "x", 1, 2.5))
	if c.Sum() != 6.5 {
		t.Errorf("Expected sum 6.5, got %v", c.Sum())
	}
	if c.Product(-1) != 7.5 {
		t.Errorf("Expected product 7.5, got %v", c.Product(-1))
	}
	if avg, ok := c.Average(2); !ok || avg != 2.17 {
		t.Errorf("Expected average 2.17, got %v", avg)
	}
	if lo, _ := c.Min(); lo != 1 {
		t.Errorf("Expected min 1, got %v", lo)
	}
	if hi, _ := c.Max(); hi != "x" {
		t.Errorf("Expected max \"x\" (strings sort after numbers), got %v", hi)
	}
}

func testReduce(t *testing.T, kind collection.Kind, factory Factory) {
	c := mustCreate(t, factory, snapshotFor(kind, "a", "b", "c"))
	concat := func(acc any, _ store.Key, v any) (any, error) { return acc.(string) + v.(string), nil }

	if got, err := c.Reduce("", concat); err != nil || got != "abc" {
		t.Errorf("Expected \"abc\", got %v (%v)", got, err)
	}
	if got, err := c.ReduceRight("", concat); err != nil || got != "cba" {
		t.Errorf("Expected \"cba\", got %v (%v)", got, err)
	}
	if _, err := c.Reduce("", nil); !errors.Is(err, collection.ErrInvalidArgument) {
		t.Errorf("Expected invalid argument for nil callback, got %v", err)
	}
}

func testFilter(t *testing.T, kind collection.Kind, factory Factory) {
	c := mustCreate(t, factory, snapshotFor(kind, 1, 2, 3, 4))

	err := c.Filter(func(_ store.Key, v any) bool { return v.(int)%2 == 0 }, true)
	if err != nil {
		t.Fatalf("Failed to filter: %v", err)
	}
	expectSnapshot(t, c.ToSnapshot(), store.Snapshot{
		{Key: keyFor(kind, 1), Value: 2},
		{Key: keyFor(kind, 3), Value: 4},
	})
}

func testClone(t *testing.T, kind collection.Kind, factory Factory) {
	c := mustCreate(t, factory, snapshotFor(kind, "a"), collection.WithReadOnly(true))
	clone := c.Base().Clone()

	if clone.IsReadOnly() {
		t.Error("Expected clone to be writable")
	}
	if err := clone.Set(keyFor(kind, 0), "changed"); err != nil {
		t.Fatalf("Failed to set on clone: %v", err)
	}
	if got := c.Get(keyFor(kind, 0), nil); got != "a" {
		t.Errorf("Expected original to be unchanged, got %v", got)
	}
}
