package testing

import (
	"fmt"
	"testing"

	"github.com/ValentinKolb/dColl/lib/store"
)

// RunStoreTests runs a comprehensive test suite for an IStore implementation.
func RunStoreTests(t *testing.T, name string, factory store.StoreFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Set&Get", func(t *testing.T) {
			testSetGet(t, factory())
		})

		t.Run("Has", func(t *testing.T) {
			testHas(t, factory())
		})

		t.Run("Delete", func(t *testing.T) {
			testDelete(t, factory())
		})

		t.Run("Order", func(t *testing.T) {
			testOrder(t, factory())
		})

		t.Run("Backward", func(t *testing.T) {
			testBackward(t, factory())
		})

		t.Run("FirstLast", func(t *testing.T) {
			testFirstLast(t, factory())
		})

		t.Run("Restartable", func(t *testing.T) {
			testRestartable(t, factory())
		})

		t.Run("DeleteDuringIteration", func(t *testing.T) {
			testDeleteDuringIteration(t, factory())
		})

		t.Run("Replace", func(t *testing.T) {
			testReplace(t, factory())
		})

		t.Run("KeyTypes", func(t *testing.T) {
			testKeyTypes(t, factory())
		})

		t.Run("RealisticUsage", func(t *testing.T) {
			testRealisticUsage(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// collect ranges over the sequence and returns the visited keys
func collectKeys(seq func(func(store.Key, any) bool)) []store.Key {
	var keys []store.Key
	seq(func(k store.Key, _ any) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

func expectKeys(t *testing.T, got []store.Key, want ...store.Key) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected %d keys %v, got %d keys %v", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected key %#v at position %d, got %#v", want[i], i, got[i])
		}
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testSetGet(t *testing.T, s store.IStore) {
	key := store.StrKey("test-key")

	s.Set(key, "value1")
	result, exists := s.Get(key)
	if !exists {
		t.Errorf("Expected key %v to exist after Set", key)
	}
	if result != "value1" {
		t.Errorf("Expected value value1, got %v", result)
	}

	s.Set(key, "value2")
	result, exists = s.Get(key)
	if !exists || result != "value2" {
		t.Errorf("Expected overwritten value value2, got %v (exists=%v)", result, exists)
	}
	if s.Len() != 1 {
		t.Errorf("Overwriting must not add an entry, len=%d", s.Len())
	}

	if _, exists = s.Get(store.StrKey("nonexistent-key")); exists {
		t.Errorf("Expected nonexistent key to return exists=false")
	}
}

func testHas(t *testing.T, s store.IStore) {
	key := store.IntKey(3)
	if s.Has(key) {
		t.Errorf("Empty store should not have key %v", key)
	}

	// nil values are still present
	s.Set(key, nil)
	if !s.Has(key) {
		t.Errorf("Key %v with nil value should be present", key)
	}
	value, ok := s.Get(key)
	if !ok || value != nil {
		t.Errorf("Expected (nil, true), got (%v, %v)", value, ok)
	}
}

func testDelete(t *testing.T, s store.IStore) {
	s.Set(store.StrKey("a"), 1)
	s.Set(store.StrKey("b"), 2)
	s.Set(store.StrKey("c"), 3)

	if !s.Delete(store.StrKey("b")) {
		t.Errorf("Delete of existing key should return true")
	}
	if s.Delete(store.StrKey("b")) {
		t.Errorf("Second delete of the same key should return false")
	}
	if s.Has(store.StrKey("b")) {
		t.Errorf("Deleted key should not be present")
	}
	expectKeys(t, collectKeys(s.All()), store.StrKey("a"), store.StrKey("c"))

	// delete head and tail
	s.Delete(store.StrKey("a"))
	s.Delete(store.StrKey("c"))
	if s.Len() != 0 {
		t.Errorf("Expected empty store, len=%d", s.Len())
	}
	if _, ok := s.First(); ok {
		t.Errorf("First on empty store should return ok=false")
	}

	// re-insert after delete goes to the end
	s.Set(store.StrKey("x"), 1)
	s.Set(store.StrKey("y"), 2)
	s.Delete(store.StrKey("x"))
	s.Set(store.StrKey("x"), 3)
	expectKeys(t, collectKeys(s.All()), store.StrKey("y"), store.StrKey("x"))
}

func testOrder(t *testing.T, s store.IStore) {
	keys := []store.Key{store.StrKey("z"), store.IntKey(10), store.StrKey("a"), store.IntKey(-1)}
	for i, k := range keys {
		s.Set(k, i)
	}

	// overwriting keeps the position
	s.Set(store.StrKey("z"), "new")
	expectKeys(t, collectKeys(s.All()), keys...)

	snap := s.Snapshot()
	if len(snap) != len(keys) {
		t.Fatalf("Snapshot should have %d entries, got %d", len(keys), len(snap))
	}
	if snap[0].Value != "new" {
		t.Errorf("Snapshot should contain the overwritten value, got %v", snap[0].Value)
	}
}

func testBackward(t *testing.T, s store.IStore) {
	s.Set(store.StrKey("a"), 1)
	s.Set(store.StrKey("b"), 2)
	s.Set(store.StrKey("c"), 3)

	var pairs []string
	for k, v := range s.Backward() {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, v))
	}
	want := []string{"c=3", "b=2", "a=1"}
	if fmt.Sprint(pairs) != fmt.Sprint(want) {
		t.Errorf("Expected backward order %v, got %v", want, pairs)
	}
}

func testFirstLast(t *testing.T, s store.IStore) {
	if _, ok := s.Last(); ok {
		t.Errorf("Last on empty store should return ok=false")
	}
	s.Set(store.IntKey(1), "one")
	s.Set(store.IntKey(0), "zero")

	first, ok := s.First()
	if !ok || first.Key != store.IntKey(1) || first.Value != "one" {
		t.Errorf("Unexpected first entry %v", first)
	}
	last, ok := s.Last()
	if !ok || last.Key != store.IntKey(0) || last.Value != "zero" {
		t.Errorf("Unexpected last entry %v", last)
	}
}

func testRestartable(t *testing.T, s store.IStore) {
	for i := 0; i < 5; i++ {
		s.Set(store.IntKey(i), i)
	}

	seq := s.All()
	first := collectKeys(seq)
	second := collectKeys(seq)
	if len(first) != 5 || len(second) != 5 {
		t.Errorf("Each range over the same sequence should visit all entries, got %d and %d", len(first), len(second))
	}

	// early break does not consume the sequence
	count := 0
	for range seq {
		count++
		if count == 2 {
			break
		}
	}
	if got := collectKeys(seq); len(got) != 5 {
		t.Errorf("Sequence should restart after break, got %d entries", len(got))
	}
}

func testDeleteDuringIteration(t *testing.T, s store.IStore) {
	for i := 0; i < 6; i++ {
		s.Set(store.IntKey(i), i)
	}
	for k, v := range s.All() {
		if v.(int)%2 == 0 {
			s.Delete(k)
		}
	}
	expectKeys(t, collectKeys(s.All()), store.IntKey(1), store.IntKey(3), store.IntKey(5))
}

func testReplace(t *testing.T, s store.IStore) {
	s.Set(store.StrKey("old"), 1)
	s.Replace(store.Snapshot{
		{Key: store.IntKey(1), Value: "a"},
		{Key: store.IntKey(0), Value: "b"},
		{Key: store.IntKey(1), Value: "c"},
	})

	if s.Has(store.StrKey("old")) {
		t.Errorf("Replace should remove old entries")
	}
	expectKeys(t, collectKeys(s.All()), store.IntKey(1), store.IntKey(0))
	if v, _ := s.Get(store.IntKey(1)); v != "c" {
		t.Errorf("Duplicate key should keep the last value, got %v", v)
	}
}

func testKeyTypes(t *testing.T, s store.IStore) {
	s.Set(store.IntKey(1), "int")
	s.Set(store.StrKey("1"), "string")

	if s.Len() != 2 {
		t.Fatalf("Integer key 1 and string key \"1\" must be distinct, len=%d", s.Len())
	}
	if v, _ := s.Get(store.IntKey(1)); v != "int" {
		t.Errorf("Expected value int, got %v", v)
	}
	if v, _ := s.Get(store.ParseKey("1")); v != "int" {
		t.Errorf("ParseKey(\"1\") should address the integer key, got %v", v)
	}
}

func testRealisticUsage(t *testing.T, s store.IStore) {
	const n = 1000
	for i := 0; i < n; i++ {
		s.Set(store.StrKey(fmt.Sprintf("user:%d", i)), i)
	}
	for i := 0; i < n; i += 3 {
		s.Delete(store.StrKey(fmt.Sprintf("user:%d", i)))
	}
	expected := n - (n+2)/3
	if s.Len() != expected {
		t.Errorf("Expected %d entries, got %d", expected, s.Len())
	}

	prev := -1
	for _, v := range s.All() {
		if v.(int) <= prev {
			t.Fatalf("Insertion order violated: %d after %d", v, prev)
		}
		prev = v.(int)
	}

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Expected empty store after Clear, len=%d", s.Len())
	}
	if got := collectKeys(s.All()); len(got) != 0 {
		t.Errorf("Expected no keys after Clear, got %v", got)
	}
}
