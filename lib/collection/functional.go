package collection

import (
	"slices"

	"github.com/ValentinKolb/dColl/lib/store"
)

// --------------------------------------------------------------------------
// Functional Transforms
// --------------------------------------------------------------------------
//
// All transforms build the complete result first, validate it against the key
// policy and value validator and only then replace the entry store. A callback
// error or a validation error leaves the collection unchanged.
//
// preserveKeys=false renumbers the result 0..n-1, which fails for map collections.

// MapFunc transforms a single entry
type MapFunc func(key store.Key, value any) (any, error)

// FilterFunc decides whether an entry is kept
type FilterFunc func(key store.Key, value any) bool

// ReduceFunc folds an entry into the accumulator
type ReduceFunc func(acc any, key store.Key, value any) (any, error)

// Map replaces every value with fn(key, value)
func (c *Collection) Map(fn MapFunc, preserveKeys bool) error {
	if err := c.checkWritable("map"); err != nil {
		return err
	}
	if fn == nil {
		return c.reject("map", NewError(RetCInvalidArgument, c.policy.Kind, "map requires a callback"))
	}

	snap := c.ToSnapshot()
	for i, e := range snap {
		v, err := fn(e.Key, e.Value)
		if err != nil {
			return err
		}
		snap[i].Value = CloneValue(v)
	}
	return c.rebuild("map", snap, preserveKeys)
}

// Filter keeps the entries for which fn returns true.
// A nil fn keeps all entries with a non-nil value.
func (c *Collection) Filter(fn FilterFunc, preserveKeys bool) error {
	if err := c.checkWritable("filter"); err != nil {
		return err
	}
	if fn == nil {
		fn = func(_ store.Key, v any) bool { return v != nil }
	}

	var kept store.Snapshot
	for _, e := range c.ToSnapshot() {
		if fn(e.Key, e.Value) {
			kept = append(kept, e)
		}
	}
	return c.rebuild("filter", kept, preserveKeys)
}

// Sort orders the entries by value (stable). A nil cmp uses Compare.
func (c *Collection) Sort(cmp func(a, b any) int, preserveKeys bool) error {
	if err := c.checkWritable("sort"); err != nil {
		return err
	}
	if cmp == nil {
		cmp = Compare
	}

	snap := c.entries.Snapshot()
	slices.SortStableFunc(snap, func(a, b store.Entry) int {
		return cmp(a.Value, b.Value)
	})
	return c.rebuild("sort", snap, preserveKeys)
}

// SortBy orders the entries by value using one of the predefined modes
func (c *Collection) SortBy(mode SortMode, descending, preserveKeys bool) error {
	compare := CompareWith(mode)
	if descending {
		return c.Sort(func(a, b any) int { return compare(b, a) }, preserveKeys)
	}
	return c.Sort(compare, preserveKeys)
}

// SortByKey orders the entries by key (stable). A nil cmp uses store.CompareKeys.
// Keys are always preserved.
func (c *Collection) SortByKey(cmp func(a, b store.Key) int) error {
	if err := c.checkWritable("sort"); err != nil {
		return err
	}
	if cmp == nil {
		cmp = store.CompareKeys
	}

	snap := c.entries.Snapshot()
	slices.SortStableFunc(snap, func(a, b store.Entry) int {
		return cmp(a.Key, b.Key)
	})
	return c.rebuild("sort", snap, true)
}

// Reverse reverses the order of the entries
func (c *Collection) Reverse(preserveKeys bool) error {
	if err := c.checkWritable("reverse"); err != nil {
		return err
	}
	snap := c.entries.Snapshot()
	slices.Reverse(snap)
	return c.rebuild("reverse", snap, preserveKeys)
}

// Reduce folds all entries in order, starting with initial. Read-only collections can be reduced.
func (c *Collection) Reduce(initial any, fn ReduceFunc) (any, error) {
	return c.reduce(initial, fn, false)
}

// ReduceRight folds all entries in reverse order
func (c *Collection) ReduceRight(initial any, fn ReduceFunc) (any, error) {
	return c.reduce(initial, fn, true)
}

func (c *Collection) reduce(initial any, fn ReduceFunc, fromEnd bool) (any, error) {
	if fn == nil {
		return nil, NewError(RetCInvalidArgument, c.policy.Kind, "reduce requires a callback")
	}
	seq := c.All()
	if fromEnd {
		seq = c.Backward()
	}

	acc := initial
	for k, v := range seq {
		var err error
		if acc, err = fn(acc, k, v); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// rebuild validates entries and replaces the entry store with them.
// Keys are renumbered unless preserveKeys is set. For collections with unique
// values later duplicates are dropped.
func (c *Collection) rebuild(op string, entries store.Snapshot, preserveKeys bool) error {
	if c.policy.UniqueValues {
		entries = dedupe(entries)
	}
	if !preserveKeys {
		for i := range entries {
			entries[i].Key = store.IntKey(i)
		}
	}
	if err := c.validateEntries(entries); err != nil {
		return c.reject(op, err)
	}

	c.entries.Replace(entries)
	mutationsTotal.Inc()
	return nil
}

// dedupe drops entries whose value strictly equals the value of an earlier entry
func dedupe(entries store.Snapshot) store.Snapshot {
	out := make(store.Snapshot, 0, len(entries))
	for _, e := range entries {
		if !slices.ContainsFunc(out, func(kept store.Entry) bool { return StrictEqual(kept.Value, e.Value) }) {
			out = append(out, e)
		}
	}
	return out
}
