package collection

import (
	"iter"

	"github.com/ValentinKolb/dColl/lib/store"
)

// --------------------------------------------------------------------------
// Iteration
// --------------------------------------------------------------------------

// All iterates over all entries in insertion order. Values are copies.
// The sequence is restartable: every range loop is a fresh pass.
func (c *Collection) All() iter.Seq2[store.Key, any] {
	return copyOut(c.entries.All())
}

// Backward iterates over all entries in reverse insertion order
func (c *Collection) Backward() iter.Seq2[store.Key, any] {
	return copyOut(c.entries.Backward())
}

// Keys iterates over all keys in insertion order
func (c *Collection) Keys() iter.Seq[store.Key] {
	return func(yield func(store.Key) bool) {
		for k := range c.entries.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values iterates over copies of all values in insertion order
func (c *Collection) Values() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range c.entries.All() {
			if !yield(CloneValue(v)) {
				return
			}
		}
	}
}

func copyOut(seq iter.Seq2[store.Key, any]) iter.Seq2[store.Key, any] {
	return func(yield func(store.Key, any) bool) {
		for k, v := range seq {
			if !yield(k, CloneValue(v)) {
				return
			}
		}
	}
}

// --------------------------------------------------------------------------
// Indexer
// --------------------------------------------------------------------------

// Indexer offers bracket style access to a collection. It only forwards to the
// explicit accessor methods, so all checks apply.
type Indexer struct {
	c *Collection
}

// Indexer returns an indexer for the collection
func (c *Collection) Indexer() Indexer {
	return Indexer{c: c}
}

// At returns a copy of the value for key, nil if absent (c[key])
func (ix Indexer) At(key store.Key) any {
	return ix.c.Get(key, nil)
}

// Put sets key to value (c[key] = value)
func (ix Indexer) Put(key store.Key, value any) error {
	return ix.c.Set(key, value)
}

// Exists reports whether key is set to a non-nil value (isset(c[key]))
func (ix Indexer) Exists(key store.Key) bool {
	return ix.c.Has(key)
}

// Unset removes key (unset(c[key]))
func (ix Indexer) Unset(key store.Key) error {
	_, err := ix.c.Remove(key)
	return err
}
