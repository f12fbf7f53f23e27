package collection

import (
	"iter"

	"github.com/ValentinKolb/dColl/lib/store"
)

// --------------------------------------------------------------------------
// Capability Interfaces
// --------------------------------------------------------------------------

// Readable is implemented by everything that can be queried by key or value
type Readable interface {
	// Has reports whether key is set to a non-nil value.
	Has(key store.Key) bool
	// HasKey reports whether key is present, regardless of its value.
	HasKey(key store.Key) bool
	// HasValue reports whether any entry holds value (strict or loose equality).
	HasValue(value any, strict bool) bool
	// Get returns a copy of the value for key, or def if absent.
	Get(key store.Key, def any) any
	// Search returns the first (or last if fromEnd) key holding value.
	Search(value any, strict, fromEnd bool) (store.Key, bool)
	// First returns the first value in insertion order.
	First() (any, bool)
	// Last returns the last value in insertion order.
	Last() (any, bool)
	// FirstKey returns the first key in insertion order.
	FirstKey() (store.Key, bool)
	// LastKey returns the last key in insertion order.
	LastKey() (store.Key, bool)
	// Len returns the number of entries.
	Len() int
	// IsEmpty reports whether there are no entries.
	IsEmpty() bool
	// ToSnapshot returns a deep copy of all entries in order.
	ToSnapshot() store.Snapshot
}

// Writable is implemented by everything that can be mutated. All methods fail
// with a read-only violation once the collection is locked.
type Writable interface {
	// Set stores or overwrites a value.
	Set(key store.Key, value any) error
	// Add stores a value, merging with an existing value on key collision.
	Add(key store.Key, value any) error
	// Append adds a value at the next integer index.
	Append(value any) error
	// Remove deletes a key and reports whether it existed.
	Remove(key store.Key) (bool, error)
	// RemoveReindex deletes a key and renumbers sequential collections.
	RemoveReindex(key store.Key) (bool, error)
	// ReplaceValue replaces the first occurrence of oldValue.
	ReplaceValue(oldValue, newValue any, strict bool) (bool, error)
	// ReplaceKey replaces the value of an existing key.
	ReplaceKey(key store.Key, value any) (bool, error)
	// Empty removes all entries.
	Empty() error
}

// Lockable is implemented by everything with a once-only read-only state
type Lockable interface {
	// ReadOnly initialises the state with the first non-nil argument and returns the stored state.
	ReadOnly(initial *bool) *bool
	// Lock makes the collection read-only unless the state is already fixed.
	Lock()
	// Unlock fixes the collection as writable unless the state is already fixed.
	Unlock()
	// IsReadOnly reports whether mutations are rejected.
	IsReadOnly() bool
}

// Iterable is implemented by everything that can be ranged over in both directions
type Iterable interface {
	// All iterates in insertion order.
	All() iter.Seq2[store.Key, any]
	// Backward iterates in reverse insertion order.
	Backward() iter.Seq2[store.Key, any]
	// Keys iterates over the keys in insertion order.
	Keys() iter.Seq[store.Key]
	// Values iterates over the values in insertion order.
	Values() iter.Seq[any]
}

// Sortable is implemented by everything that supports the functional transforms
type Sortable interface {
	Map(fn MapFunc, preserveKeys bool) error
	Filter(fn FilterFunc, preserveKeys bool) error
	Sort(cmp func(a, b any) int, preserveKeys bool) error
	SortBy(mode SortMode, descending, preserveKeys bool) error
	SortByKey(cmp func(a, b store.Key) int) error
	Reverse(preserveKeys bool) error
	Reduce(initial any, fn ReduceFunc) (any, error)
	ReduceRight(initial any, fn ReduceFunc) (any, error)
}

// Aggregator is implemented by everything that can compute aggregates over its values
type Aggregator interface {
	Sum() float64
	Product(precision int) float64
	Average(precision int) (float64, bool)
	Min() (any, bool)
	Max() (any, bool)
}

// ICollection combines all capabilities. Every container satisfies it by embedding *Collection.
type ICollection interface {
	Readable
	Writable
	Lockable
	Iterable
	Sortable
	Aggregator

	// Kind returns the kind of the key policy.
	Kind() Kind
	// Base returns the underlying shared implementation.
	Base() *Collection
}

// Base returns c itself. Containers embedding *Collection inherit this,
// which gives access to CopyTo, CopyFrom and Clone across container types.
func (c *Collection) Base() *Collection {
	return c
}

var _ ICollection = (*Collection)(nil)
