package store

import "iter"

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// StoreFactory is a function type that creates a new, empty store.
// This is used to abstract the creation of the entry store from the collections using it.
type StoreFactory func() IStore

// IStore is the generic interface for an ordered key–value store.
// The store remembers the insertion order of keys. Overwriting an existing key keeps its position.
// Values are stored as given, copying is the responsibility of the caller.
//
// Thread-safety: implementations are not required to be thread-safe.
type IStore interface {
	// Set inserts or updates a key–value pair. New keys are appended to the end.
	Set(key Key, value any)
	// Get returns the value for a key. The boolean return value indicates whether the key was found.
	Get(key Key) (value any, loaded bool)
	// Has returns whether a key exists in the store (even if the value is nil).
	Has(key Key) (loaded bool)
	// Delete deletes a key–value pair. Returns whether the key existed.
	Delete(key Key) (deleted bool)
	// Len returns the number of entries.
	Len() int
	// Clear removes all entries.
	Clear()
	// First returns the first entry in insertion order.
	First() (entry Entry, ok bool)
	// Last returns the last entry in insertion order.
	Last() (entry Entry, ok bool)
	// All iterates over all entries in insertion order.
	// The sequence can be ranged over multiple times, each range starts a fresh pass.
	All() iter.Seq2[Key, any]
	// Backward iterates over all entries in reverse insertion order.
	Backward() iter.Seq2[Key, any]
	// Snapshot returns all entries in insertion order.
	Snapshot() Snapshot
	// Replace atomically replaces all entries with the given snapshot.
	// Duplicate keys in the snapshot keep the position of the first occurrence and the last value.
	Replace(entries Snapshot)
}
