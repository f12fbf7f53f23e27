// Package store provides the ordered key-value storage layer the collections are built on.
// It serves as an abstraction between the collection semantics (read-only locking, key
// policies, functional transforms) and the actual bookkeeping of entries.
//
// The package focuses on:
//   - A unified interface (IStore) for ordered key-value storage
//   - A small key type (Key) that is either an integer or a string
//   - A plain exchange format (Snapshot) used by collections and serializers
//
// Key Components:
//
//   - IStore Interface: The core abstraction defining operations on an insertion ordered
//     mapping. Iteration is restartable in both directions, so a sequence returned by All()
//     or Backward() may be ranged over any number of times.
//
//   - Key: Integer or string. ParseKey applies the usual coercion of canonical integer
//     strings ("42" becomes the integer key 42), KeyOf converts decoded values (json
//     numbers, integral floats, all integer kinds). CompareKeys defines a total order
//     (integers first, then strings).
//
//   - StoreFactory: A function type that abstracts the creation of IStore instances,
//     providing dependency injection for the collections.
//
// Implementations:
//
//	- Ordered Store (ostore): A map indexed, doubly linked list of entries. Lookups,
//	  inserts and deletes are O(1), iteration follows insertion order.
//	  Available in the "github.com/ValentinKolb/dColl/lib/store/ostore" package.
//
// A conformance suite for IStore implementations lives in
// "github.com/ValentinKolb/dColl/lib/store/testing".
package store
