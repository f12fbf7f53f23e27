// Package testing provides a conformance suite for containers built on
// collection.Collection.
//
// Usage:
//
//	func Test(t *testing.T) {
//	    colltesting.RunCollectionTests(t, "List", func(entries store.Snapshot, opts ...collection.Option) (collection.ICollection, error) {
//	        return containers.From(collection.KindList, entries, opts...)
//	    })
//	}
//
// The suite checks read-only locking, copy semantics, iteration order, lookups,
// aggregates and the snapshot round trip for every kind.
package testing
