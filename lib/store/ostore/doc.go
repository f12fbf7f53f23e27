// Package ostore implements an ordered, in-memory key-value store based on the
// store.IStore interface. It is the default entry store of all collections.
//
// Implementation Details:
//
//   - Index: A Go map from store.Key to list node gives O(1) Get, Has, Set and Delete.
//
//   - Order: The nodes form a doubly linked list in insertion order. Overwriting an existing
//     key updates the node in place, so the position of a key never changes until it is
//     deleted. First, Last and Backward work directly on the list ends.
//
//   - Iteration: All and Backward return iter.Seq2 values that walk the list from scratch
//     on every range loop. The successor is read before the entry is yielded, which makes
//     deleting the current entry inside the loop safe. Any other mutation during iteration
//     is undefined; clone the collection first if you need that.
//
// Thread Safety:
//
//	The store is not thread-safe. Collections are owned by a single goroutine.
//
// Usage Example:
//
//	s := ostore.NewOrderedStore()
//	s.Set(store.StrKey("a"), 1)
//	s.Set(store.StrKey("b"), 2)
//	for k, v := range s.Backward() {
//	    fmt.Println(k, v) // b 2, a 1
//	}
package ostore
