// Package testing provides a conformance suite for implementations of the
// store.IStore interface.
//
// Usage:
//
//	func Test(t *testing.T) {
//	    storetesting.RunStoreTests(t, "MyStore", func() store.IStore {
//	        return NewMyStore()
//	    })
//	}
//
// The suite checks ordering, restartable iteration in both directions,
// deletion while ranging, snapshot replacement and the distinction between
// integer and string keys.
package testing
