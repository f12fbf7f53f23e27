// Package collection implements the shared semantics of all dColl containers on top of
// an ordered store.IStore. A Collection combines three things:
//
//   - A ReadOnlyState: a tri-state flag (unset, true, false) that can be initialised
//     exactly once. After Lock() every mutating method fails with a read-only violation
//     and leaves the entries untouched.
//   - A Policy: the key validator of the collection kind (array, map, list, set).
//     Keys are validated before anything is written, construction is all-or-nothing.
//   - The entry store itself, created through a store.StoreFactory.
//
// Kinds:
//
//	array  integer or non-empty string keys
//	map    non-empty string keys only
//	list   non-negative integer keys, keys beyond the end are clamped to the next index
//	set    like list, additionally every value is stored at most once (strict equality)
//
// Values:
//
//	Values of type slice or map are deep copied when they enter or leave a collection
//	(CloneValue), so two collections never share mutable state. GetMutable is the only
//	way to obtain the stored value itself.
//
//	Equality comes in two flavours. StrictEqual requires the same dynamic type,
//	LooseEqual coerces numbers and numeric strings (1 == 1.0 == "1") and treats nil,
//	false, 0 and "" as equal.
//
// Functional Transforms:
//
//	Map, Filter, Sort, SortBy, SortByKey and Reverse compute the full result first,
//	validate it and only then replace the entries. Without preserveKeys the result is
//	renumbered 0..n-1, which map collections reject with an invalid key error.
//	Reduce and ReduceRight only read and also work on read-only collections.
//
// Errors:
//
//	All failures are *Error values with a RetCode. Use errors.Is with the sentinels
//	ErrReadOnly, ErrInvalidKey, ErrInvalidArgument and ErrInvalidValue.
//	Lookups never fail, they return a default or ok=false.
//
// Thread Safety:
//
//	A collection must not be mutated concurrently. The read-only state is atomic and
//	can be read and locked from any goroutine.
//
// Usage Example:
//
//	c, err := collection.New(collection.PolicyList, store.SnapshotOf("a", "b"))
//	if err != nil {
//	    // handle error
//	}
//	_ = c.Append("c")
//	c.Lock()
//	err = c.Append("d") // errors.Is(err, collection.ErrReadOnly) == true
//
// Concrete containers (Array, Map, List, Set, Typed, Weighted) live in the
// "github.com/ValentinKolb/dColl/lib/containers" package. A conformance suite for them
// is available in "github.com/ValentinKolb/dColl/lib/collection/testing".
package collection
