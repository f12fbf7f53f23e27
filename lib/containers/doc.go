// Package containers provides the concrete collection variants. Each container embeds
// *collection.Collection with a fixed key policy and therefore offers the complete
// collection.ICollection API.
//
//	Array     integer and string keys (NewArray)
//	Map       string keys only (NewMap)
//	List      sequential integer keys (NewList)
//	Set       sequential integer keys, unique values (NewSet)
//	Typed[T]  any policy, values restricted to type T (NewTyped)
//	Weighted  list with weighted random selection (NewWeighted, Pick)
//
// From creates a container for a kind from a snapshot and is the inverse of ToSnapshot.
package containers
