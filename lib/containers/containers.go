package containers

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/ValentinKolb/dColl/lib/collection"
	"github.com/ValentinKolb/dColl/lib/collection/weighted"
	"github.com/ValentinKolb/dColl/lib/store"
)

var (
	_ collection.ICollection = (*Array)(nil)
	_ collection.ICollection = (*Map)(nil)
	_ collection.ICollection = (*List)(nil)
	_ collection.ICollection = (*Set)(nil)
	_ collection.ICollection = (*Typed[any])(nil)
	_ collection.ICollection = (*Weighted)(nil)
)

// --------------------------------------------------------------------------
// Array, Map, List, Set
// --------------------------------------------------------------------------

// Array accepts integer and non-empty string keys
type Array struct {
	*collection.Collection
}

// NewArray creates an array from entries
func NewArray(entries store.Snapshot, opts ...collection.Option) (*Array, error) {
	c, err := collection.New(collection.PolicyArray, entries, opts...)
	if err != nil {
		return nil, err
	}
	return &Array{Collection: c}, nil
}

// Map accepts non-empty string keys only
type Map struct {
	*collection.Collection
}

// NewMap creates a map from entries. An integer key fails the whole construction.
func NewMap(entries store.Snapshot, opts ...collection.Option) (*Map, error) {
	c, err := collection.New(collection.PolicyMap, entries, opts...)
	if err != nil {
		return nil, err
	}
	return &Map{Collection: c}, nil
}

// List accepts non-negative integer keys, writes beyond the end are appended
type List struct {
	*collection.Collection
}

// NewList creates a list holding values at the indices 0..n-1
func NewList(values []any, opts ...collection.Option) (*List, error) {
	c, err := collection.New(collection.PolicyList, store.SnapshotOf(values...), opts...)
	if err != nil {
		return nil, err
	}
	return &List{Collection: c}, nil
}

// Set is a list that stores every value at most once
type Set struct {
	*collection.Collection
}

// NewSet creates a set from values. Duplicates (strict equality) are dropped,
// the remaining values keep their order and are numbered 0..n-1.
func NewSet(values []any, opts ...collection.Option) (*Set, error) {
	unique := make([]any, 0, len(values))
	for _, v := range values {
		if !slices.ContainsFunc(unique, func(u any) bool { return collection.StrictEqual(u, v) }) {
			unique = append(unique, v)
		}
	}
	c, err := collection.New(collection.PolicySet, store.SnapshotOf(unique...), opts...)
	if err != nil {
		return nil, err
	}
	return &Set{Collection: c}, nil
}

// --------------------------------------------------------------------------
// Typed
// --------------------------------------------------------------------------

// Typed only accepts values of type T
type Typed[T any] struct {
	*collection.Collection
}

// NewTyped creates a collection with the given key policy that rejects every value
// not of type T with an invalid value error.
func NewTyped[T any](policy collection.Policy, entries store.Snapshot, opts ...collection.Option) (*Typed[T], error) {
	opts = append(opts, collection.WithValueValidator(TypeValidator[T]()))
	c, err := collection.New(policy, entries, opts...)
	if err != nil {
		return nil, err
	}
	return &Typed[T]{Collection: c}, nil
}

// GetTyped returns a copy of the value for key
func (t *Typed[T]) GetTyped(key store.Key) (T, bool) {
	v, ok := t.Get(key, nil).(T)
	return v, ok
}

// TypeValidator returns a value validator that accepts values of type T only
func TypeValidator[T any]() collection.ValueValidator {
	want := reflect.TypeFor[T]()
	return func(value any) error {
		// nil satisfies every interface type
		if value == nil && want.Kind() == reflect.Interface {
			return nil
		}
		if _, ok := value.(T); !ok {
			return fmt.Errorf("expected value of type %s, got %T", want, value)
		}
		return nil
	}
}

// --------------------------------------------------------------------------
// Weighted
// --------------------------------------------------------------------------

// Weighted is a list of weighted items (see weighted.WeightOf) with random selection.
// Values that are not weighted items may be stored but are never picked.
type Weighted struct {
	*collection.Collection
	selector *weighted.Selector
}

// NewWeighted creates a weighted list drawing from src (nil: random seed)
func NewWeighted(values []any, src weighted.RandomSource, opts ...collection.Option) (*Weighted, error) {
	c, err := collection.New(collection.PolicyList, store.SnapshotOf(values...), opts...)
	if err != nil {
		return nil, err
	}
	return &Weighted{Collection: c, selector: weighted.NewSelector(src)}, nil
}

// AsWeighted offers random selection over the entries of any collection. The
// entries are shared, not copied, and keep their keys.
func AsWeighted(c collection.ICollection, src weighted.RandomSource) *Weighted {
	return &Weighted{Collection: c.Base(), selector: weighted.NewSelector(src)}
}

// PickEntry selects a random entry, proportionally to the weights
func (w *Weighted) PickEntry(opts ...weighted.SelectOption) (store.Entry, bool) {
	return w.selector.Select(w.All(), opts...)
}

// Pick selects a random value, proportionally to the weights
func (w *Weighted) Pick(opts ...weighted.SelectOption) (any, bool) {
	e, ok := w.PickEntry(opts...)
	return e.Value, ok
}

// --------------------------------------------------------------------------
// Generic construction
// --------------------------------------------------------------------------

// From creates a container of the given kind from a snapshot, e.g. from the
// result of ToSnapshot or a deserialized document.
// Lists and sets keep the keys of the snapshot (they are still validated).
func From(kind collection.Kind, entries store.Snapshot, opts ...collection.Option) (collection.ICollection, error) {
	policy, err := kind.Policy()
	if err != nil {
		return nil, err
	}
	c, err := collection.New(policy, entries, opts...)
	if err != nil {
		return nil, err
	}

	switch kind {
	case collection.KindArray:
		return &Array{Collection: c}, nil
	case collection.KindMap:
		return &Map{Collection: c}, nil
	case collection.KindList:
		return &List{Collection: c}, nil
	default:
		return &Set{Collection: c}, nil
	}
}
