package collection

import (
	"fmt"

	"github.com/ValentinKolb/dColl/lib/store"
	"github.com/ValentinKolb/dColl/lib/store/ostore"
)

// --------------------------------------------------------------------------
// Construction
// --------------------------------------------------------------------------

// ValueValidator checks a value before it is stored. A non-nil error rejects the value.
type ValueValidator func(value any) error

// Option configures a Collection during construction
type Option func(c *Collection)

// WithStoreFactory sets the factory for the entry store (default: ostore.Factory)
func WithStoreFactory(factory store.StoreFactory) Option {
	return func(c *Collection) { c.factory = factory }
}

// WithValueValidator rejects values for which validator returns an error
func WithValueValidator(validator ValueValidator) Option {
	return func(c *Collection) { c.validator = validator }
}

// WithReadOnly initialises the read-only state once the initial entries are stored
func WithReadOnly(readOnly bool) Option {
	return func(c *Collection) { c.initialReadOnly = &readOnly }
}

// Collection is the shared implementation of all containers. It holds an ordered
// entry store, a key policy and a read-only state. Every mutating method checks
// the read-only state first and validates keys and values before anything is
// written, so a failing call never leaves a partial change behind.
//
// Thread-safety: a Collection must not be mutated concurrently. Only the
// read-only state is safe for concurrent use.
type Collection struct {
	policy          Policy
	entries         store.IStore
	readOnly        ReadOnlyState
	validator       ValueValidator
	factory         store.StoreFactory
	initialReadOnly *bool
}

// New creates a collection with the given key policy and initial entries.
// All keys and values are validated before the first entry is stored; if any
// of them is invalid, no collection is returned.
func New(policy Policy, entries store.Snapshot, opts ...Option) (*Collection, error) {
	c := &Collection{
		policy:  policy,
		factory: ostore.Factory,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.entries = c.factory()

	if err := c.validateEntries(entries); err != nil {
		plog.Debugf("construction of %s collection failed: %v", policy.Kind, err)
		countRejected(err)
		return nil, err
	}
	// keys are stored as given, so ToSnapshot and New round-trip
	for _, e := range entries {
		if c.policy.UniqueValues && c.HasValue(e.Value, true) {
			continue
		}
		c.entries.Set(e.Key, CloneValue(e.Value))
	}

	if c.initialReadOnly != nil {
		c.readOnly.GetOrInit(c.initialReadOnly)
	}
	return c, nil
}

// --------------------------------------------------------------------------
// Read-only State
// --------------------------------------------------------------------------

// ReadOnly initialises the read-only state with the first non-nil argument and
// returns the stored state (nil if never initialised). Later calls can not change it.
func (c *Collection) ReadOnly(initial *bool) *bool {
	return c.readOnly.GetOrInit(initial)
}

// Lock makes the collection read-only, unless the state was already fixed
func (c *Collection) Lock() {
	c.readOnly.Lock()
}

// Unlock fixes the collection as writable, unless the state was already fixed
func (c *Collection) Unlock() {
	c.readOnly.Unlock()
}

// IsReadOnly reports whether the collection rejects mutations
func (c *Collection) IsReadOnly() bool {
	return c.readOnly.IsReadOnly()
}

// Policy returns the key policy of the collection
func (c *Collection) Policy() Policy {
	return c.policy
}

// Kind returns the kind of the key policy
func (c *Collection) Kind() Kind {
	return c.policy.Kind
}

// --------------------------------------------------------------------------
// Read Operations
// --------------------------------------------------------------------------

// Has reports whether key is set and its value is not nil
func (c *Collection) Has(key store.Key) bool {
	v, ok := c.entries.Get(key)
	return ok && v != nil
}

// HasKey reports whether key is present, regardless of its value
func (c *Collection) HasKey(key store.Key) bool {
	return c.entries.Has(key)
}

// HasValue reports whether any entry holds value (see StrictEqual and LooseEqual)
func (c *Collection) HasValue(value any, strict bool) bool {
	_, ok := c.Search(value, strict, false)
	return ok
}

// Get returns a copy of the value for key, or def if the key is absent
func (c *Collection) Get(key store.Key, def any) any {
	v, ok := c.entries.Get(key)
	if !ok {
		return def
	}
	return CloneValue(v)
}

// GetMutable returns the stored value itself. Changes to a returned slice or map
// are visible in the collection and bypass the read-only state and all validation.
func (c *Collection) GetMutable(key store.Key) (any, bool) {
	return c.entries.Get(key)
}

// Search returns the first key (or last key if fromEnd) whose value equals value
func (c *Collection) Search(value any, strict, fromEnd bool) (store.Key, bool) {
	seq := c.entries.All()
	if fromEnd {
		seq = c.entries.Backward()
	}
	for k, v := range seq {
		if equal(v, value, strict) {
			return k, true
		}
	}
	return store.Key{}, false
}

// First returns a copy of the first value in insertion order
func (c *Collection) First() (any, bool) {
	e, ok := c.entries.First()
	return CloneValue(e.Value), ok
}

// Last returns a copy of the last value in insertion order
func (c *Collection) Last() (any, bool) {
	e, ok := c.entries.Last()
	return CloneValue(e.Value), ok
}

// FirstKey returns the first key in insertion order
func (c *Collection) FirstKey() (store.Key, bool) {
	e, ok := c.entries.First()
	return e.Key, ok
}

// LastKey returns the last key in insertion order
func (c *Collection) LastKey() (store.Key, bool) {
	e, ok := c.entries.Last()
	return e.Key, ok
}

// Len returns the number of entries
func (c *Collection) Len() int {
	return c.entries.Len()
}

// IsEmpty reports whether the collection has no entries
func (c *Collection) IsEmpty() bool {
	return c.entries.Len() == 0
}

// ToSnapshot returns a deep copy of all entries in order
func (c *Collection) ToSnapshot() store.Snapshot {
	snap := c.entries.Snapshot()
	for i := range snap {
		snap[i].Value = CloneValue(snap[i].Value)
	}
	return snap
}

// Clone returns an independent, writable copy with the same policy and validator
func (c *Collection) Clone() *Collection {
	clone := &Collection{
		policy:    c.policy,
		validator: c.validator,
		factory:   c.factory,
		entries:   c.factory(),
	}
	clone.entries.Replace(c.ToSnapshot())
	return clone
}

// --------------------------------------------------------------------------
// Write Operations
// --------------------------------------------------------------------------

// Set stores value under key, overwriting an existing value in place.
// Sequential kinds clamp keys beyond the end to the next index. For collections
// with unique values, setting a value that is already stored is a no-op.
func (c *Collection) Set(key store.Key, value any) error {
	if err := c.checkWritable("set"); err != nil {
		return err
	}
	if err := c.checkEntry("set", key, value); err != nil {
		return err
	}
	c.put(key, value)
	return nil
}

// Add stores value under key. If the key already exists, the old and the new value
// are merged into one flat list (one level deep: flatten(old) ++ flatten(new)).
// For collections with unique values Add is a no-op if the value is already present,
// and an occupied key moves the value to the next free index instead of merging.
func (c *Collection) Add(key store.Key, value any) error {
	if err := c.checkWritable("add"); err != nil {
		return err
	}
	if err := c.checkEntry("add", key, value); err != nil {
		return err
	}

	key = c.normalize(key)

	if c.policy.UniqueValues {
		if c.HasValue(value, true) {
			return nil
		}
		if c.entries.Has(key) {
			key = store.IntKey(c.nextIndex())
		}
		c.store(key, CloneValue(value))
		return nil
	}

	old, exists := c.entries.Get(key)
	if !exists {
		c.store(key, CloneValue(value))
		return nil
	}

	merged := merge(old, CloneValue(value))
	if err := c.checkValue("add", merged); err != nil {
		return err
	}
	c.store(key, merged)
	return nil
}

// Append adds value at the next integer index (largest integer key + 1).
// Map collections have no integer keys and fail with an invalid argument error.
func (c *Collection) Append(value any) error {
	if err := c.checkWritable("append"); err != nil {
		return err
	}
	if !c.policy.AllowInt {
		return c.reject("append", NewError(RetCInvalidArgument, c.policy.Kind, "append requires integer keys"))
	}
	return c.Add(store.IntKey(c.nextIndex()), value)
}

// Remove deletes key. Returns false if the key did not exist.
func (c *Collection) Remove(key store.Key) (bool, error) {
	if err := c.checkWritable("remove"); err != nil {
		return false, err
	}
	if !c.entries.Delete(key) {
		return false, nil
	}
	mutationsTotal.Inc()
	return true, nil
}

// RemoveReindex deletes key and, for sequential kinds, renumbers the remaining
// entries 0..n-1 keeping their order.
func (c *Collection) RemoveReindex(key store.Key) (bool, error) {
	removed, err := c.Remove(key)
	if err != nil || !removed || !c.policy.Sequential {
		return removed, err
	}
	return true, c.Reindex()
}

// Reindex renumbers all entries 0..n-1 keeping their order.
// Fails with an invalid key error for kinds without integer keys.
func (c *Collection) Reindex() error {
	if err := c.checkWritable("reindex"); err != nil {
		return err
	}
	return c.rebuild("reindex", c.entries.Snapshot(), false)
}

// ReplaceValue replaces the value of the first entry holding oldValue with newValue.
// Returns false if no entry holds oldValue.
func (c *Collection) ReplaceValue(oldValue, newValue any, strict bool) (bool, error) {
	if err := c.checkWritable("replace"); err != nil {
		return false, err
	}
	key, ok := c.Search(oldValue, strict, false)
	if !ok {
		return false, nil
	}
	return c.replaceAt("replace", key, newValue)
}

// ReplaceKey replaces the value of an existing key. Returns false if the key is absent.
func (c *Collection) ReplaceKey(key store.Key, value any) (bool, error) {
	if err := c.checkWritable("replace"); err != nil {
		return false, err
	}
	if !c.entries.Has(key) {
		return false, nil
	}
	return c.replaceAt("replace", key, value)
}

// Empty removes all entries
func (c *Collection) Empty() error {
	if err := c.checkWritable("empty"); err != nil {
		return err
	}
	c.entries.Clear()
	mutationsTotal.Inc()
	return nil
}

// CopyFrom copies all entries of src into the collection (Set semantics).
// All entries are validated before the first one is written.
func (c *Collection) CopyFrom(src *Collection) error {
	if err := c.checkWritable("copy"); err != nil {
		return err
	}
	snap := src.ToSnapshot()
	if err := c.validateEntries(snap); err != nil {
		return c.reject("copy", err)
	}
	for _, e := range snap {
		c.put(e.Key, e.Value)
	}
	return nil
}

// CopyTo copies all entries into dst (see CopyFrom)
func (c *Collection) CopyTo(dst *Collection) error {
	return dst.CopyFrom(c)
}

// --------------------------------------------------------------------------
// Internal Helpers
// --------------------------------------------------------------------------

// put stores an already validated entry, applying key normalisation and
// value uniqueness. The value is copied.
func (c *Collection) put(key store.Key, value any) {
	key = c.normalize(key)
	if c.policy.UniqueValues {
		if other, found := c.Search(value, true, false); found && other != key {
			return
		}
	}
	c.store(key, CloneValue(value))
}

// normalize clamps key with the policy. After a Remove left a gap the count can
// point at a live entry, a clamped key then moves on to the next free index.
func (c *Collection) normalize(key store.Key) store.Key {
	clamped := c.policy.Normalize(key, c.entries.Len())
	if clamped != key && c.entries.Has(clamped) {
		return store.IntKey(c.nextIndex())
	}
	return clamped
}

// store writes to the entry store and counts the mutation
func (c *Collection) store(key store.Key, value any) {
	c.entries.Set(key, value)
	mutationsTotal.Inc()
}

// replaceAt validates value and overwrites an existing key
func (c *Collection) replaceAt(op string, key store.Key, value any) (bool, error) {
	if err := c.checkValue(op, value); err != nil {
		return false, err
	}
	if c.policy.UniqueValues {
		if other, found := c.Search(value, true, false); found && other != key {
			return false, nil
		}
	}
	c.store(key, CloneValue(value))
	return true, nil
}

// nextIndex returns the largest integer key + 1, or 0 if there is none
func (c *Collection) nextIndex() int {
	next := 0
	for k := range c.entries.All() {
		if n, ok := k.Int(); ok && n >= next {
			next = n + 1
		}
	}
	return next
}

// checkWritable returns a read-only violation if the collection is locked
func (c *Collection) checkWritable(op string) error {
	if err := c.readOnly.CheckWritable(); err != nil {
		e := err.(*Error)
		e.Kind = c.policy.Kind
		return c.reject(op, e)
	}
	return nil
}

// checkEntry validates key and value
func (c *Collection) checkEntry(op string, key store.Key, value any) error {
	if err := c.policy.Validate(key); err != nil {
		return c.reject(op, err)
	}
	return c.checkValue(op, value)
}

// checkValue runs the value validator (if any)
func (c *Collection) checkValue(op string, value any) error {
	if err := c.validateValue(value); err != nil {
		return c.reject(op, err)
	}
	return nil
}

func (c *Collection) validateValue(value any) error {
	if c.validator == nil {
		return nil
	}
	if err := c.validator(value); err != nil {
		return &Error{
			Code:  RetCInvalidValue,
			Kind:  c.policy.Kind,
			Msg:   fmt.Sprintf("value %v rejected", value),
			Cause: err,
		}
	}
	return nil
}

// validateEntries checks all keys and values without storing anything
func (c *Collection) validateEntries(entries store.Snapshot) error {
	if err := c.policy.ValidateAll(entries.Keys()); err != nil {
		return err
	}
	for _, e := range entries {
		if err := c.validateValue(e.Value); err != nil {
			return err
		}
	}
	return nil
}

// reject logs and counts a rejected operation and returns err
func (c *Collection) reject(op string, err error) error {
	countRejected(err)
	plog.Debugf("%s on %s collection rejected: %v", op, c.policy.Kind, err)
	return err
}
