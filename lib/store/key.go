package store

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// --------------------------------------------------------------------------
// Key Type
// --------------------------------------------------------------------------

// Key is the key of an entry. A key is either an integer or a string,
// the zero value is the integer key 0.
type Key struct {
	num   int
	str   string
	isStr bool
}

// IntKey creates an integer key
func IntKey(i int) Key {
	return Key{num: i}
}

// StrKey creates a string key. The string is used as is, "1" stays a string key.
// Use ParseKey to coerce canonical integer strings.
func StrKey(s string) Key {
	return Key{str: s, isStr: true}
}

// ParseKey converts a string to a key. Canonical decimal integers ("0", "42", "-7")
// become integer keys, everything else (including "007" or "+1") becomes a string key.
func ParseKey(s string) Key {
	if i, err := strconv.Atoi(s); err == nil && strconv.Itoa(i) == s {
		return IntKey(i)
	}
	return StrKey(s)
}

// KeyOf converts an arbitrary value to a key.
// Supported are all integer kinds, integral floats, json.Number and strings (as is).
func KeyOf(v any) (Key, error) {
	switch k := v.(type) {
	case Key:
		return k, nil
	case string:
		return StrKey(k), nil
	case int:
		return IntKey(k), nil
	case int8:
		return IntKey(int(k)), nil
	case int16:
		return IntKey(int(k)), nil
	case int32:
		return IntKey(int(k)), nil
	case int64:
		return IntKey(int(k)), nil
	case uint8:
		return IntKey(int(k)), nil
	case uint16:
		return IntKey(int(k)), nil
	case uint32:
		return IntKey(int(k)), nil
	case uint64:
		if k > math.MaxInt64 {
			return Key{}, fmt.Errorf("key %d overflows int", k)
		}
		return IntKey(int(k)), nil
	case float64:
		if k != math.Trunc(k) || math.IsInf(k, 0) {
			return Key{}, fmt.Errorf("key %v is not integral", k)
		}
		return IntKey(int(k)), nil
	case json.Number:
		if i, err := k.Int64(); err == nil {
			return IntKey(int(i)), nil
		}
		return Key{}, fmt.Errorf("key %s is not integral", k)
	default:
		return Key{}, fmt.Errorf("unsupported key type %T", v)
	}
}

// IsString reports whether the key is a string key
func (k Key) IsString() bool {
	return k.isStr
}

// Int returns the integer value of the key and whether the key is an integer key
func (k Key) Int() (int, bool) {
	return k.num, !k.isStr
}

// Str returns the string value of the key and whether the key is a string key
func (k Key) Str() (string, bool) {
	return k.str, k.isStr
}

// String renders the key, integer keys in decimal
func (k Key) String() string {
	if k.isStr {
		return k.str
	}
	return strconv.Itoa(k.num)
}

// GoString makes string keys distinguishable from integer keys in test output
func (k Key) GoString() string {
	if k.isStr {
		return strconv.Quote(k.str)
	}
	return strconv.Itoa(k.num)
}

// Any returns the key as int or string
func (k Key) Any() any {
	if k.isStr {
		return k.str
	}
	return k.num
}

// CompareKeys orders keys: integer keys before string keys,
// integers numerically and strings lexicographically.
func CompareKeys(a, b Key) int {
	switch {
	case !a.isStr && !b.isStr:
		return cmp.Compare(a.num, b.num)
	case a.isStr && b.isStr:
		return cmp.Compare(a.str, b.str)
	case !a.isStr:
		return -1
	default:
		return 1
	}
}

// --------------------------------------------------------------------------
// Entry Type
// --------------------------------------------------------------------------

// Entry is a single key-value pair
type Entry struct {
	Key   Key
	Value any
}

func (e Entry) String() string {
	return fmt.Sprintf("Entry{Key: %#v, Value: %v}", e.Key, e.Value)
}

// Snapshot is an ordered list of entries. It is the exchange format between
// stores, collections and serializers.
type Snapshot []Entry

// Keys returns the keys of the snapshot in order
func (s Snapshot) Keys() []Key {
	keys := make([]Key, len(s))
	for i, e := range s {
		keys[i] = e.Key
	}
	return keys
}

// Values returns the values of the snapshot in order
func (s Snapshot) Values() []any {
	values := make([]any, len(s))
	for i, e := range s {
		values[i] = e.Value
	}
	return values
}

// IsSequential reports whether the keys are exactly the integers 0..n-1 in order
func (s Snapshot) IsSequential() bool {
	for i, e := range s {
		if n, ok := e.Key.Int(); !ok || n != i {
			return false
		}
	}
	return true
}

// SnapshotOf creates a sequential snapshot (keys 0..n-1) for the given values
func SnapshotOf(values ...any) Snapshot {
	snap := make(Snapshot, len(values))
	for i, v := range values {
		snap[i] = Entry{Key: IntKey(i), Value: v}
	}
	return snap
}
