package collection

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/dColl/lib/store"
)

// --------------------------------------------------------------------------
// Kind
// --------------------------------------------------------------------------

// Kind names the key policy of a collection
type Kind uint8

const (
	KindUnknown Kind = iota
	KindArray
	KindMap
	KindList
	KindSet
)

func (k Kind) String() string {
	switch k {
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindList:
		return "list"
	case KindSet:
		return "set"
	default:
		return "unknown"
	}
}

// ParseKind parses the name of a kind (case-insensitive)
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "array":
		return KindArray, nil
	case "map":
		return KindMap, nil
	case "list":
		return KindList, nil
	case "set":
		return KindSet, nil
	default:
		return KindUnknown, fmt.Errorf("invalid kind %q (expected one of array, map, list, set)", s)
	}
}

// Policy returns the key policy for the kind
func (k Kind) Policy() (Policy, error) {
	switch k {
	case KindArray:
		return PolicyArray, nil
	case KindMap:
		return PolicyMap, nil
	case KindList:
		return PolicyList, nil
	case KindSet:
		return PolicySet, nil
	default:
		return Policy{}, NewError(RetCInvalidArgument, k, "no key policy for kind")
	}
}

// --------------------------------------------------------------------------
// Policy (key validation)
// --------------------------------------------------------------------------

// Policy describes which keys a collection accepts. A policy is fixed for the
// lifetime of a collection.
type Policy struct {
	Kind         Kind
	AllowInt     bool // integer keys are accepted
	AllowString  bool // (non-empty) string keys are accepted
	NonNegative  bool // integer keys must be >= 0
	Sequential   bool // integer keys are clamped to the next free index and re-indexable
	UniqueValues bool // a value may only be stored once (strict equality)
}

// Predefined policies
var (
	PolicyArray = Policy{Kind: KindArray, AllowInt: true, AllowString: true}
	PolicyMap   = Policy{Kind: KindMap, AllowString: true}
	PolicyList  = Policy{Kind: KindList, AllowInt: true, NonNegative: true, Sequential: true}
	PolicySet   = Policy{Kind: KindSet, AllowInt: true, NonNegative: true, Sequential: true, UniqueValues: true}
)

// Validate checks a single key against the policy
func (p Policy) Validate(key store.Key) error {
	if s, ok := key.Str(); ok {
		if !p.AllowString {
			return newKeyError(p.Kind, key, "string keys are not allowed")
		}
		if s == "" {
			return newKeyError(p.Kind, key, "key must not be empty")
		}
		return nil
	}

	n, _ := key.Int()
	if !p.AllowInt {
		return newKeyError(p.Kind, key, "integer keys are not allowed")
	}
	if p.NonNegative && n < 0 {
		return newKeyError(p.Kind, key, "key must not be negative")
	}
	return nil
}

// ValidateAll checks all keys and returns the first violation.
// Nothing should be stored unless ValidateAll succeeded.
func (p Policy) ValidateAll(keys []store.Key) error {
	for _, k := range keys {
		if err := p.Validate(k); err != nil {
			return err
		}
	}
	return nil
}

// Normalize clamps integer keys of sequential policies that point beyond the
// end of the collection to exactly count, so that writes append instead of
// leaving gaps. Other keys are returned unchanged.
func (p Policy) Normalize(key store.Key, count int) store.Key {
	if !p.Sequential {
		return key
	}
	if n, ok := key.Int(); ok && n > count {
		return store.IntKey(count)
	}
	return key
}
