package collection

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// --------------------------------------------------------------------------
// Copying
// --------------------------------------------------------------------------

// CloneValue deep copies slices, maps and arrays (also nested inside interfaces).
// Pointers, structs, channels and functions are returned as is.
func CloneValue(v any) any {
	switch v.(type) {
	case nil:
		return nil
	case string, bool, int, int64, float64:
		return v
	}
	return cloneReflect(reflect.ValueOf(v)).Interface()
}

func cloneReflect(rv reflect.Value) reflect.Value {
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(cloneReflect(rv.Index(i)))
		}
		return out
	case reflect.Array:
		out := reflect.New(rv.Type()).Elem()
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(cloneReflect(rv.Index(i)))
		}
		return out
	case reflect.Map:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), cloneReflect(iter.Value()))
		}
		return out
	case reflect.Interface:
		if rv.IsNil() {
			return rv
		}
		out := reflect.New(rv.Type()).Elem()
		out.Set(cloneReflect(rv.Elem()))
		return out
	default:
		return rv
	}
}

// flatten returns the elements of a slice value, or the value itself as single element.
// Only the top level is flattened, nested slices stay nested.
func flatten(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{v}
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// merge combines two values into a single level list: flatten(a) followed by flatten(b)
func merge(a, b any) []any {
	fa, fb := flatten(a), flatten(b)
	out := make([]any, 0, len(fa)+len(fb))
	out = append(out, fa...)
	return append(out, fb...)
}

// --------------------------------------------------------------------------
// Equality
// --------------------------------------------------------------------------

// StrictEqual reports whether a and b have the same dynamic type and are equal.
// Comparable values use ==, which means pointers are compared by identity.
// Slices, maps and structs containing them are compared deeply.
func StrictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if va.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// LooseEqual compares with type coercion: numbers and numeric strings compare
// by value (1 == 1.0 == "1"), booleans by truthiness and nil equals every empty value.
func LooseEqual(a, b any) bool {
	if StrictEqual(a, b) {
		return true
	}
	if a == nil || b == nil {
		return isEmpty(a) && isEmpty(b)
	}
	if _, ok := a.(bool); ok {
		return truthy(a) == truthy(b)
	}
	if _, ok := b.(bool); ok {
		return truthy(a) == truthy(b)
	}
	if isNumber(a) || isNumber(b) {
		fa, okA := toNumber(a)
		fb, okB := toNumber(b)
		return okA && okB && fa == fb
	}
	sa, errA := cast.ToStringE(a)
	sb, errB := cast.ToStringE(b)
	if errA == nil && errB == nil {
		return sa == sb
	}
	return reflect.DeepEqual(a, b)
}

func equal(a, b any, strict bool) bool {
	if strict {
		return StrictEqual(a, b)
	}
	return LooseEqual(a, b)
}

// isEmpty reports whether v is nil, false, zero, the empty string or an empty slice/map
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return rv.IsZero()
	}
}

func truthy(v any) bool {
	if s, ok := v.(string); ok {
		return s != "" && s != "0"
	}
	return !isEmpty(v)
}

// --------------------------------------------------------------------------
// Numbers
// --------------------------------------------------------------------------

// isNumber reports whether v has a numeric type (strings are not numbers)
func isNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return true
	default:
		return false
	}
}

// toNumber converts numbers, numeric strings and booleans to float64.
// nil and everything else is not a number.
func toNumber(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// round rounds x to the given number of decimal places, precision < 0 disables rounding
func round(x float64, precision int) float64 {
	if precision < 0 {
		return x
	}
	p := math.Pow(10, float64(precision))
	return math.Round(x*p) / p
}

// --------------------------------------------------------------------------
// Ordering
// --------------------------------------------------------------------------

// SortMode selects how values are compared by SortBy, Min and Max
type SortMode uint8

const (
	SortRegular SortMode = iota // numbers numerically when both sides are numeric, otherwise as strings
	SortNumeric                 // everything as number, non-numeric values count as 0
	SortString                  // everything as string
)

func (m SortMode) String() string {
	switch m {
	case SortRegular:
		return "regular"
	case SortNumeric:
		return "numeric"
	case SortString:
		return "string"
	default:
		return "unknown"
	}
}

// Compare orders two values using SortRegular. nil sorts before everything else.
func Compare(a, b any) int {
	return compareMode(a, b, SortRegular)
}

// CompareWith returns a comparison function for the given mode
func CompareWith(mode SortMode) func(a, b any) int {
	return func(a, b any) int {
		return compareMode(a, b, mode)
	}
}

func compareMode(a, b any, mode SortMode) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	switch mode {
	case SortNumeric:
		fa, _ := toNumber(a)
		fb, _ := toNumber(b)
		return cmp.Compare(fa, fb)
	case SortString:
		return cmp.Compare(toString(a), toString(b))
	default:
		fa, okA := toNumber(a)
		fb, okB := toNumber(b)
		if okA && okB {
			return cmp.Compare(fa, fb)
		}
		return cmp.Compare(toString(a), toString(b))
	}
}

func toString(v any) string {
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}
