package collection

import (
	"errors"
	"fmt"

	"github.com/ValentinKolb/dColl/lib/store"
)

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode),
// the kind of the collection and, if applicable, the offending key.
type Error struct {
	Code  RetCode    // The return code
	Kind  Kind       // The kind (key policy) of the collection that raised the error
	Key   *store.Key // The offending key (nil if not key related)
	Msg   string     // The error message
	Cause error      // The wrapped cause (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("CollectionError (code %s, kind %s): %s", e.Code, e.Kind, e.Msg)
	if e.Key != nil {
		msg += fmt.Sprintf(" (key %#v)", *e.Key)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the wrapped cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code.
// This makes errors.Is(err, ErrReadOnly) work for every read-only violation.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewError creates a new collection error with the given code and message.
func NewError(code RetCode, kind Kind, msg string) *Error {
	return &Error{
		Code: code,
		Kind: kind,
		Msg:  msg,
	}
}

// newKeyError creates an invalid key error for the given key
func newKeyError(kind Kind, key store.Key, msg string) *Error {
	return &Error{
		Code: RetCInvalidKey,
		Kind: kind,
		Key:  &key,
		Msg:  msg,
	}
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess           RetCode = iota // 0: Operation executed successfully.
	RetCReadOnlyViolation                // 1: Mutation of a read-only collection.
	RetCInvalidKey                       // 2: Key does not satisfy the key policy.
	RetCInvalidArgument                  // 3: Malformed argument (e.g. missing callback).
	RetCInvalidValue                     // 4: Value rejected by the value validator.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCReadOnlyViolation:
		return "ReadOnlyViolation"
	case RetCInvalidKey:
		return "InvalidKey"
	case RetCInvalidArgument:
		return "InvalidArgument"
	case RetCInvalidValue:
		return "InvalidValue"
	default:
		return "Unknown"
	}
}

// Sentinel errors for errors.Is checks. They match any *Error with the same code.
var (
	ErrReadOnly        = &Error{Code: RetCReadOnlyViolation, Msg: "collection is read-only"}
	ErrInvalidKey      = &Error{Code: RetCInvalidKey, Msg: "invalid key"}
	ErrInvalidArgument = &Error{Code: RetCInvalidArgument, Msg: "invalid argument"}
	ErrInvalidValue    = &Error{Code: RetCInvalidValue, Msg: "invalid value"}
)
