package collection

import "sync/atomic"

// ReadOnlyFlag is the tri-state value of a ReadOnlyState
type ReadOnlyFlag uint32

const (
	ReadOnlyUnset ReadOnlyFlag = iota // never initialised, the collection is writable
	ReadOnlyTrue                      // locked, every mutation fails
	ReadOnlyFalse                     // explicitly writable, can not be locked anymore
)

func (f ReadOnlyFlag) String() string {
	switch f {
	case ReadOnlyUnset:
		return "unset"
	case ReadOnlyTrue:
		return "true"
	case ReadOnlyFalse:
		return "false"
	default:
		return "unknown"
	}
}

// ReadOnlyState is a write-lock flag that can be initialised exactly once.
// The zero value is ready to use and unset.
//
// Thread-safety: all methods are safe for concurrent use.
type ReadOnlyState struct {
	flag atomic.Uint32
}

// GetOrInit stores initial if the state is still unset and initial is not nil.
// It returns the stored value, or nil if the state was never initialised.
// Once set, later calls ignore their argument.
func (s *ReadOnlyState) GetOrInit(initial *bool) *bool {
	if initial != nil {
		s.init(*initial)
	}
	switch s.State() {
	case ReadOnlyTrue:
		v := true
		return &v
	case ReadOnlyFalse:
		v := false
		return &v
	default:
		return nil
	}
}

// Lock sets the state to read-only. No effect once the state is fixed.
func (s *ReadOnlyState) Lock() {
	s.init(true)
}

// Unlock fixes the state to writable. No effect once the state is fixed.
func (s *ReadOnlyState) Unlock() {
	s.init(false)
}

// State returns the current flag
func (s *ReadOnlyState) State() ReadOnlyFlag {
	return ReadOnlyFlag(s.flag.Load())
}

// IsReadOnly reports whether mutations are blocked
func (s *ReadOnlyState) IsReadOnly() bool {
	return s.State() == ReadOnlyTrue
}

// CheckWritable fails with a read-only violation if the state is locked.
// The returned error carries the code RetCReadOnlyViolation but no kind,
// collections fill that in.
func (s *ReadOnlyState) CheckWritable() error {
	if s.IsReadOnly() {
		return NewError(RetCReadOnlyViolation, KindUnknown, "collection is read-only")
	}
	return nil
}

// init sets the flag once, only the first call wins
func (s *ReadOnlyState) init(readOnly bool) bool {
	v := ReadOnlyFalse
	if readOnly {
		v = ReadOnlyTrue
	}
	return s.flag.CompareAndSwap(uint32(ReadOnlyUnset), uint32(v))
}
