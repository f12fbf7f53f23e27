package collection

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestReadOnlyStateFirstInitWins(t *testing.T) {
	var s ReadOnlyState
	assert.Nil(t, s.GetOrInit(nil))
	assert.Equal(t, ReadOnlyUnset, s.State())
	assert.NoError(t, s.CheckWritable())

	got := s.GetOrInit(boolPtr(true))
	require.NotNil(t, got)
	assert.True(t, *got)

	got = s.GetOrInit(boolPtr(false))
	require.NotNil(t, got)
	assert.True(t, *got, "second initialisation must be ignored")

	s.Unlock()
	assert.True(t, s.IsReadOnly())

	err := s.CheckWritable()
	assert.ErrorIs(t, err, ErrReadOnly)
}

func TestReadOnlyStateUnlockFixesWritable(t *testing.T) {
	var s ReadOnlyState
	s.Unlock()
	s.Lock()

	assert.Equal(t, ReadOnlyFalse, s.State())
	assert.False(t, s.IsReadOnly())
	assert.False(t, *s.GetOrInit(nil))
}

func TestReadOnlyStateConcurrentInit(t *testing.T) {
	var (
		s  ReadOnlyState
		wg sync.WaitGroup
	)
	results := make([]bool, 50)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = *s.GetOrInit(boolPtr(i%2 == 0))
		}(i)
	}
	wg.Wait()

	// every caller sees the single winning value
	for _, r := range results {
		assert.Equal(t, results[0], r)
	}
}

func TestReadOnlyStatesAreIndependent(t *testing.T) {
	a, err := New(PolicyList, nil)
	require.NoError(t, err)
	b, err := New(PolicyList, nil)
	require.NoError(t, err)

	a.Lock()
	assert.True(t, a.IsReadOnly())
	assert.False(t, b.IsReadOnly())
	assert.NoError(t, b.Append("x"))
}

func TestErrorFormatting(t *testing.T) {
	c, err := New(PolicyMap, nil)
	require.NoError(t, err)
	c.Lock()

	err = c.Empty()
	var cerr *Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, RetCReadOnlyViolation, cerr.Code)
	assert.Equal(t, KindMap, cerr.Kind)
	assert.Contains(t, err.Error(), "ReadOnlyViolation")
	assert.Contains(t, err.Error(), "map")
	assert.False(t, errors.Is(err, ErrInvalidKey))
}
