package registry

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/ValentinKolb/dColl/lib/collection"
	"github.com/ValentinKolb/dColl/lib/containers"
	"github.com/ValentinKolb/dColl/lib/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newList(t *testing.T, values ...any) collection.ICollection {
	t.Helper()
	l, err := containers.NewList(values)
	require.NoError(t, err)
	return l
}

func TestRegisterAndGet(t *testing.T) {
	r := New()

	require.NoError(t, r.Register("b", newList(t, 1)))
	require.NoError(t, r.Register("a", newList(t, 2)))
	assert.Error(t, r.Register("a", newList(t, 3)))
	assert.Error(t, r.Register("", newList(t)))
	assert.Error(t, r.Register("nil", nil))

	var typedNil *collection.Collection
	assert.Error(t, r.Register("typed-nil", typedNil))
	_, ok := r.Get("typed-nil")
	assert.False(t, ok)

	c, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, c.Get(store.IntKey(0), nil))

	_, ok = r.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"a", "b"}, r.Names())
	assert.Equal(t, 2, r.Len())

	assert.Equal(t, int64(2), r.Stats().Get("registry.lookups").(interface{ Count() int64 }).Count())
	assert.Equal(t, int64(1), r.Stats().Get("registry.misses").(interface{ Count() int64 }).Count())
	assert.Equal(t, int64(2), r.Stats().Get("registry.collections").(interface{ Value() int64 }).Value())
}

func TestPutRemoveAndRange(t *testing.T) {
	r := New()
	r.Put("x", newList(t, "old"))
	r.Put("x", newList(t, "new"))
	r.Put("y", newList(t))

	var visited []string
	r.Range(func(name string, c collection.ICollection) bool {
		visited = append(visited, name)
		return false
	})
	assert.Equal(t, []string{"x"}, visited)

	c, _ := r.Get("x")
	assert.Equal(t, "new", c.Get(store.IntKey(0), nil))

	assert.True(t, r.Remove("x"))
	assert.False(t, r.Remove("x"))
	assert.Equal(t, 1, r.Len())
}

func TestLockAll(t *testing.T) {
	r := New()
	a, b := newList(t), newList(t)
	require.NoError(t, r.Register("a", a))
	require.NoError(t, r.Register("b", b))

	r.LockAll()
	assert.ErrorIs(t, a.Append(1), collection.ErrReadOnly)
	assert.ErrorIs(t, b.Append(1), collection.ErrReadOnly)
}

func TestConcurrentRegister(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l, err := containers.NewList(nil)
			if err != nil {
				t.Error(err)
				return
			}
			_ = r.Register(fmt.Sprintf("c%d", i%8), l)
			r.Get(fmt.Sprintf("c%d", i%8))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 8, r.Len())
}

func TestWriteStats(t *testing.T) {
	r := New()
	r.Get("none")

	var buf bytes.Buffer
	r.WriteStats(&buf)
	assert.Contains(t, buf.String(), "registry.misses")
}
