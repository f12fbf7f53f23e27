package registry

import (
	"fmt"
	"io"
	"reflect"
	"slices"

	"github.com/ValentinKolb/dColl/lib/collection"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rcrowley/go-metrics"
)

var plog = logger.GetLogger("registry")

// Registry holds named collections. It is safe for concurrent use; the
// collections themselves are not, see collection.Collection.
type Registry struct {
	collections *xsync.MapOf[string, collection.ICollection]

	stats   metrics.Registry
	size    metrics.Gauge
	lookups metrics.Counter
	misses  metrics.Counter
}

// New creates an empty registry with its own metrics registry
func New() *Registry {
	stats := metrics.NewRegistry()
	size := metrics.NewGauge()
	_ = stats.Register("registry.collections", size)

	return &Registry{
		collections: xsync.NewMapOf[string, collection.ICollection](),
		stats:       stats,
		size:        size,
		lookups:     metrics.GetOrRegisterCounter("registry.lookups", stats),
		misses:      metrics.GetOrRegisterCounter("registry.misses", stats),
	}
}

// Register adds a collection under name. Fails if the name is empty or already taken.
func (r *Registry) Register(name string, c collection.ICollection) error {
	if name == "" {
		return fmt.Errorf("collection name must not be empty")
	}
	if isNil(c) {
		return fmt.Errorf("collection %q is nil", name)
	}
	if _, loaded := r.collections.LoadOrStore(name, c); loaded {
		return fmt.Errorf("collection %q already registered", name)
	}
	r.size.Update(int64(r.collections.Size()))
	plog.Debugf("registered %s collection %q", c.Kind(), name)
	return nil
}

// isNil also catches a nil container pointer stored in the interface
func isNil(c collection.ICollection) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Put adds or replaces the collection under name
func (r *Registry) Put(name string, c collection.ICollection) {
	r.collections.Store(name, c)
	r.size.Update(int64(r.collections.Size()))
}

// Get returns the collection registered under name
func (r *Registry) Get(name string) (collection.ICollection, bool) {
	r.lookups.Inc(1)
	c, ok := r.collections.Load(name)
	if !ok {
		r.misses.Inc(1)
	}
	return c, ok
}

// Remove deletes the collection registered under name and reports whether it existed
func (r *Registry) Remove(name string) bool {
	_, ok := r.collections.LoadAndDelete(name)
	r.size.Update(int64(r.collections.Size()))
	return ok
}

// Len returns the number of registered collections
func (r *Registry) Len() int {
	return r.collections.Size()
}

// Names returns the names of all registered collections in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, r.collections.Size())
	r.collections.Range(func(name string, _ collection.ICollection) bool {
		names = append(names, name)
		return true
	})
	slices.Sort(names)
	return names
}

// Range calls fn for every collection in sorted name order until fn returns false
func (r *Registry) Range(fn func(name string, c collection.ICollection) bool) {
	for _, name := range r.Names() {
		c, ok := r.collections.Load(name)
		if !ok {
			continue
		}
		if !fn(name, c) {
			return
		}
	}
}

// LockAll makes every registered collection read-only (where the state is not fixed yet)
func (r *Registry) LockAll() {
	r.collections.Range(func(_ string, c collection.ICollection) bool {
		c.Lock()
		return true
	})
}

// Stats returns the metrics registry with the counters of this registry
func (r *Registry) Stats() metrics.Registry {
	return r.stats
}

// WriteStats writes all metrics of the registry in a human readable format
func (r *Registry) WriteStats(w io.Writer) {
	metrics.WriteOnce(r.stats, w)
}
