package weighted

import (
	"iter"
	"math/rand/v2"

	"github.com/ValentinKolb/dColl/lib/common"
	"github.com/ValentinKolb/dColl/lib/store"
	"github.com/VictoriaMetrics/metrics"
	"github.com/spf13/cast"
)

var selectionsTotal = metrics.NewCounter(`dcoll_weighted_selections_total`)

// --------------------------------------------------------------------------
// Random Source
// --------------------------------------------------------------------------

// RandomSource draws uniformly distributed numbers
type RandomSource interface {
	// Float64n returns a number in [0, max). max is always > 0.
	Float64n(max float64) float64
}

type pcgSource struct {
	rnd *rand.Rand
}

// NewRandomSource returns a PCG based RandomSource. A seed of 0 selects a random seed.
// The source is not safe for concurrent use.
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = common.GenerateSeed()
	}
	return &pcgSource{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *pcgSource) Float64n(max float64) float64 {
	return s.rnd.Float64() * max
}

// --------------------------------------------------------------------------
// Weighted Items
// --------------------------------------------------------------------------

// Weighted is implemented by values that carry their own weight
type Weighted interface {
	Weight() float64
}

// WeightField is the map key holding the weight of a map item
const WeightField = "weight"

// WeightOf returns the weight of a weighted item. Items are values implementing
// Weighted and maps with a numeric "weight" field. Everything else is not an item.
func WeightOf(value any) (float64, bool) {
	switch v := value.(type) {
	case Weighted:
		return v.Weight(), true
	case map[string]any:
		w, ok := v[WeightField]
		if !ok || w == nil {
			return 0, false
		}
		if _, isStr := w.(string); isStr {
			return 0, false
		}
		if _, isBool := w.(bool); isBool {
			return 0, false
		}
		f, err := cast.ToFloat64E(w)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// --------------------------------------------------------------------------
// Selector
// --------------------------------------------------------------------------

// SelectOption restricts the pool of candidates
type SelectOption func(o *selectOptions)

type selectOptions struct {
	min, max       float64
	hasMin, hasMax bool
}

// WithMinWeight excludes items with a weight below min
func WithMinWeight(min float64) SelectOption {
	return func(o *selectOptions) {
		o.min = min
		o.hasMin = true
	}
}

// WithMaxWeight excludes items with a weight above max
func WithMaxWeight(max float64) SelectOption {
	return func(o *selectOptions) {
		o.max = max
		o.hasMax = true
	}
}

func (o *selectOptions) accepts(w float64) bool {
	if o.hasMin && w < o.min {
		return false
	}
	if o.hasMax && w > o.max {
		return false
	}
	return true
}

// Selector picks entries at random, proportionally to their weight
type Selector struct {
	src RandomSource
}

// NewSelector returns a selector drawing from src. A nil src uses NewRandomSource(0).
func NewSelector(src RandomSource) *Selector {
	if src == nil {
		src = NewRandomSource(0)
	}
	return &Selector{src: src}
}

type candidate struct {
	entry  store.Entry
	weight float64
}

// Select picks one weighted item from entries:
//
//  1. The pool holds all weighted items whose weight is within the optional bounds.
//  2. An empty pool selects nothing, a single candidate is returned without a random draw.
//  3. If the total weight is 0 nothing is selected.
//  4. r is drawn uniformly from [0, total) and the first candidate (in iteration order)
//     whose cumulative weight is >= r is returned.
func (s *Selector) Select(entries iter.Seq2[store.Key, any], opts ...SelectOption) (store.Entry, bool) {
	o := &selectOptions{}
	for _, opt := range opts {
		opt(o)
	}

	var (
		pool  []candidate
		total float64
	)
	for k, v := range entries {
		w, ok := WeightOf(v)
		if !ok || !o.accepts(w) {
			continue
		}
		pool = append(pool, candidate{entry: store.Entry{Key: k, Value: v}, weight: w})
		total += w
	}

	switch {
	case len(pool) == 0:
		return store.Entry{}, false
	case len(pool) == 1:
		selectionsTotal.Inc()
		return pool[0].entry, true
	case total <= 0:
		return store.Entry{}, false
	}

	r := s.src.Float64n(total)
	var cumulative float64
	for _, c := range pool {
		cumulative += c.weight
		if cumulative >= r {
			selectionsTotal.Inc()
			return c.entry, true
		}
	}

	// only reachable through floating point rounding
	selectionsTotal.Inc()
	return pool[len(pool)-1].entry, true
}
