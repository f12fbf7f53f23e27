package collection

// --------------------------------------------------------------------------
// Aggregates
// --------------------------------------------------------------------------
//
// Numbers, numeric strings and booleans take part in sum, product and average,
// all other values are skipped.

// Sum returns the sum of all numeric values (0 if there are none)
func (c *Collection) Sum() float64 {
	var sum float64
	for _, v := range c.entries.All() {
		if f, ok := toNumber(v); ok {
			sum += f
		}
	}
	return sum
}

// Product returns the product of all numeric values rounded to precision
// decimal places (precision < 0: no rounding). An empty collection has product 0.
func (c *Collection) Product(precision int) float64 {
	product, n := 1.0, 0
	for _, v := range c.entries.All() {
		if f, ok := toNumber(v); ok {
			product *= f
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return round(product, precision)
}

// Average returns the mean of all numeric values rounded to precision decimal places.
// ok is false if there are no numeric values.
func (c *Collection) Average(precision int) (avg float64, ok bool) {
	var sum float64
	n := 0
	for _, v := range c.entries.All() {
		if f, isNum := toNumber(v); isNum {
			sum += f
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return round(sum/float64(n), precision), true
}

// Min returns a copy of the smallest value (see Compare). ok is false for an empty collection.
func (c *Collection) Min() (any, bool) {
	return c.extreme(-1)
}

// Max returns a copy of the largest value (see Compare). ok is false for an empty collection.
func (c *Collection) Max() (any, bool) {
	return c.extreme(1)
}

// extreme returns the first value v for which Compare(v, other) has the sign of dir for all others
func (c *Collection) extreme(dir int) (any, bool) {
	var (
		best  any
		found bool
	)
	for _, v := range c.entries.All() {
		if !found || Compare(v, best)*dir > 0 {
			best = v
			found = true
		}
	}
	return CloneValue(best), found
}
