// Package weighted implements weighted random selection over collection entries.
//
// An item is weighted if it implements Weighted or if it is a map[string]any with a
// numeric "weight" field. Selector.Select builds a pool of all weighted items (optionally
// restricted with WithMinWeight and WithMaxWeight) and picks one with a probability
// proportional to its weight. Entries that are not weighted items are skipped.
//
// The randomness is injectable through RandomSource, which makes selections
// reproducible in tests (see NewRandomSource for a seeded PCG source).
package weighted
