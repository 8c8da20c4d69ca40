// Package vote provides a small frequency tally used to reach consensus over
// repeated noisy observations.
package vote

import (
	"cmp"
	"slices"
)

// Entry is one tallied value and its count.
type Entry[K comparable] struct {
	Value K
	Count int
}

// Tally counts observations of comparable values. The zero value is not
// usable; construct with New.
type Tally[K comparable] struct {
	counts map[K]int
	order  []K
	total  int
}

// New returns an empty tally.
func New[K comparable]() *Tally[K] {
	return &Tally[K]{counts: make(map[K]int)}
}

// Add records one observation of value.
func (t *Tally[K]) Add(value K) {
	t.AddN(value, 1)
}

// AddN records n observations of value. Non-positive n is ignored.
func (t *Tally[K]) AddN(value K, n int) {
	if n <= 0 {
		return
	}
	if _, ok := t.counts[value]; !ok {
		t.order = append(t.order, value)
	}
	t.counts[value] += n
	t.total += n
}

// Count returns the number of observations of value.
func (t *Tally[K]) Count(value K) int {
	return t.counts[value]
}

// Len returns the number of distinct values.
func (t *Tally[K]) Len() int {
	return len(t.order)
}

// Total returns the number of observations.
func (t *Tally[K]) Total() int {
	return t.total
}

// MostCommon returns up to n entries ordered by descending count. Values with
// equal counts keep first-seen order. n <= 0 returns every entry.
func (t *Tally[K]) MostCommon(n int) []Entry[K] {
	entries := make([]Entry[K], 0, len(t.order))
	for _, value := range t.order {
		entries = append(entries, Entry[K]{Value: value, Count: t.counts[value]})
	}
	slices.SortStableFunc(entries, func(a, b Entry[K]) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}

// Winner returns the most common value. ok is false for an empty tally.
func (t *Tally[K]) Winner() (Entry[K], bool) {
	top := t.MostCommon(1)
	if len(top) == 0 {
		var zero Entry[K]
		return zero, false
	}
	return top[0], true
}
