// Package frame holds the small set of table primitives the pipeline is built
// from: hash indexes for left joins, ordered group-by, ordinal window ranks,
// horizon expansion and null-aware aggregates over *float64 columns.
//
// Rows are plain structs in slices; primitives return indices or new slices
// and never modify their input.
package frame

import "sort"

// IndexBy builds a lookup table from rows. When two rows share a key the
// later one wins.
func IndexBy[K comparable, R any](rows []R, key func(R) K) map[K]R {
	idx := make(map[K]R, len(rows))
	for _, r := range rows {
		idx[key(r)] = r
	}
	return idx
}

// Grouping is the result of GroupBy: row indices per key, with keys kept in
// first-seen order so iteration is deterministic.
type Grouping[K comparable] struct {
	keys []K
	rows map[K][]int
}

// GroupBy partitions row indices by key.
func GroupBy[K comparable, R any](rows []R, key func(R) K) Grouping[K] {
	g := Grouping[K]{rows: make(map[K][]int)}
	for i, r := range rows {
		k := key(r)
		if _, ok := g.rows[k]; !ok {
			g.keys = append(g.keys, k)
		}
		g.rows[k] = append(g.rows[k], i)
	}
	return g
}

// Keys returns group keys in first-seen order.
func (g Grouping[K]) Keys() []K { return g.keys }

// Rows returns the row indices of one group in input order.
func (g Grouping[K]) Rows(k K) []int { return g.rows[k] }

// Len is the number of groups.
func (g Grouping[K]) Len() int { return len(g.keys) }

// RankOrdinal assigns ranks 1..n inside each group, ordered by less. Rows for
// which include returns false get a nil rank and do not consume a rank slot.
// Equal rows keep input order, so ranks within a group never repeat.
func RankOrdinal[K comparable, R any](rows []R, key func(R) K, include func(R) bool, less func(a, b R) bool) []*int {
	ranks := make([]*int, len(rows))
	groups := GroupBy(rows, key)
	for _, k := range groups.Keys() {
		members := make([]int, 0, len(groups.Rows(k)))
		for _, i := range groups.Rows(k) {
			if include == nil || include(rows[i]) {
				members = append(members, i)
			}
		}
		sort.SliceStable(members, func(a, b int) bool {
			return less(rows[members[a]], rows[members[b]])
		})
		for pos, i := range members {
			rank := pos + 1
			ranks[i] = &rank
		}
	}
	return ranks
}

// Horizon returns n consecutive seasons beginning at start.
func Horizon(start, n int) []int {
	if n <= 0 {
		return nil
	}
	seasons := make([]int, n)
	for i := range seasons {
		seasons[i] = start + i
	}
	return seasons
}

// Sum adds the non-nil values. An empty or all-nil input sums to 0.
func Sum(values ...*float64) float64 {
	var total float64
	for _, v := range values {
		if v != nil {
			total += *v
		}
	}
	return total
}

// Max returns the largest non-nil value, or nil when there is none.
func Max(values ...*float64) *float64 {
	var best *float64
	for _, v := range values {
		if v == nil {
			continue
		}
		if best == nil || *v > *best {
			x := *v
			best = &x
		}
	}
	return best
}

// Sub returns a-b, or nil when either operand is nil.
func Sub(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	d := *a - *b
	return &d
}

// Column gathers one nullable column for the given row indices.
func Column[R any](rows []R, idx []int, col func(R) *float64) []*float64 {
	out := make([]*float64, len(idx))
	for j, i := range idx {
		out[j] = col(rows[i])
	}
	return out
}
