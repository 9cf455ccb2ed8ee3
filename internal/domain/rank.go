package domain

import (
	"cmp"
	"slices"
	"strconv"
)

var medals = [3]string{"🥇", "🥈", "🥉"}

// PositionLabel renders a 1-based rank. The podium gets medals; every other
// rank is its number.
func PositionLabel(rank int) string {
	if rank >= 1 && rank <= len(medals) {
		return medals[rank-1]
	}
	return strconv.Itoa(rank)
}

// Standing is one ranked entry.
type Standing[K comparable] struct {
	Rank     int
	Position string
	Key      K
	Distance float64
}

// Unlimited disables truncation in Rank.
const Unlimited = 0

// Rank orders totals by distance descending. Ties keep first-encounter order.
// When limit is positive the result is cut to the top limit entries after
// sorting.
func Rank[K comparable](totals Totals[K], limit int) []Standing[K] {
	entries := totals.Entries()
	slices.SortStableFunc(entries, func(a, b Total[K]) int {
		return cmp.Compare(b.Distance, a.Distance)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	out := make([]Standing[K], len(entries))
	for i, e := range entries {
		out[i] = Standing[K]{
			Rank:     i + 1,
			Position: PositionLabel(i + 1),
			Key:      e.Key,
			Distance: e.Distance,
		}
	}
	return out
}
