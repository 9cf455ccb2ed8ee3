package domain

// Entrant identifies a runner within a team. The same runner logging for two
// teams yields two entrants.
type Entrant struct {
	Runner string
	Team   string
}

// Total is the summed distance for one grouping key.
type Total[K comparable] struct {
	Key      K
	Distance float64
}

// Totals maps grouping keys to summed distance. Keys are kept in the order
// they were first encountered in the scanned records, which is the order the
// Ranker falls back to on ties.
type Totals[K comparable] struct {
	entries []Total[K]
	index   map[K]int
}

// Aggregate sums distance per key. Duplicate rows for the same key are all
// summed, none are collapsed. Sums are rounded to 2 decimals.
func Aggregate[K comparable](records []ActivityRecord, key func(ActivityRecord) K) Totals[K] {
	t := Totals[K]{index: make(map[K]int)}
	for _, rec := range records {
		k := key(rec)
		i, ok := t.index[k]
		if !ok {
			i = len(t.entries)
			t.index[k] = i
			t.entries = append(t.entries, Total[K]{Key: k})
		}
		t.entries[i].Distance += rec.Distance
	}
	for i := range t.entries {
		t.entries[i].Distance = Round(t.entries[i].Distance, 2)
	}
	return t
}

// TotalsByTeam groups by team.
func TotalsByTeam(records []ActivityRecord) Totals[string] {
	return Aggregate(records, func(r ActivityRecord) string { return r.Team })
}

// TotalsByRunner groups by runner name alone.
func TotalsByRunner(records []ActivityRecord) Totals[string] {
	return Aggregate(records, func(r ActivityRecord) string { return r.Runner })
}

// TotalsByEntrant groups by the (runner, team) pair.
func TotalsByEntrant(records []ActivityRecord) Totals[Entrant] {
	return Aggregate(records, func(r ActivityRecord) Entrant {
		return Entrant{Runner: r.Runner, Team: r.Team}
	})
}

// Len reports the number of distinct keys.
func (t Totals[K]) Len() int { return len(t.entries) }

// Get returns the summed distance for key.
func (t Totals[K]) Get(key K) (float64, bool) {
	i, ok := t.index[key]
	if !ok {
		return 0, false
	}
	return t.entries[i].Distance, true
}

// Entries returns a copy of the totals in first-encounter order.
func (t Totals[K]) Entries() []Total[K] {
	out := make([]Total[K], len(t.entries))
	copy(out, t.entries)
	return out
}

// Sum is the total distance across all keys.
func (t Totals[K]) Sum() float64 {
	var sum float64
	for _, e := range t.entries {
		sum += e.Distance
	}
	return sum
}
