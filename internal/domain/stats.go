package domain

// Stats summarises a record set. Distances are rounded to 1 decimal.
type Stats struct {
	Teams           int
	Runners         int
	Runs            int
	TotalDistance   float64
	AverageDistance float64
}

// Summarize computes Stats over records. An empty set yields the zero value;
// callers decide whether that is a no-data condition.
func Summarize(records []ActivityRecord) Stats {
	if len(records) == 0 {
		return Stats{}
	}
	teams := make(map[string]struct{})
	runners := make(map[string]struct{})
	var sum float64
	for _, rec := range records {
		teams[rec.Team] = struct{}{}
		runners[rec.Runner] = struct{}{}
		sum += rec.Distance
	}
	return Stats{
		Teams:           len(teams),
		Runners:         len(runners),
		Runs:            len(records),
		TotalDistance:   Round(sum, 1),
		AverageDistance: Round(sum/float64(len(records)), 1),
	}
}
