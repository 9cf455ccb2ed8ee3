package domain

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// TopPerformers is how many entrants a period's chart shows.
const TopPerformers = 10

// PeriodBoard holds one archive period's leaderboards.
type PeriodBoard struct {
	Period   string
	Stats    Stats
	Teams    []Standing[string]
	Entrants []Standing[Entrant]
	Members  Membership
}

// TopEntrants returns the first TopPerformers entrants.
func (p PeriodBoard) TopEntrants() []Standing[Entrant] {
	if len(p.Entrants) <= TopPerformers {
		return p.Entrants
	}
	return p.Entrants[:TopPerformers]
}

// PeriodSummary is one row of the cross-period roll-up.
type PeriodSummary struct {
	Period string
	Stats
}

// Archive is the period view of the archived record set.
type Archive struct {
	Entries int
	Boards  []PeriodBoard
}

// Periods returns the distinct, non-empty period labels found in records,
// most recent first. When every label is numeric they compare as numbers,
// otherwise as strings.
func Periods(records []ActivityRecord) []string {
	seen := make(map[string]struct{})
	labels := make([]string, 0)
	for _, rec := range records {
		if rec.Period == "" {
			continue
		}
		if _, ok := seen[rec.Period]; ok {
			continue
		}
		seen[rec.Period] = struct{}{}
		labels = append(labels, rec.Period)
	}

	if numeric, ok := numericLabels(labels); ok {
		slices.SortFunc(labels, func(a, b string) int {
			if c := cmp.Compare(numeric[b], numeric[a]); c != 0 {
				return c
			}
			return cmp.Compare(b, a)
		})
		return labels
	}
	slices.SortFunc(labels, func(a, b string) int { return cmp.Compare(b, a) })
	return labels
}

func numericLabels(labels []string) (map[string]float64, bool) {
	values := make(map[string]float64, len(labels))
	for _, label := range labels {
		v, err := strconv.ParseFloat(strings.TrimSpace(label), 64)
		if err != nil {
			return nil, false
		}
		values[label] = v
	}
	return values, true
}

// RecordsForPeriod filters records to one period label, keeping input order.
func RecordsForPeriod(records []ActivityRecord, period string) []ActivityRecord {
	out := make([]ActivityRecord, 0)
	for _, rec := range records {
		if rec.Period == period {
			out = append(out, rec)
		}
	}
	return out
}

// BuildArchive ranks teams and entrants for every period in the archived set.
// Periods whose filtered record set is empty are skipped.
func BuildArchive(archived []ActivityRecord) Archive {
	archive := Archive{Entries: len(archived)}
	for _, period := range Periods(archived) {
		records := RecordsForPeriod(archived, period)
		if len(records) == 0 {
			continue
		}
		archive.Boards = append(archive.Boards, PeriodBoard{
			Period:   period,
			Stats:    Summarize(records),
			Teams:    Rank(TotalsByTeam(records), Unlimited),
			Entrants: Rank(TotalsByEntrant(records), Unlimited),
			Members:  BuildMembership(records),
		})
	}
	return archive
}

// Board returns the board for period.
func (a Archive) Board(period string) (PeriodBoard, bool) {
	for _, b := range a.Boards {
		if b.Period == period {
			return b, true
		}
	}
	return PeriodBoard{}, false
}

// Labels lists the periods that have boards, most recent first.
func (a Archive) Labels() []string {
	out := make([]string, len(a.Boards))
	for i, b := range a.Boards {
		out[i] = b.Period
	}
	return out
}

// Summary is the cross-period roll-up, one row per non-empty period.
func (a Archive) Summary() []PeriodSummary {
	out := make([]PeriodSummary, 0, len(a.Boards))
	for _, b := range a.Boards {
		if b.Stats.Runs == 0 {
			continue
		}
		out = append(out, PeriodSummary{Period: b.Period, Stats: b.Stats})
	}
	return out
}
