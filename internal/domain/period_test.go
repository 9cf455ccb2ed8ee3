package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func archivedRecords() []ActivityRecord {
	return []ActivityRecord{
		{Runner: "A", Team: "X", Distance: 5, Period: "2025-Q1", Archive: true},
		{Runner: "B", Team: "Y", Distance: 6, Period: "2025-Q2", Archive: true},
		{Runner: "A", Team: "X", Distance: 2.25, Period: "2025-Q1", Archive: true},
		{Runner: "C", Team: "Y", Distance: 4, Period: "2025-Q1", Archive: true},
		{Runner: "D", Team: "Z", Distance: 1, Archive: true},
	}
}

func TestPeriodsMostRecentFirst(t *testing.T) {
	require.Equal(t, []string{"2025-Q2", "2025-Q1"}, Periods(archivedRecords()))
	require.Empty(t, Periods(nil))
}

func TestPeriodsCompareNumericLabelsAsNumbers(t *testing.T) {
	records := []ActivityRecord{{Period: "9"}, {Period: "10"}, {Period: "11"}, {Period: "10"}}
	require.Equal(t, []string{"11", "10", "9"}, Periods(records))

	mixed := []ActivityRecord{{Period: "2"}, {Period: "2025-Q1"}, {Period: "10"}}
	require.Equal(t, []string{"2025-Q1", "2", "10"}, Periods(mixed))
}

func TestBuildArchive(t *testing.T) {
	archive := BuildArchive(archivedRecords())

	require.Equal(t, 5, archive.Entries)
	require.Equal(t, []string{"2025-Q2", "2025-Q1"}, archive.Labels())

	q1, ok := archive.Board("2025-Q1")
	require.True(t, ok)
	require.Equal(t, "X", q1.Teams[0].Key)
	require.Equal(t, 7.25, q1.Teams[0].Distance)
	require.Equal(t, "🥇", q1.Teams[0].Position)
	require.Equal(t, "Y", q1.Teams[1].Key)
	require.Equal(t, Entrant{Runner: "A", Team: "X"}, q1.Entrants[0].Key)
	require.Len(t, q1.Entrants, 2)
	members, ok := q1.Members.Members("Y")
	require.True(t, ok)
	require.Equal(t, []string{"C"}, members)
	require.Equal(t, Stats{Teams: 2, Runners: 2, Runs: 3, TotalDistance: 11.3, AverageDistance: 3.8}, q1.Stats)

	_, ok = archive.Board("2024-Q4")
	require.False(t, ok)
}

func TestArchiveSummaryRoundsToOneDecimal(t *testing.T) {
	rows := BuildArchive(archivedRecords()).Summary()

	require.Len(t, rows, 2)
	require.Equal(t, PeriodSummary{Period: "2025-Q2", Stats: Stats{Teams: 1, Runners: 1, Runs: 1, TotalDistance: 6, AverageDistance: 6}}, rows[0])
	require.Equal(t, "2025-Q1", rows[1].Period)
	require.Equal(t, 11.3, rows[1].TotalDistance)
	require.Equal(t, 3.8, rows[1].AverageDistance)
}

func TestArchiveSummaryExcludesEmptyPeriods(t *testing.T) {
	archive := Archive{Boards: []PeriodBoard{
		{Period: "P2", Stats: Stats{Teams: 1, Runners: 1, Runs: 2, TotalDistance: 3}},
		{Period: "P1"},
	}}
	rows := archive.Summary()
	require.Len(t, rows, 1)
	require.Equal(t, "P2", rows[0].Period)
}

func TestTopEntrantsCapsAtTen(t *testing.T) {
	records := make([]ActivityRecord, 0)
	for i := 0; i < 12; i++ {
		records = append(records, ActivityRecord{Runner: string(rune('a' + i)), Team: "T", Distance: float64(i), Period: "P", Archive: true})
	}
	board, ok := BuildArchive(records).Board("P")
	require.True(t, ok)
	require.Len(t, board.Entrants, 12)
	top := board.TopEntrants()
	require.Len(t, top, TopPerformers)
	require.Equal(t, "l", top[0].Key.Runner)
}
