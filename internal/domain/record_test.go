package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeCoercesAndRounds(t *testing.T) {
	rows := []Row{
		{"Runner": " Alice ", "Team": "Hares", "Distance": "5.256", "Date": "2025-09-01 18:30:00"},
		{"Runner": "Bob", "Team": "Hares", "Distance": 3, "Date": time.Date(2025, 9, 2, 23, 59, 0, 0, time.UTC)},
		{"runner": "Cara", "team": "Owls", "distance": 7.5, "date": "9/3/2025", "period": "2025-Q3", "archive": "Y"},
	}

	got := Normalize(rows)
	require.Equal(t, 0, got.Rejected)
	require.Len(t, got.Records, 3)

	require.Equal(t, "Alice", got.Records[0].Runner)
	require.Equal(t, 5.26, got.Records[0].Distance)
	require.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), got.Records[0].Date)
	require.False(t, got.Records[0].Archive)

	require.Equal(t, 3.0, got.Records[1].Distance)
	require.Equal(t, time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC), got.Records[1].Date)

	require.Equal(t, "Cara", got.Records[2].Runner)
	require.Equal(t, "2025-Q3", got.Records[2].Period)
	require.True(t, got.Records[2].Archive)
	require.Equal(t, time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC), got.Records[2].Date)
}

func TestNormalizeDropsInvalidRows(t *testing.T) {
	rows := []Row{
		{"Runner": "Alice", "Team": "Hares", "Distance": "abc", "Date": "2025-09-01"},
		{"Runner": "Bob", "Team": "Hares", "Distance": "4", "Date": "not a date"},
		{"Runner": "", "Team": "Hares", "Distance": "4", "Date": "2025-09-01"},
		{"Runner": "Dan", "Distance": "4", "Date": "2025-09-01"},
		{"Runner": "Eve", "Team": "Owls", "Distance": "-1", "Date": "2025-09-01"},
		{"Runner": "Fay", "Team": "Owls", "Distance": math.NaN(), "Date": "2025-09-01"},
		{"Runner": "Gus", "Team": "Owls", "Distance": nil, "Date": "2025-09-01"},
		{"Runner": "Hal", "Team": "Owls", "Distance": "2.5", "Date": "2025-09-01"},
	}

	got := Normalize(rows)
	require.Equal(t, 7, got.Rejected)
	require.Equal(t, 8, got.Total())
	require.Len(t, got.Records, 1)
	require.Equal(t, "Hal", got.Records[0].Runner)
}

func TestNormalizeKeepsDuplicateRuns(t *testing.T) {
	rows := []Row{
		{"Runner": "Alice", "Team": "Hares", "Distance": "5", "Date": "2025-09-01"},
		{"Runner": "Alice", "Team": "Hares", "Distance": "5", "Date": "2025-09-01"},
	}
	got := Normalize(rows)
	require.Len(t, got.Records, 2)
}

func TestRound(t *testing.T) {
	require.Equal(t, 1.24, Round(1.235000001, 2))
	require.Equal(t, 10.0, Round(9.96, 1))
	require.Equal(t, 0.0, Round(0.004, 2))
}
