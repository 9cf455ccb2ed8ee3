package source

import (
	"context"
	"path/filepath"
	"testing"

	"example.com/leaderboard/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestSQLReadsSQLite(t *testing.T) {
	db, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "activity.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE activity_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		runner TEXT, team TEXT, distance REAL, activity_date TEXT,
		period TEXT, archive INTEGER)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO activity_log (runner, team, distance, activity_date, period, archive) VALUES
		('Alice', 'Hares', 5.25, '2025-09-01', NULL, NULL),
		('Bob', 'Owls', 7, '2025-06-01', '2025-Q2', 1),
		('Cara', 'Owls', -2, '2025-09-01', NULL, NULL)`)
	require.NoError(t, err)

	rows, err := NewSQL(db, "").Read(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "Alice", rows[0]["Runner"])
	require.Equal(t, 5.25, rows[0]["Distance"])
	require.Nil(t, rows[0]["Archive"])

	normalized := domain.Normalize(rows)
	require.Equal(t, 1, normalized.Rejected)
	current, archived := domain.Partition(normalized.Records)
	require.Len(t, current, 1)
	require.Len(t, archived, 1)
	require.Equal(t, "2025-Q2", archived[0].Period)
}

func TestSQLCustomQuery(t *testing.T) {
	db, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "custom.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE runs (who TEXT, squad TEXT, km TEXT, day TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO runs VALUES ('Alice', 'Hares', '4', '2025-09-01')`)
	require.NoError(t, err)

	rows, err := NewSQL(db, `SELECT who AS Runner, squad AS Team, km AS Distance, day AS Date FROM runs`).Read(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	normalized := domain.Normalize(rows)
	require.Len(t, normalized.Records, 1)
	require.Equal(t, 4.0, normalized.Records[0].Distance)
}
