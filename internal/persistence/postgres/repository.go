// Package postgres stores the raw activity log in PostgreSQL. Values are kept
// as the text the writer supplied; coercion happens when a snapshot is built.
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/leaderboard/internal/domain"
)

// Schema creates the activity_log table when it does not exist.
const Schema = `CREATE TABLE IF NOT EXISTS activity_log (
    id          BIGSERIAL PRIMARY KEY,
    runner      TEXT,
    team        TEXT,
    distance    TEXT,
    activity_date TEXT,
    period      TEXT,
    archive     TEXT,
    received_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Entry is one raw log line as submitted upstream.
type Entry struct {
	Runner     string
	Team       string
	Distance   string
	Date       string
	Period     string
	Archive    string
	ReceivedAt time.Time
}

// Repository provides Postgres-backed access to the activity log.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema applies Schema.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, Schema)
	return err
}

// Append inserts one entry.
func (r *Repository) Append(ctx context.Context, entry Entry) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	receivedAt := entry.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}

	_, err = conn.Exec(ctx,
		`INSERT INTO activity_log (runner, team, distance, activity_date, period, archive, received_at)
         VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		entry.Runner,
		entry.Team,
		entry.Distance,
		entry.Date,
		nullIfEmpty(entry.Period),
		nullIfEmpty(entry.Archive),
		receivedAt,
	)
	return err
}

// Read returns every log row in insertion order.
func (r *Repository) Read(ctx context.Context) ([]domain.Row, error) {
	const query = `SELECT runner, team, distance, activity_date, period, archive
        FROM activity_log ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.Row, 0)
	for rows.Next() {
		var runner, team, distance, date, period, archive *string
		if err := rows.Scan(&runner, &team, &distance, &date, &period, &archive); err != nil {
			return nil, err
		}
		row := domain.Row{
			domain.ColumnRunner:   deref(runner),
			domain.ColumnTeam:     deref(team),
			domain.ColumnDistance: deref(distance),
			domain.ColumnDate:     deref(date),
			domain.ColumnPeriod:   deref(period),
		}
		if archive != nil {
			row[domain.ColumnArchive] = *archive
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func nullIfEmpty(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}

func deref(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}
