package source

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"example.com/leaderboard/internal/domain"
)

// DefaultQuery selects the activity columns from the activity_log table.
const DefaultQuery = `SELECT runner AS Runner, team AS Team, distance AS Distance,
    activity_date AS Date, period AS Period, archive AS Archive
    FROM activity_log ORDER BY id`

// SQL reads rows from any database/sql driver. Result column names become
// row keys.
type SQL struct {
	db    *sql.DB
	query string
}

// NewSQL constructs a SQL source. An empty query uses DefaultQuery.
func NewSQL(db *sql.DB, query string) *SQL {
	if query == "" {
		query = DefaultQuery
	}
	return &SQL{db: db, query: query}
}

// Open opens and pings a database/sql connection with pool settings suited to
// a read-mostly workload.
func Open(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

// Read runs the query and returns one row per result.
func (s *SQL) Read(ctx context.Context) ([]domain.Row, error) {
	rows, err := s.db.QueryContext(ctx, s.query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	results := make([]domain.Row, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(domain.Row, len(columns))
		for i, name := range columns {
			if b, ok := values[i].([]byte); ok {
				row[name] = string(b)
				continue
			}
			row[name] = values[i]
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
