package source

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/leaderboard/internal/config"
	"example.com/leaderboard/internal/persistence/postgres"
)

// FromConfig builds the Reader selected by cfg.SourceKind. The returned
// close function releases any connection the reader holds.
func FromConfig(ctx context.Context, cfg config.Config) (Reader, func(), error) {
	noop := func() {}

	switch cfg.SourceKind {
	case config.SourceCSV, "":
		return NewFileCSV(cfg.SourcePath), noop, nil
	case config.SourceHTTP:
		if cfg.SourceURL == "" {
			return nil, noop, fmt.Errorf("SOURCE_URL is required for source kind %q", cfg.SourceKind)
		}
		return NewHTTPCSV(cfg.SourceURL, cfg.HTTPTimeout), noop, nil
	case config.SourcePostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return postgres.NewRepository(pool), pool.Close, nil
	case config.SourceSQLite:
		db, err := Open(DriverSQLite, cfg.SourcePath)
		if err != nil {
			return nil, noop, err
		}
		return NewSQL(db, cfg.SourceQuery), func() { db.Close() }, nil
	case config.SourceMySQL:
		db, err := Open(DriverMySQL, cfg.SourceURL)
		if err != nil {
			return nil, noop, err
		}
		return NewSQL(db, cfg.SourceQuery), func() { db.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unsupported source kind: %s", cfg.SourceKind)
	}
}
