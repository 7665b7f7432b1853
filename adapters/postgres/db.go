// Package postgres implements the optional persistence adapters: the verdict
// cache and the pipeline run history.
package postgres

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Connect opens and pings a Postgres connection.
func Connect(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS verdict_cache (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS pipeline_runs (
	id          UUID PRIMARY KEY,
	description TEXT NOT NULL,
	started_at  TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL,
	generated   INT NOT NULL,
	payload     JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pipeline_runs_started_at ON pipeline_runs (started_at DESC);
`

// EnsureSchema creates the tables used by this package.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	start := time.Now()
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return err
	}
	log.Printf("[Postgres] Schema ensured in %v", time.Since(start))
	return nil
}
