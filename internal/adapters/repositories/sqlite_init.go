package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	createRunsQuery := `
	CREATE TABLE IF NOT EXISTS optimization_runs (
		run_id INTEGER PRIMARY KEY AUTOINCREMENT,
		start_location TEXT NOT NULL,
		end_location TEXT NOT NULL,
		outcome TEXT NOT NULL,
		candidate_count INTEGER NOT NULL,
		selected_start TEXT,
		selected_end TEXT,
		duration_minutes REAL,
		distance_km REAL,
		created_at TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_optimization_runs_created_at
	ON optimization_runs(created_at);
	`

	return execSchema(ctx, db, "init schema", createRunsQuery, createIndexQuery)
}

// Initialize the postgres database schema.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	createRunsQuery := `
	CREATE TABLE IF NOT EXISTS optimization_runs (
		run_id BIGSERIAL PRIMARY KEY,
		start_location TEXT NOT NULL,
		end_location TEXT NOT NULL,
		outcome TEXT NOT NULL,
		candidate_count INTEGER NOT NULL,
		selected_start TEXT,
		selected_end TEXT,
		duration_minutes DOUBLE PRECISION,
		distance_km DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_optimization_runs_created_at
	ON optimization_runs(created_at);
	`

	return execSchema(ctx, db, "init postgres schema", createRunsQuery, createIndexQuery)
}

func execSchema(ctx context.Context, db *sql.DB, op string, statements ...string) error {
	if db == nil {
		return fmt.Errorf("%s: DB is nil", op)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: exec statement #%d: %w", op, i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit tx: %w", op, err)
	}

	return nil
}
