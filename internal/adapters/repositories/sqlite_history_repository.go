package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"smart-route-optimizer/internal/domain"
	"time"
)

// Fixed-width UTC layout so text ordering matches time ordering.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLite-backed implementation of the HistoryRepository port.
type SqliteHistoryRepository struct{ DB *sql.DB }

func NewSqliteHistoryRepository(db *sql.DB) *SqliteHistoryRepository {
	return &SqliteHistoryRepository{DB: db}
}

// Store one optimization run.
func (s *SqliteHistoryRepository) RecordRun(ctx context.Context, run domain.OptimizationRun) (int64, error) {
	if s.DB == nil {
		return 0, errNilDB
	}

	selStart, selEnd, duration, distance := selectedArgs(run.Selected)

	query := `
	INSERT INTO optimization_runs (
		start_location,
		end_location,
		outcome,
		candidate_count,
		selected_start,
		selected_end,
		duration_minutes,
		distance_km,
		created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	res, err := s.DB.ExecContext(ctx, query,
		string(run.Query.Start),
		string(run.Query.End),
		string(run.Outcome),
		run.CandidateCount,
		selStart, selEnd, duration, distance,
		run.CreatedAt.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("record run: insert optimization_runs: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record run: last insert id: %w", err)
	}

	return id, nil
}

// Return the most recent runs, newest first.
func (s *SqliteHistoryRepository) ListRuns(ctx context.Context, limit int) ([]domain.OptimizationRun, error) {
	if s.DB == nil {
		return nil, errNilDB
	}

	query := `
	SELECT
		run_id,
		start_location,
		end_location,
		outcome,
		candidate_count,
		selected_start,
		selected_end,
		duration_minutes,
		distance_km,
		created_at
	FROM optimization_runs
	ORDER BY created_at DESC, run_id DESC
	LIMIT ?;
	`
	rows, err := s.DB.QueryContext(ctx, query, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list runs: query optimization_runs table: %w", err)
	}
	defer rows.Close()

	runs := make([]domain.OptimizationRun, 0, clampLimit(limit))
	for rows.Next() {
		var c runColumns
		var createdAt string
		if err := rows.Scan(
			&c.runID, &c.start, &c.end, &c.outcome, &c.candidateCount,
			&c.selStart, &c.selEnd, &c.duration, &c.distance, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}

		ts, err := time.Parse(sqliteTimeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("list runs: parse created_at of run %d: %w", c.runID, err)
		}
		runs = append(runs, c.toDomain(ts))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return runs, nil
}
