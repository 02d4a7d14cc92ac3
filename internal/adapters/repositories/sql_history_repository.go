package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"smart-route-optimizer/internal/domain"
)

// SQLHistoryRepository is a postgres-backed HistoryRepository (pgx stdlib driver).
type SQLHistoryRepository struct {
	DB *sql.DB
}

func NewSQLHistoryRepository(db *sql.DB) *SQLHistoryRepository {
	return &SQLHistoryRepository{DB: db}
}

// Store one optimization run.
func (s *SQLHistoryRepository) RecordRun(ctx context.Context, run domain.OptimizationRun) (int64, error) {
	if s.DB == nil {
		return 0, errNilDB
	}

	selStart, selEnd, duration, distance := selectedArgs(run.Selected)

	q := `
	INSERT INTO optimization_runs (
		start_location, end_location, outcome, candidate_count,
		selected_start, selected_end, duration_minutes, distance_km, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING run_id;
	`

	var id int64
	err := s.DB.QueryRowContext(ctx, q,
		string(run.Query.Start),
		string(run.Query.End),
		string(run.Outcome),
		run.CandidateCount,
		selStart, selEnd, duration, distance,
		run.CreatedAt.UTC(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("record run: insert optimization_runs: %w", err)
	}

	return id, nil
}

// Return the most recent runs, newest first.
func (s *SQLHistoryRepository) ListRuns(ctx context.Context, limit int) ([]domain.OptimizationRun, error) {
	if s.DB == nil {
		return nil, errNilDB
	}

	q := `
	SELECT run_id, start_location, end_location, outcome, candidate_count,
		selected_start, selected_end, duration_minutes, distance_km, created_at
	FROM optimization_runs
	ORDER BY created_at DESC, run_id DESC
	LIMIT $1;
	`

	rows, err := s.DB.QueryContext(ctx, q, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list runs: query optimization_runs table: %w", err)
	}
	defer rows.Close()

	runs := make([]domain.OptimizationRun, 0, clampLimit(limit))
	for rows.Next() {
		var c runColumns
		var createdAt sql.NullTime
		if err := rows.Scan(
			&c.runID, &c.start, &c.end, &c.outcome, &c.candidateCount,
			&c.selStart, &c.selEnd, &c.duration, &c.distance, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("list runs: scan rows: %w", err)
		}
		runs = append(runs, c.toDomain(createdAt.Time.UTC()))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return runs, nil
}
