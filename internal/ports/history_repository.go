package ports

import (
	"context"
	"smart-route-optimizer/internal/domain"
)

// Port: a boundary for recording and listing optimization outcomes.
type HistoryRepository interface {
	// Persist one run and return its assigned id.
	RecordRun(ctx context.Context, run domain.OptimizationRun) (int64, error)
	// Return up to limit runs, most recent first.
	ListRuns(ctx context.Context, limit int) ([]domain.OptimizationRun, error)
}
