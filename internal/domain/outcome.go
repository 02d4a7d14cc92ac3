package domain

import "time"

// Outcome classifies how a single pipeline run ended.
type Outcome string

const (
	OutcomeOK             Outcome = "ok"
	OutcomeFetchFailed    Outcome = "fetch_failed"
	OutcomeOptimizeFailed Outcome = "optimize_failed"
)

// Records the result of one optimization run.
// Selected is nil unless Outcome is OutcomeOK.
type OptimizationRun struct {
	RunID          int64
	Query          RouteQuery
	Outcome        Outcome
	CandidateCount int
	Selected       *RouteCandidate
	CreatedAt      time.Time
}
