package repositories

import (
	"database/sql"
	"errors"
	"smart-route-optimizer/internal/domain"
	"time"
)

var errNilDB = errors.New("history repository: DB is nil")

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// runColumns holds the nullable selection columns shared by both backends.
type runColumns struct {
	runID          int64
	start, end     string
	outcome        string
	candidateCount int
	selStart       sql.NullString
	selEnd         sql.NullString
	duration       sql.NullFloat64
	distance       sql.NullFloat64
}

func (c runColumns) toDomain(createdAt time.Time) domain.OptimizationRun {
	run := domain.OptimizationRun{
		RunID: c.runID,
		Query: domain.RouteQuery{
			Start: domain.Location(c.start),
			End:   domain.Location(c.end),
		},
		Outcome:        domain.Outcome(c.outcome),
		CandidateCount: c.candidateCount,
		CreatedAt:      createdAt,
	}

	if c.duration.Valid && c.distance.Valid {
		run.Selected = &domain.RouteCandidate{
			Start:           domain.Location(c.selStart.String),
			End:             domain.Location(c.selEnd.String),
			DurationMinutes: c.duration.Float64,
			DistanceKm:      c.distance.Float64,
		}
	}

	return run
}

// selectedArgs returns the nullable selection columns for an insert.
func selectedArgs(s *domain.RouteCandidate) (any, any, any, any) {
	if s == nil {
		return nil, nil, nil, nil
	}
	return string(s.Start), string(s.End), s.DurationMinutes, s.DistanceKm
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
