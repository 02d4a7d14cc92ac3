package services

import (
	"errors"
	"math"
	"smart-route-optimizer/internal/domain"
)

var ErrNoCandidates = errors.New("invalid input: no route candidates provided")

// Select the candidate with the minimum travel duration.
//
// Selection is strictly by DurationMinutes; distance is not considered.
// Candidates whose duration is NaN are not comparable and are skipped.
// When several candidates share the minimum, the first one wins so the
// result is deterministic for a given provider ordering.
func SelectFastest(candidates []domain.RouteCandidate) (domain.RouteCandidate, error) {
	var best domain.RouteCandidate
	found := false

	for _, c := range candidates {
		if math.IsNaN(c.DurationMinutes) {
			continue
		}
		if !found || c.DurationMinutes < best.DurationMinutes {
			best = c
			found = true
		}
	}

	if !found {
		return domain.RouteCandidate{}, ErrNoCandidates
	}

	return best, nil
}
