package ports

import (
	"context"
	"smart-route-optimizer/internal/domain"
)

// Contract for retrieving candidate routes between two locations.
type RouteProvider interface {
	// Return every candidate route the provider proposes for the query.
	// An empty slice with a nil error means the provider answered with no routes.
	FetchCandidates(ctx context.Context, query domain.RouteQuery) ([]domain.RouteCandidate, error)
}
