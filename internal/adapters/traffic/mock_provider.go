package traffic

import (
	"context"
	"fmt"
	"smart-route-optimizer/internal/domain"
)

type MockRoute struct {
	From, To string
	Minutes  float64
	Km       float64
}

// MockRouteProvider serves fixed candidates keyed by start|end.
// A configured Err is returned for every call.
type MockRouteProvider struct {
	m     map[string][]domain.RouteCandidate
	Err   error
	Calls int
}

func NewMockRouteProvider(routes []MockRoute) *MockRouteProvider {
	m := make(map[string][]domain.RouteCandidate, len(routes))
	for _, r := range routes {
		key := r.From + "|" + r.To
		m[key] = append(m[key], domain.RouteCandidate{
			Start:           domain.Location(r.From),
			End:             domain.Location(r.To),
			DurationMinutes: r.Minutes,
			DistanceKm:      r.Km,
		})
	}
	return &MockRouteProvider{m: m}
}

func (p *MockRouteProvider) FetchCandidates(ctx context.Context, query domain.RouteQuery) ([]domain.RouteCandidate, error) {
	p.Calls++
	if p.Err != nil {
		return nil, p.Err
	}

	c, ok := p.m[string(query.Start)+"|"+string(query.End)]
	if !ok {
		return nil, fmt.Errorf("missing pair %q -> %q: %w", query.Start, query.End, ErrUnexpectedStatus)
	}

	return c, nil
}

// SetCandidates replaces the candidates served for from|to, including with an empty slice.
func (p *MockRouteProvider) SetCandidates(from, to string, candidates []domain.RouteCandidate) {
	p.m[from+"|"+to] = candidates
}
