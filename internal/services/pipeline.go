package services

import (
	"context"
	"errors"
	"fmt"
	"smart-route-optimizer/internal/domain"
	"smart-route-optimizer/internal/platform/obs"
	"smart-route-optimizer/internal/ports"
	"time"

	"go.uber.org/zap"
)

var (
	ErrFetchFailed    = errors.New("failed to fetch route data")
	ErrOptimizeFailed = errors.New("failed to find an optimal route")
)

// Pipeline fetches candidates for a query and selects the fastest one.
// History is optional; when set, every run outcome is recorded.
type Pipeline struct {
	Provider ports.RouteProvider
	History  ports.HistoryRepository
	Log      *zap.Logger
	Now      func() time.Time
}

func NewPipeline(provider ports.RouteProvider, history ports.HistoryRepository, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{Provider: provider, History: history, Log: log, Now: time.Now}
}

// OptimalRoute runs fetch then select for one query.
//
// A failed fetch returns an error wrapping ErrFetchFailed and the optimizer
// is not invoked. A failed selection wraps ErrOptimizeFailed. There is no
// partial result in either case.
func (p *Pipeline) OptimalRoute(ctx context.Context, query domain.RouteQuery) (_ domain.RouteCandidate, err error) {
	defer obs.Time(ctx, p.Log, "pipeline.OptimalRoute")(&err)

	candidates, err := p.Fetch(ctx, query)
	if err != nil {
		return domain.RouteCandidate{}, err
	}

	return p.Select(ctx, query, candidates)
}

// Fetch is the first pipeline step: retrieve candidates from the provider.
// Errors wrap ErrFetchFailed and are recorded as OutcomeFetchFailed.
func (p *Pipeline) Fetch(ctx context.Context, query domain.RouteQuery) ([]domain.RouteCandidate, error) {
	if p.Provider == nil {
		return nil, fmt.Errorf("%w: provider is nil", ErrFetchFailed)
	}

	candidates, err := p.Provider.FetchCandidates(ctx, query)
	if err != nil {
		p.record(ctx, query, domain.OutcomeFetchFailed, 0, nil)
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	return candidates, nil
}

// Select is the second pipeline step: pick the fastest of the fetched candidates.
// Errors wrap ErrOptimizeFailed. Every call records its outcome.
func (p *Pipeline) Select(
	ctx context.Context,
	query domain.RouteQuery,
	candidates []domain.RouteCandidate,
) (domain.RouteCandidate, error) {
	best, err := SelectFastest(candidates)
	if err != nil {
		p.record(ctx, query, domain.OutcomeOptimizeFailed, len(candidates), nil)
		return domain.RouteCandidate{}, fmt.Errorf("%w: %w", ErrOptimizeFailed, err)
	}

	p.record(ctx, query, domain.OutcomeOK, len(candidates), &best)
	return best, nil
}

// record stores the outcome when a history repository is configured.
// Write failures are logged and never change the pipeline result.
func (p *Pipeline) record(
	ctx context.Context,
	query domain.RouteQuery,
	outcome domain.Outcome,
	count int,
	selected *domain.RouteCandidate,
) {
	if p.History == nil {
		return
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	run := domain.OptimizationRun{
		Query:          query,
		Outcome:        outcome,
		CandidateCount: count,
		Selected:       selected,
		CreatedAt:      now().UTC(),
	}
	if _, err := p.History.RecordRun(ctx, run); err != nil {
		p.Log.Warn("history write failed",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.String("outcome", string(outcome)),
			zap.Error(err),
		)
	}
}
