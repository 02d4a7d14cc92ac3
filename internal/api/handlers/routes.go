package handlers

import (
	"context"
	"errors"
	"net/http"
	"smart-route-optimizer/internal/api/dto"
	"smart-route-optimizer/internal/domain"
	"smart-route-optimizer/internal/platform/obs"
	"smart-route-optimizer/internal/ports"
	"smart-route-optimizer/internal/services"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// RouteOptimizer is the pipeline behaviour the handlers depend on.
type RouteOptimizer interface {
	OptimalRoute(ctx context.Context, query domain.RouteQuery) (domain.RouteCandidate, error)
}

// RouteHandler exposes the optimization pipeline and its run history.
type RouteHandler struct {
	Optimizer RouteOptimizer
	History   ports.HistoryRepository
	Log       *zap.Logger
}

// Optimal answers GET /routes/optimal?start=...&end=... with the fastest candidate.
func (h *RouteHandler) Optimal(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r, h.Log) {
		return
	}

	q := dto.OptimalRouteQuery{
		Start: strings.TrimSpace(r.URL.Query().Get("start")),
		End:   strings.TrimSpace(r.URL.Query().Get("end")),
	}
	if err := validate.Struct(q); err != nil {
		writeError(w, r, h.Log, http.StatusBadRequest, validationMessage(err))
		return
	}

	best, err := h.Optimizer.OptimalRoute(r.Context(), domain.RouteQuery{
		Start: domain.Location(q.Start),
		End:   domain.Location(q.End),
	})
	if err != nil {
		h.Log.Warn("optimal route failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.Error(err),
		)

		switch {
		case errors.Is(err, services.ErrFetchFailed):
			writeError(w, r, h.Log, http.StatusBadGateway, services.ErrFetchFailed.Error())
		case errors.Is(err, services.ErrOptimizeFailed):
			writeError(w, r, h.Log, http.StatusUnprocessableEntity, services.ErrOptimizeFailed.Error())
		default:
			writeError(w, r, h.Log, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, r, h.Log, http.StatusOK, toRouteResponse(best))
}

// ListHistory answers GET /routes/history?limit=N with the most recent runs.
func (h *RouteHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r, h.Log) {
		return
	}

	q := dto.HistoryQuery{Limit: 20}
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, h.Log, http.StatusBadRequest, "limit must be an integer")
			return
		}
		q.Limit = n
	}
	if err := validate.Struct(q); err != nil {
		writeError(w, r, h.Log, http.StatusBadRequest, validationMessage(err))
		return
	}

	runs, err := h.History.ListRuns(r.Context(), q.Limit)
	if err != nil {
		h.Log.Error("list runs failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.Error(err),
		)
		writeError(w, r, h.Log, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRunsResponse{Runs: make([]dto.RunResponse, 0, len(runs))}
	for _, run := range runs {
		item := dto.RunResponse{
			RunID:          run.RunID,
			Start:          string(run.Query.Start),
			End:            string(run.Query.End),
			Outcome:        string(run.Outcome),
			CandidateCount: run.CandidateCount,
			CreatedAt:      run.CreatedAt,
		}
		if run.Selected != nil {
			sel := toRouteResponse(*run.Selected)
			item.Selected = &sel
		}
		res.Runs = append(res.Runs, item)
	}

	writeJSON(w, r, h.Log, http.StatusOK, res)
}

func toRouteResponse(c domain.RouteCandidate) dto.RouteResponse {
	return dto.RouteResponse{
		Start:    string(c.Start),
		End:      string(c.End),
		Duration: c.DurationMinutes,
		Distance: c.DistanceKm,
	}
}
