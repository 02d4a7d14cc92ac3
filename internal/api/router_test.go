package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"smart-route-optimizer/internal/adapters/traffic"
	"smart-route-optimizer/internal/api/dto"
	"smart-route-optimizer/internal/domain"
	"smart-route-optimizer/internal/services"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHistory struct {
	runs      []domain.OptimizationRun
	lastLimit int
}

func (h *stubHistory) RecordRun(ctx context.Context, run domain.OptimizationRun) (int64, error) {
	run.RunID = int64(len(h.runs) + 1)
	h.runs = append([]domain.OptimizationRun{run}, h.runs...)
	return run.RunID, nil
}

func (h *stubHistory) ListRuns(ctx context.Context, limit int) ([]domain.OptimizationRun, error) {
	h.lastLimit = limit
	if limit < len(h.runs) {
		return h.runs[:limit], nil
	}
	return h.runs, nil
}

func newTestRouter(provider *traffic.MockRouteProvider, history *stubHistory) http.Handler {
	return NewRouter(services.NewPipeline(provider, history, nil), history, nil)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body["error"]
}

func TestHealth(t *testing.T) {
	router := newTestRouter(traffic.NewMockRouteProvider(nil), &stubHistory{})

	rec := get(t, router, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	router := newTestRouter(traffic.NewMockRouteProvider(nil), &stubHistory{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "fixed-id", rec.Header().Get("X-Request-ID"))
}

func TestOptimalRoute(t *testing.T) {
	provider := traffic.NewMockRouteProvider([]traffic.MockRoute{
		{From: "123 Main St", To: "456 Elm St", Minutes: 15, Km: 10},
		{From: "123 Main St", To: "456 Elm St", Minutes: 10, Km: 12.5},
		{From: "123 Main St", To: "456 Elm St", Minutes: 20, Km: 8},
	})
	history := &stubHistory{}
	router := newTestRouter(provider, history)

	rec := get(t, router, "/routes/optimal?start=123+Main+St&end=456+Elm+St")
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.RouteResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, dto.RouteResponse{Start: "123 Main St", End: "456 Elm St", Duration: 10, Distance: 12.5}, res)
	require.Len(t, history.runs, 1)
}

func TestOptimalRouteMissingParams(t *testing.T) {
	provider := traffic.NewMockRouteProvider(nil)
	router := newTestRouter(provider, &stubHistory{})

	rec := get(t, router, "/routes/optimal?start=A")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "end is required", decodeError(t, rec))

	rec = get(t, router, "/routes/optimal?start=+&end=")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "start is required; end is required", decodeError(t, rec))

	assert.Equal(t, 0, provider.Calls)
}

func TestOptimalRouteFetchFailure(t *testing.T) {
	provider := traffic.NewMockRouteProvider(nil)
	provider.Err = fmt.Errorf("dial: %w", traffic.ErrTransport)
	router := newTestRouter(provider, &stubHistory{})

	rec := get(t, router, "/routes/optimal?start=A&end=B")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "failed to fetch route data", decodeError(t, rec))
}

func TestOptimalRouteNoCandidates(t *testing.T) {
	provider := traffic.NewMockRouteProvider(nil)
	provider.SetCandidates("A", "B", nil)
	router := newTestRouter(provider, &stubHistory{})

	rec := get(t, router, "/routes/optimal?start=A&end=B")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "failed to find an optimal route", decodeError(t, rec))
}

func TestMethodNotAllowed(t *testing.T) {
	router := newTestRouter(traffic.NewMockRouteProvider(nil), &stubHistory{})

	for _, path := range []string{"/health", "/routes/optimal", "/routes/history"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
		assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"), path)
	}
}

func TestHistory(t *testing.T) {
	history := &stubHistory{}
	created := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	_, _ = history.RecordRun(context.Background(), domain.OptimizationRun{
		Query:     domain.RouteQuery{Start: "A", End: "B"},
		Outcome:   domain.OutcomeFetchFailed,
		CreatedAt: created,
	})
	_, _ = history.RecordRun(context.Background(), domain.OptimizationRun{
		Query:          domain.RouteQuery{Start: "A", End: "B"},
		Outcome:        domain.OutcomeOK,
		CandidateCount: 2,
		Selected:       &domain.RouteCandidate{Start: "A", End: "B", DurationMinutes: 7, DistanceKm: 3},
		CreatedAt:      created.Add(time.Minute),
	})
	router := newTestRouter(traffic.NewMockRouteProvider(nil), history)

	rec := get(t, router, "/routes/history")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 20, history.lastLimit)

	var res dto.ListRunsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	require.Len(t, res.Runs, 2)
	assert.Equal(t, "ok", res.Runs[0].Outcome)
	require.NotNil(t, res.Runs[0].Selected)
	assert.Equal(t, 7.0, res.Runs[0].Selected.Duration)
	assert.Equal(t, "fetch_failed", res.Runs[1].Outcome)
	assert.Nil(t, res.Runs[1].Selected)

	rec = get(t, router, "/routes/history?limit=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, history.lastLimit)
}

func TestHistoryInvalidLimit(t *testing.T) {
	router := newTestRouter(traffic.NewMockRouteProvider(nil), &stubHistory{})

	rec := get(t, router, "/routes/history?limit=abc")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "limit must be an integer", decodeError(t, rec))

	rec = get(t, router, "/routes/history?limit=500")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "limit must be between 1 and 100", decodeError(t, rec))
}

func TestHistoryNotMountedWithoutRepository(t *testing.T) {
	router := NewRouter(services.NewPipeline(traffic.NewMockRouteProvider(nil), nil, nil), nil, nil)

	rec := get(t, router, "/routes/history")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
