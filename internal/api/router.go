package api

import (
	"net/http"
	"smart-route-optimizer/internal/api/handlers"
	"smart-route-optimizer/internal/ports"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// The history endpoint is only mounted when a repository is supplied.
func NewRouter(optimizer handlers.RouteOptimizer, history ports.HistoryRepository, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{
		Optimizer: optimizer,
		History:   history,
		Log:       log,
	}

	healthHandler := &handlers.HealthHandler{Log: log}

	mux.HandleFunc("/health", healthHandler.Check)
	mux.HandleFunc("/routes/optimal", routeHandler.Optimal)
	if history != nil {
		mux.HandleFunc("/routes/history", routeHandler.ListHistory)
	}

	return otelhttp.NewHandler(loggingMiddleware(log, mux), "route-optimizer")
}
