package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

// HealthHandler provides a minimal liveness check endpoint.
type HealthHandler struct {
	Log *zap.Logger
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r, h.Log) {
		return
	}

	res := map[string]string{"status": "ok"}
	writeJSON(w, r, h.Log, http.StatusOK, res)
}
