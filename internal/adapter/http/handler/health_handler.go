package handler

import (
	"context"
	"net/http"
	"time"
)

// Pinger reports whether the state backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	backend Pinger
	name    string
}

// NewHealthHandler creates a new HealthHandler. name labels the backend in readiness output.
func NewHealthHandler(backend Pinger, name string) *HealthHandler {
	return &HealthHandler{
		backend: backend,
		name:    name,
	}
}

// Liveness returns 200 if the service is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness returns 200 if the state backend answers.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.backend.Ping(ctx); err != nil {
		writeError(w, http.StatusServiceUnavailable, h.name+" unhealthy", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		h.name:   "ok",
	})
}
