package handlers

import (
	"net/http"
	"time"

	"github.com/modkit-io/modkit/pkg/capability/lifecycle"
)

// HealthHandler handles the health probe endpoints.
type HealthHandler struct {
	manager *lifecycle.Manager
	version string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(manager *lifecycle.Manager, version string) *HealthHandler {
	return &HealthHandler{manager: manager, version: version}
}

// HealthResponse is the body of health probe responses.
type HealthResponse struct {
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
	Version    string    `json:"version,omitempty"`
	Generation string    `json:"generation,omitempty"`
}

// Liveness handles GET /health. Always healthy while the process serves.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	WriteJSONOK(w, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	})
}

// Readiness handles GET /health/ready. Ready once the lifecycle manager has
// completed initialization.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.manager == nil || !h.manager.Initialized() {
		WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "not_ready",
			Timestamp: time.Now().UTC(),
			Version:   h.version,
		})
		return
	}

	WriteJSONOK(w, HealthResponse{
		Status:     "ready",
		Timestamp:  time.Now().UTC(),
		Version:    h.version,
		Generation: string(h.manager.Generation()),
	})
}
