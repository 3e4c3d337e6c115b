package api

import (
	"net/http"

	"github.com/guruchat/guru/internal/chat"
	"github.com/guruchat/guru/internal/log"
	"github.com/guruchat/guru/internal/persona"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	catalog *persona.Catalog
	svc     *chat.Service
	logger  log.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(catalog *persona.Catalog, svc *chat.Service, logger log.Logger) *HealthHandler {
	return &HealthHandler{catalog: catalog, svc: svc, logger: logger}
}

// RegisterRoutes registers health routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.liveness)
	mux.HandleFunc("GET /ready", h.readiness)
}

// liveness is a liveness probe endpoint.
// Returns 200 OK if the process is alive.
func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// readiness is a readiness probe endpoint.
// Returns 200 OK if the persona catalog and chat service are wired.
func (h *HealthHandler) readiness(w http.ResponseWriter, _ *http.Request) {
	if h.catalog == nil || h.catalog.Len() == 0 {
		h.logger.Error("readiness check failed", "reason", "empty persona catalog")
		http.Error(w, "persona catalog not loaded", http.StatusServiceUnavailable)
		return
	}
	if h.svc == nil {
		http.Error(w, "chat service not configured", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
