package api

import (
	"net/http"

	"github.com/guruchat/guru/internal/persona"
)

// PersonaHandler serves the persona catalog.
type PersonaHandler struct {
	catalog *persona.Catalog
}

// NewPersonaHandler creates a new persona handler.
func NewPersonaHandler(catalog *persona.Catalog) *PersonaHandler {
	return &PersonaHandler{catalog: catalog}
}

// RegisterRoutes registers persona routes on the given mux.
func (h *PersonaHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/personas", h.list)
}

// PersonaSummary is one catalog entry in the listing response.
// Prompt-internal fields (phrases, styles, guidelines) stay server-side.
type PersonaSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Expertise   []string `json:"expertise"`
}

// PersonaListResponse is the response body for GET /api/personas.
type PersonaListResponse struct {
	Personas []PersonaSummary `json:"personas"`
}

func (h *PersonaHandler) list(w http.ResponseWriter, _ *http.Request) {
	all := h.catalog.All()
	personas := make([]PersonaSummary, 0, len(all))
	for _, p := range all {
		personas = append(personas, PersonaSummary{
			ID:          p.ID,
			Name:        p.Name,
			Title:       p.Title,
			Description: p.Description,
			Expertise:   p.Expertise,
		})
	}
	writeJSON(w, http.StatusOK, PersonaListResponse{Personas: personas})
}
