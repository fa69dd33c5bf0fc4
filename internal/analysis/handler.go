package analysis

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ziwei/internal/chart/models"
)

// patternsRequest carries the palace set of a previously computed chart.
type patternsRequest struct {
	Palaces []models.Palace `json:"palaces"`
}

type patternsResponse struct {
	Sihua    map[string]string `json:"sihua"`
	Patterns []Match           `json:"patterns"`
}

// Handler exposes the pattern rules over HTTP.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/patterns", h.matchPatterns)
	return r
}

func (h *Handler) matchPatterns(w http.ResponseWriter, r *http.Request) {
	var req patternsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}
	if len(req.Palaces) == 0 {
		writeError(w, http.StatusBadRequest, "palaces must not be empty")
		return
	}

	sihua := map[string]string{}
	for tag, palace := range ScanSihua(req.Palaces) {
		sihua[string(tag)] = palace
	}

	writeJSON(w, http.StatusOK, patternsResponse{
		Sihua:    sihua,
		Patterns: Evaluate(req.Palaces),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
