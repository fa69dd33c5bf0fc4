package reading

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ziwei/internal/chart/service"
	"ziwei/pkg/platform/sentinel"
)

// Handler proxies reading requests to the collaborator.
type Handler struct {
	readings *Service
	logger   *slog.Logger
}

func NewHandler(readings *Service, logger *slog.Logger) *Handler {
	return &Handler{readings: readings, logger: logger}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.requestReading)
	return r
}

// requestReading takes the computed chart the caller already holds; the
// collaborator never sees raw birth data beyond what the summary carries.
func (h *Handler) requestReading(w http.ResponseWriter, r *http.Request) {
	var chart service.Result
	if err := json.NewDecoder(r.Body).Decode(&chart); err != nil {
		writeError(w, http.StatusBadRequest, "request body is not a chart result")
		return
	}
	if len(chart.Palaces) == 0 {
		writeError(w, http.StatusBadRequest, "chart result has no palaces")
		return
	}

	narrative, err := h.readings.Read(r.Context(), &chart)
	if err != nil {
		if errors.Is(err, sentinel.ErrUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "narrative collaborator is unavailable")
			return
		}
		h.logger.ErrorContext(r.Context(), "reading request failed", "error", err)
		writeError(w, http.StatusBadGateway, "reading request failed")
		return
	}

	writeJSON(w, http.StatusOK, narrative)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
