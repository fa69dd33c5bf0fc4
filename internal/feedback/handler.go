package feedback

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ziwei/pkg/platform/sentinel"
)

// Handler exposes submission publicly and the listing behind the admin gate.
type Handler struct {
	feedback *Service
	logger   *slog.Logger
}

func NewHandler(feedback *Service, logger *slog.Logger) *Handler {
	return &Handler{feedback: feedback, logger: logger}
}

// PublicRoutes carries the open submission endpoint, mounted under
// /api/feedback.
func (h *Handler) PublicRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.submit)
	return r
}

// AdminRoutes carries the token-gated listing endpoints; the caller mounts
// them under /admin/feedback behind the admin middleware.
func (h *Handler) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Get("/stats", h.stats)
	return r
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var entry Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}

	stored, err := h.feedback.Submit(r.Context(), entry)
	if err != nil {
		if errors.Is(err, sentinel.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.ErrorContext(r.Context(), "feedback submission failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not store feedback")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":         stored.ID,
		"created_at": stored.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.feedback.List(r.Context(), limit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "feedback listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list feedback")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"feedback": entries})
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.feedback.Summary(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "feedback stats failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not compute stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
