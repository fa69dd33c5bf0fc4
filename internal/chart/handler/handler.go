// Package handler exposes the chart feature over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ziwei/internal/chart/models"
	"ziwei/internal/chart/service"
	"ziwei/pkg/platform/sentinel"
)

// ChartComputer is the slice of the chart service the handler needs.
type ChartComputer interface {
	Compute(ctx context.Context, birth models.BirthRecord) (*service.Result, error)
	Recent(ctx context.Context) ([]service.Result, error)
}

type Handler struct {
	charts ChartComputer
	logger *slog.Logger
}

func New(charts ChartComputer, logger *slog.Logger) *Handler {
	return &Handler{charts: charts, logger: logger}
}

// Routes mounts the chart endpoints on a fresh subrouter; the caller mounts
// it under /api/chart.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.computeChart)
	r.Get("/recent", h.recentCharts)
	return r
}

func (h *Handler) computeChart(w http.ResponseWriter, r *http.Request) {
	var birth models.BirthRecord
	if err := json.NewDecoder(r.Body).Decode(&birth); err != nil {
		writeError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}

	result, err := h.charts.Compute(r.Context(), birth)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, sentinel.ErrUnavailable):
			h.logger.ErrorContext(r.Context(), "chart engine unreachable", "error", err)
			writeError(w, http.StatusBadGateway, "chart engine is unavailable")
		default:
			h.logger.ErrorContext(r.Context(), "chart computation failed", "error", err)
			writeError(w, http.StatusBadGateway, "chart computation failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) recentCharts(w http.ResponseWriter, r *http.Request) {
	results, err := h.charts.Recent(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "recent charts lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list recent charts")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"charts": results})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
