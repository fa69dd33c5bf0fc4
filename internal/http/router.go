// Package http wires the feature handlers into the service's single router.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ziwei/internal/analysis"
	charthandler "ziwei/internal/chart/handler"
	"ziwei/internal/feedback"
	platformmetrics "ziwei/internal/platform/metrics"
	"ziwei/internal/reading"
	"ziwei/pkg/platform/middleware/admin"
	"ziwei/pkg/platform/middleware/metadata"
	"ziwei/pkg/platform/middleware/requesttime"
)

// Deps carries everything the router mounts.
type Deps struct {
	Charts   *charthandler.Handler
	Analysis *analysis.Handler
	Reading  *reading.Handler
	Feedback *feedback.Handler

	Metrics    *platformmetrics.Metrics
	AdminToken string
	Health     func() map[string]string
	Logger     *slog.Logger
}

// New assembles the full route tree.
func New(deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	r.Route("/api", func(api chi.Router) {
		api.Mount("/chart", deps.Charts.Routes())
		api.Mount("/analysis", deps.Analysis.Routes())
		api.Mount("/reading", deps.Reading.Routes())
		api.Mount("/feedback", deps.Feedback.PublicRoutes())
	})

	r.Route("/admin", func(adm chi.Router) {
		adm.Use(admin.RequireAdminToken(deps.AdminToken, deps.Logger))
		adm.Mount("/feedback", deps.Feedback.AdminRoutes())
	})

	r.Get("/healthz", healthHandler(deps.Health))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func healthHandler(health func() map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		status := http.StatusOK
		body := `{"status":"ok"`
		if health != nil {
			for name, state := range health() {
				if state != "ok" {
					status = http.StatusServiceUnavailable
				}
				body += `,"` + name + `":"` + state + `"`
			}
		}
		body += "}"
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}
