package server

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"

	"github.com/civicair/enviro-api/internal/aqi"
	"github.com/civicair/enviro-api/internal/detect"
	"github.com/civicair/enviro-api/internal/observability"
	"github.com/civicair/enviro-api/internal/report"
)

// Deps are the collaborators the HTTP surface exposes.
type Deps struct {
	Simulator *aqi.Simulator
	Detector  *detect.Detector
	Reports   *report.Processor
	Metrics   *observability.Metrics

	// DB is nil when the in-memory report store is selected; /healthz only
	// checks it when present.
	DB *sql.DB
}

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	r.Get("/", handleRoot())
	r.Get("/healthz", handleHealth(logger, deps.DB))
	r.Method("GET", "/metrics", promhttp.Handler())
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New(serviceName, "/openapi.json", "/docs"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/aqi/current", handleAQICurrent(deps.Simulator))
		r.Get("/aqi/history", handleAQIHistory(deps.Simulator))
		r.Get("/cities", handleCities(deps.Simulator))
		r.Get("/insights/aqi", handleInsights(deps.Simulator))
		r.Get("/stream/aqi", handleAQIStream(logger, deps.Simulator))

		r.Post("/report/analyze-image", handleAnalyzeImage(logger, deps.Detector, deps.Metrics))
		r.Post("/report/submit", handleSubmitReport(logger, deps.Reports))
		r.Get("/report/status/{reportID}", handleReportStatus(deps.Reports))
		r.Get("/report/stats", handleReportStats(deps.Reports))

		r.Get("/model/info", handleModelInfo(deps.Detector))
	})
}
