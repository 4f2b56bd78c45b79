package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/civicair/enviro-api/internal/aqi"
	"github.com/civicair/enviro-api/internal/detect"
	"github.com/civicair/enviro-api/internal/report"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = serviceName
	r.Spec.Info.Version = serviceVersion
	r.Spec.Info.WithDescription("Real-time synthetic environmental data and AI-assisted citizen reporting.")

	// GET /
	getRoot, _ := r.NewOperationContext(http.MethodGet, "/")
	getRoot.SetSummary("Service health")
	getRoot.SetDescription("Returns service identity and a timestamp.")
	getRoot.AddRespStructure(RootResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getRoot)

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Dependency health")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/aqi/current
	getCurrent, _ := r.NewOperationContext(http.MethodGet, "/api/aqi/current")
	getCurrent.SetSummary("Current AQI")
	getCurrent.SetDescription("Synthetic current air quality reading for a city. Pass ?city=.")
	getCurrent.AddRespStructure(aqi.Reading{}, openapi.WithHTTPStatus(http.StatusOK))
	getCurrent.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getCurrent)

	// GET /api/aqi/history
	getHistory, _ := r.NewOperationContext(http.MethodGet, "/api/aqi/history")
	getHistory.SetSummary("AQI history")
	getHistory.SetDescription("Hourly (range=24h) or daily (range=7d) series for a city.")
	getHistory.AddRespStructure([]aqi.HistoryPoint{}, openapi.WithHTTPStatus(http.StatusOK))
	getHistory.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getHistory)

	// GET /api/cities
	getCities, _ := r.NewOperationContext(http.MethodGet, "/api/cities")
	getCities.SetSummary("All cities")
	getCities.SetDescription("Current snapshot per monitored city, worst air quality first.")
	getCities.AddRespStructure([]aqi.CitySnapshot{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getCities)

	// GET /api/insights/aqi
	getInsights, _ := r.NewOperationContext(http.MethodGet, "/api/insights/aqi")
	getInsights.SetSummary("AQI insights")
	getInsights.SetDescription("Trend and rank commentary for a city. Pass ?city=.")
	getInsights.AddRespStructure(aqi.Insight{}, openapi.WithHTTPStatus(http.StatusOK))
	getInsights.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getInsights)

	// GET /api/stream/aqi
	getStream, _ := r.NewOperationContext(http.MethodGet, "/api/stream/aqi")
	getStream.SetSummary("AQI event stream")
	getStream.SetDescription("Server-Sent Events stream of current readings for a city. Pass ?city=.")
	getStream.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	getStream.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getStream)

	// POST /api/report/analyze-image
	postAnalyze, _ := r.NewOperationContext(http.MethodPost, "/api/report/analyze-image")
	postAnalyze.SetSummary("Analyze image")
	postAnalyze.SetDescription("AI-assisted image classification. Multipart field 'file'. Assistive, not authoritative.")
	postAnalyze.AddRespStructure(detect.Result{}, openapi.WithHTTPStatus(http.StatusOK))
	postAnalyze.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postAnalyze.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	_ = r.AddOperation(postAnalyze)

	// POST /api/report/submit
	postSubmit, _ := r.NewOperationContext(http.MethodPost, "/api/report/submit")
	postSubmit.SetSummary("Submit report")
	postSubmit.SetDescription("Submit a citizen environmental report for validation. Returns a tracking identifier.")
	postSubmit.AddReqStructure(SubmitReportRequest{})
	postSubmit.AddRespStructure(report.SubmitResult{}, openapi.WithHTTPStatus(http.StatusOK))
	postSubmit.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postSubmit)

	// GET /api/report/status/{reportID}
	getStatus, _ := r.NewOperationContext(http.MethodGet, "/api/report/status/{reportID}")
	getStatus.SetSummary("Report status")
	getStatus.SetDescription("Current validation status of a submitted report. A validating report resolves on query.")
	getStatus.AddReqStructure(struct {
		ReportID string `path:"reportID"`
	}{})
	getStatus.AddRespStructure(report.StatusResult{}, openapi.WithHTTPStatus(http.StatusOK))
	getStatus.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getStatus)

	// GET /api/report/stats
	getStats, _ := r.NewOperationContext(http.MethodGet, "/api/report/stats")
	getStats.SetSummary("Report statistics")
	getStats.AddRespStructure(report.Stats{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getStats)

	// GET /api/model/info
	getModel, _ := r.NewOperationContext(http.MethodGet, "/api/model/info")
	getModel.SetSummary("Model info")
	getModel.AddRespStructure(detect.ModelInfo{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getModel)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write(data)
	}
}
