package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/civicair/enviro-api/internal/report"
)

// SubmitReportRequest is the JSON body of a report submission. The detection
// block is optional; a missing one is treated as zero confidence.
type SubmitReportRequest struct {
	Category     string            `json:"category"`
	Latitude     float64           `json:"latitude"`
	Longitude    float64           `json:"longitude"`
	LocationName string            `json:"locationName"`
	Detection    *report.Detection `json:"detection,omitempty"`
}

func handleSubmitReport(logger *slog.Logger, reports *report.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SubmitReportRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Category = strings.TrimSpace(req.Category)
		req.LocationName = strings.TrimSpace(req.LocationName)
		if req.Category == "" || req.LocationName == "" {
			writeError(w, http.StatusBadRequest, "category and locationName are required")
			return
		}
		if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
			writeError(w, http.StatusBadRequest, "coordinates out of range")
			return
		}

		result, err := reports.Submit(r.Context(), report.SubmitInput{
			Category:     req.Category,
			Latitude:     req.Latitude,
			Longitude:    req.Longitude,
			LocationName: req.LocationName,
			Detection:    req.Detection,
		})
		if err != nil {
			logger.Error("report submission failed", "error", err)
			writeError(w, http.StatusInternalServerError, "report submission failed")
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func handleReportStatus(reports *report.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reportID := chi.URLParam(r, "reportID")

		status, err := reports.Status(r.Context(), reportID)
		if errors.Is(err, report.ErrReportNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to fetch status")
			return
		}

		writeJSON(w, http.StatusOK, status)
	}
}

func handleReportStats(reports *report.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := reports.Stats(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to aggregate reports")
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}
