package server

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/civicair/enviro-api/internal/detect"
	"github.com/civicair/enviro-api/internal/observability"
)

// maxImageBytes caps the multipart upload size.
const maxImageBytes = 10 << 20

func handleAnalyzeImage(logger *slog.Logger, detector *detect.Detector, metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)

		file, _, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "multipart field 'file' required")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "reading upload failed")
			return
		}

		result, err := detector.Analyze(data)
		if err != nil {
			logger.Error("image analysis failed", "error", err)
			if metrics != nil {
				metrics.ImageAnalyses.WithLabelValues("error").Inc()
			}
			writeError(w, http.StatusInternalServerError, "image analysis failed: "+err.Error())
			return
		}

		if metrics != nil {
			metrics.ImageAnalyses.WithLabelValues("success").Inc()
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func handleModelInfo(detector *detect.Detector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, detector.Info())
	}
}
