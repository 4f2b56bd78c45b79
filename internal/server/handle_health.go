package server

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"
)

// HealthResponse reports per-dependency health.
type HealthResponse map[string]struct {
	Status string `json:"status"`
}

func handleHealth(logger *slog.Logger, db *sql.DB) http.HandlerFunc {
	type result struct {
		Status string `json:"status"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]result{
			"api": {Status: "ok"},
		}
		status := http.StatusOK

		if db != nil {
			checks["sqlite"] = result{Status: "ok"}
			if err := db.PingContext(ctx); err != nil {
				logger.Error("health check failed", "name", "sqlite", "error", err)
				checks["sqlite"] = result{Status: "error"}
				status = http.StatusServiceUnavailable
			}
		}

		writeJSON(w, status, checks)
	}
}
