package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/civicair/enviro-api/internal/aqi"
)

// streamInterval is how often a fresh reading is pushed to SSE subscribers.
const streamInterval = 15 * time.Second

// handleAQIStream serves a Server-Sent Events stream of current readings for
// one city: an event immediately on connect, then one per interval until the
// client goes away.
func handleAQIStream(logger *slog.Logger, sim *aqi.Simulator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		city := r.URL.Query().Get("city")
		if city == "" {
			writeError(w, http.StatusBadRequest, "city query parameter required")
			return
		}

		// Reject unknown cities before committing to the stream.
		if _, err := sim.Current(city); errors.Is(err, aqi.ErrCityNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		send := func() {
			reading, err := sim.Current(city)
			if err != nil {
				logger.Error("aqi stream read failed", "city", city, "error", err)
				return
			}
			data, _ := json.Marshal(reading)
			fmt.Fprintf(w, "event: reading\ndata: %s\n\n", data)
			flusher.Flush()
		}

		send()

		ticker := time.NewTicker(streamInterval)
		defer ticker.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-ticker.C:
				send()
			}
		}
	}
}
