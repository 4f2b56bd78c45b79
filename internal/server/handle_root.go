package server

import (
	"net/http"
	"time"
)

const (
	serviceName    = "Environmental Intelligence API"
	serviceVersion = "1.0.0"
)

// RootResponse is the health payload served at /.
type RootResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

func handleRoot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, RootResponse{
			Status:    "online",
			Service:   serviceName,
			Version:   serviceVersion,
			Timestamp: time.Now().UTC(),
		})
	}
}
