package server

import (
	"errors"
	"net/http"

	"github.com/civicair/enviro-api/internal/aqi"
)

func handleAQICurrent(sim *aqi.Simulator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		city := r.URL.Query().Get("city")
		if city == "" {
			writeError(w, http.StatusBadRequest, "city query parameter required")
			return
		}

		reading, err := sim.Current(city)
		if errors.Is(err, aqi.ErrCityNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to fetch AQI")
			return
		}

		writeJSON(w, http.StatusOK, reading)
	}
}

func handleAQIHistory(sim *aqi.Simulator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		city := r.URL.Query().Get("city")
		if city == "" {
			writeError(w, http.StatusBadRequest, "city query parameter required")
			return
		}

		timeRange := r.URL.Query().Get("range")
		if timeRange == "" {
			timeRange = "24h"
		}

		points, err := sim.History(city, timeRange)
		if errors.Is(err, aqi.ErrCityNotFound) || errors.Is(err, aqi.ErrInvalidRange) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to fetch history")
			return
		}

		writeJSON(w, http.StatusOK, points)
	}
}

func handleCities(sim *aqi.Simulator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, sim.AllCities())
	}
}

func handleInsights(sim *aqi.Simulator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		city := r.URL.Query().Get("city")
		if city == "" {
			writeError(w, http.StatusBadRequest, "city query parameter required")
			return
		}

		insight, err := sim.Insights(city)
		if errors.Is(err, aqi.ErrCityNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to generate insights")
			return
		}

		writeJSON(w, http.StatusOK, insight)
	}
}
