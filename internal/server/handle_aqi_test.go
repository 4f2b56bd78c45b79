package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/civicair/enviro-api/internal/aqi"
)

func TestHandleAQICurrent(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/aqi/current?city=Delhi", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var reading aqi.Reading
	json.NewDecoder(w.Body).Decode(&reading)

	if reading.City != "Delhi" {
		t.Errorf("expected city Delhi, got %q", reading.City)
	}
	if reading.AQI < 0 || reading.AQI > 500 {
		t.Errorf("AQI out of range: %d", reading.AQI)
	}
	if reading.PM25 <= 0 || reading.PM10 <= reading.PM25 {
		t.Errorf("implausible particulates: pm25=%v pm10=%v", reading.PM25, reading.PM10)
	}
}

func TestHandleAQICurrentUnknownCity(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/aqi/current?city=Gotham", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestHandleAQICurrentMissingCity(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/aqi/current", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandleAQIHistory(t *testing.T) {
	r := testRouter(t)

	tests := []struct {
		timeRange string
		want      int
	}{
		{"24h", 25},
		{"7d", 8},
	}

	for _, tt := range tests {
		t.Run(tt.timeRange, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/aqi/history?city=Mumbai&range="+tt.timeRange, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
			}

			var points []aqi.HistoryPoint
			json.NewDecoder(w.Body).Decode(&points)
			if len(points) != tt.want {
				t.Errorf("expected %d points, got %d", tt.want, len(points))
			}
		})
	}
}

func TestHandleAQIHistoryInvalidRange(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/aqi/history?city=Delhi&range=30m", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestHandleCities(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/cities", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var cities []aqi.CitySnapshot
	json.NewDecoder(w.Body).Decode(&cities)

	if len(cities) != 10 {
		t.Fatalf("expected 10 cities, got %d", len(cities))
	}
	for i := 1; i < len(cities); i++ {
		if cities[i].AQI > cities[i-1].AQI {
			t.Errorf("cities not sorted: %s (%d) above %s (%d)",
				cities[i-1].Name, cities[i-1].AQI, cities[i].Name, cities[i].AQI)
		}
	}
}

func TestHandleInsights(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/insights/aqi?city=Delhi", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var insight aqi.Insight
	json.NewDecoder(w.Body).Decode(&insight)

	if insight.City != "Delhi" {
		t.Errorf("expected city Delhi, got %q", insight.City)
	}
	if insight.Rank < 1 || insight.Rank > insight.TotalCities {
		t.Errorf("rank %d out of bounds (total %d)", insight.Rank, insight.TotalCities)
	}
	if insight.Trend != "increasing" && insight.Trend != "decreasing" {
		t.Errorf("unexpected trend %q", insight.Trend)
	}
	if insight.Insight == "" {
		t.Error("expected insight text")
	}
}

func TestHandleRoot(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp RootResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Status != "online" {
		t.Errorf("expected status online, got %q", resp.Status)
	}
	if resp.Service != serviceName || resp.Version != serviceVersion {
		t.Errorf("unexpected identity: %q %q", resp.Service, resp.Version)
	}
}

func TestHandleHealthWithoutDB(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
