package server

import (
	"log/slog"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"

	"github.com/civicair/enviro-api/internal/aqi"
	"github.com/civicair/enviro-api/internal/detect"
	"github.com/civicair/enviro-api/internal/observability"
	"github.com/civicair/enviro-api/internal/report"
)

// steadyRand pins every draw: no Gaussian noise, mid-range uniforms.
type steadyRand struct{}

func (steadyRand) Float64() float64     { return 0.5 }
func (steadyRand) NormFloat64() float64 { return 0 }
func (steadyRand) IntN(n int) int       { return 0 }

var testNow = time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)

func testRouter(t *testing.T) *chi.Mux {
	t.Helper()

	clock := clockwork.NewFakeClockAt(testNow)
	deps := Deps{
		Simulator: aqi.NewSimulator(aqi.WithClock(clock), aqi.WithRand(steadyRand{})),
		Detector:  detect.NewDetector(detect.WithRand(steadyRand{})),
		Reports: report.NewProcessor(report.NewMemoryStore(),
			report.WithClock(clock),
			report.WithRand(steadyRand{}),
		),
		Metrics: observability.NewMetricsForTesting(),
	}

	r := chi.NewRouter()
	addRoutes(r, slog.Default(), deps)
	return r
}
