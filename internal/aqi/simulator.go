// Package aqi synthesizes time-varying air quality readings for a fixed set
// of cities. There is no sensor integration: readings are shaped random
// numbers built from per-city baselines, diurnal traffic peaks, a weekend
// dip, and Gaussian noise. The time source and the noise source are both
// injectable so tests can pin them down.
package aqi

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

var (
	ErrCityNotFound = errors.New("city not found")
	ErrInvalidRange = errors.New("invalid time range")
)

// Rand is the subset of *math/rand/v2.Rand the simulator draws from. Tests
// substitute a fixed source to make readings deterministic.
type Rand interface {
	Float64() float64
	NormFloat64() float64
}

// Reading is a synthetic AQI observation. It is computed on demand and never
// stored; two calls at the same timestamp may differ by the noise term.
type Reading struct {
	City        string    `json:"city"`
	AQI         int       `json:"aqi"`
	PM25        float64   `json:"pm25"`
	PM10        float64   `json:"pm10"`
	Timestamp   time.Time `json:"timestamp"`
	Severity    Severity  `json:"severity"`
	Description string    `json:"description"`
}

// HistoryPoint is one sample in a time-series response.
type HistoryPoint struct {
	Time string `json:"time"`
	AQI  int    `json:"aqi"`
}

// CitySnapshot is the per-city entry in the all-cities ranking.
type CitySnapshot struct {
	Name     string   `json:"name"`
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	AQI      int      `json:"aqi"`
	Severity Severity `json:"severity"`
}

// Simulator generates readings for its configured cities. Methods are safe
// for concurrent use.
type Simulator struct {
	clock  clockwork.Clock
	cities []CityProfile
	byName map[string]CityProfile

	mu  sync.Mutex
	rng Rand
}

type Option func(*Simulator)

// WithClock replaces the wall clock, letting tests evaluate readings at a
// fixed instant.
func WithClock(c clockwork.Clock) Option {
	return func(s *Simulator) { s.clock = c }
}

// WithRand replaces the noise source.
func WithRand(r Rand) Option {
	return func(s *Simulator) { s.rng = r }
}

// WithCities replaces the default city profiles.
func WithCities(cities []CityProfile) Option {
	return func(s *Simulator) { s.cities = cities }
}

func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		clock:  clockwork.NewRealClock(),
		cities: DefaultCities(),
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.byName = make(map[string]CityProfile, len(s.cities))
	for _, c := range s.cities {
		s.byName[c.Name] = c
	}
	return s
}

// Current returns the present reading for a city.
func (s *Simulator) Current(city string) (Reading, error) {
	profile, ok := s.byName[city]
	if !ok {
		return Reading{}, fmt.Errorf("%w: %q", ErrCityNotFound, city)
	}
	now := s.clock.Now()
	return s.reading(profile, now), nil
}

// History returns a time series for the given range: "24h" yields 25 hourly
// points, "7d" yields 8 daily points evaluated at noon. Each point carries an
// independent noise draw.
func (s *Simulator) History(city, timeRange string) ([]HistoryPoint, error) {
	profile, ok := s.byName[city]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCityNotFound, city)
	}
	now := s.clock.Now()

	switch timeRange {
	case "24h":
		points := make([]HistoryPoint, 0, 25)
		for hoursAgo := 24; hoursAgo >= 0; hoursAgo-- {
			ts := now.Add(-time.Duration(hoursAgo) * time.Hour)
			points = append(points, HistoryPoint{
				Time: ts.Format("15:04"),
				AQI:  int(s.synthesize(profile, ts)),
			})
		}
		return points, nil
	case "7d":
		points := make([]HistoryPoint, 0, 8)
		for daysAgo := 7; daysAgo >= 0; daysAgo-- {
			day := now.AddDate(0, 0, -daysAgo)
			noon := time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, day.Location())
			points = append(points, HistoryPoint{
				Time: day.Format("Jan 02"),
				AQI:  int(s.synthesize(profile, noon)),
			})
		}
		return points, nil
	default:
		return nil, fmt.Errorf("%w: %q (use 24h or 7d)", ErrInvalidRange, timeRange)
	}
}

// AllCities returns a current snapshot per configured city, worst air
// quality first. Ties keep configuration order.
func (s *Simulator) AllCities() []CitySnapshot {
	now := s.clock.Now()
	snapshots := make([]CitySnapshot, 0, len(s.cities))
	for _, profile := range s.cities {
		aqi := int(s.synthesize(profile, now))
		snapshots = append(snapshots, CitySnapshot{
			Name:     profile.Name,
			Lat:      profile.Lat,
			Lng:      profile.Lng,
			AQI:      aqi,
			Severity: SeverityFor(aqi),
		})
	}
	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].AQI > snapshots[j].AQI
	})
	return snapshots
}

func (s *Simulator) reading(profile CityProfile, ts time.Time) Reading {
	aqi := int(s.synthesize(profile, ts))
	pm25 := pm25FromAQI(float64(aqi))
	pm10 := pm25 * s.uniform(1.5, 2.0)
	return Reading{
		City:        profile.Name,
		AQI:         aqi,
		PM25:        round1(pm25),
		PM10:        round1(pm10),
		Timestamp:   ts,
		Severity:    SeverityFor(aqi),
		Description: describe(aqi),
	}
}

// synthesize computes baseline*seasonal*weekend + diurnal + noise, clamped
// to [0, 500]. The diurnal term is two Gaussian bumps at the morning and
// evening traffic peaks.
func (s *Simulator) synthesize(profile CityProfile, ts time.Time) float64 {
	hour := float64(ts.Hour())

	morningPeak := math.Exp(-((hour-9)*(hour-9))/8) * 30
	eveningPeak := math.Exp(-((hour-20)*(hour-20))/8) * 35
	diurnal := morningPeak + eveningPeak

	weekend := 1.0
	if ts.Weekday() == time.Sunday {
		weekend = 0.8
	}

	noise := s.gauss(profile.Variance * 0.3)

	aqi := profile.BaselineAQI*profile.SeasonalFactor*weekend + diurnal + noise
	return math.Max(0, math.Min(500, aqi))
}

// pm25FromAQI approximates PM2.5 concentration (µg/m³) via a piecewise-linear
// breakpoint table.
func pm25FromAQI(aqi float64) float64 {
	switch {
	case aqi <= 50:
		return aqi * 0.24
	case aqi <= 100:
		return 12 + (aqi-50)*0.56
	case aqi <= 150:
		return 35.5 + (aqi-100)*0.65
	case aqi <= 200:
		return 55.5 + (aqi-150)*0.99
	case aqi <= 300:
		return 150.5 + (aqi-200)*0.99
	default:
		return 250.5 + (aqi - 300)
	}
}

func (s *Simulator) gauss(stddev float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.NormFloat64() * stddev
}

func (s *Simulator) uniform(lo, hi float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rng.Float64()*(hi-lo)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
