package aqi

import (
	"fmt"
	"math"
	"strings"
)

// Insight is templated commentary about a city's current conditions relative
// to its 24h history and the other monitored cities.
type Insight struct {
	City        string  `json:"city"`
	Insight     string  `json:"insight"`
	Trend       string  `json:"trend"`
	Rank        int     `json:"rank"`
	TotalCities int     `json:"totalCities"`
	Avg24h      float64 `json:"avg24h"`
}

var severityPhrases = map[Severity]string{
	SeverityGood:               "enjoying good air quality",
	SeverityModerate:           "experiencing moderate air quality",
	SeverityUnhealthySensitive: "facing unhealthy conditions for sensitive groups",
	SeverityUnhealthy:          "experiencing unhealthy air quality",
	SeverityVeryUnhealthy:      "dealing with very unhealthy air conditions",
	SeverityHazardous:          "facing hazardous air quality",
}

var trendPhrases = map[string]string{
	"increasing": "worsening over the past 24 hours",
	"decreasing": "improving over the past 24 hours",
}

// Insights derives trend and rank commentary for a city.
func (s *Simulator) Insights(city string) (Insight, error) {
	current, err := s.Current(city)
	if err != nil {
		return Insight{}, err
	}

	history, err := s.History(city, "24h")
	if err != nil {
		return Insight{}, err
	}

	// Strict comparison: equal endpoints count as decreasing.
	trend := "decreasing"
	if history[len(history)-1].AQI > history[0].AQI {
		trend = "increasing"
	}

	sum := 0
	for _, p := range history {
		sum += p.AQI
	}
	avg := float64(sum) / float64(len(history))

	ranked := s.AllCities()
	rank := 0
	for i, c := range ranked {
		if c.Name == city {
			rank = i + 1
			break
		}
	}

	return Insight{
		City:        city,
		Insight:     s.insightText(city, current, trend, avg, rank, len(ranked)),
		Trend:       trend,
		Rank:        rank,
		TotalCities: len(ranked),
		Avg24h:      round1(avg),
	}, nil
}

func (s *Simulator) insightText(city string, current Reading, trend string, avg float64, rank, total int) string {
	var b strings.Builder

	phrase, ok := severityPhrases[current.Severity]
	if !ok {
		phrase = "experiencing varying air quality"
	}
	fmt.Fprintf(&b, "%s is currently %s with an AQI of %d, %s. ", city, phrase, current.AQI, trendPhrases[trend])
	fmt.Fprintf(&b, "The 24-hour average stands at %d. ", int(math.Round(avg)))

	if rank <= 3 {
		fmt.Fprintf(&b, "%s ranks #%d among the %d monitored cities for poorest air quality. ", city, rank, total)
	} else if rank > total-3 {
		fmt.Fprintf(&b, "%s ranks #%d among the %d monitored cities, showing relatively better conditions. ", city, rank, total)
	}

	hour := s.clock.Now().Hour()
	if (hour >= 7 && hour <= 10) || (hour >= 18 && hour <= 21) {
		b.WriteString("Traffic-hour peaks are typical during this time. ")
	}

	return b.String()
}
