package aqi

import (
	"encoding/json"
	"fmt"
)

// Severity is an ordered AQI category. A higher AQI never maps to a
// lower-ranked severity.
type Severity int

const (
	SeverityGood Severity = iota
	SeverityModerate
	SeverityUnhealthySensitive
	SeverityUnhealthy
	SeverityVeryUnhealthy
	SeverityHazardous
)

// SeverityFor maps an AQI value to its category using the standard
// 50/100/150/200/300 thresholds.
func SeverityFor(aqi int) Severity {
	switch {
	case aqi <= 50:
		return SeverityGood
	case aqi <= 100:
		return SeverityModerate
	case aqi <= 150:
		return SeverityUnhealthySensitive
	case aqi <= 200:
		return SeverityUnhealthy
	case aqi <= 300:
		return SeverityVeryUnhealthy
	default:
		return SeverityHazardous
	}
}

func (s Severity) String() string {
	switch s {
	case SeverityGood:
		return "good"
	case SeverityModerate:
		return "moderate"
	case SeverityUnhealthySensitive:
		return "unhealthy-sensitive"
	case SeverityUnhealthy:
		return "unhealthy"
	case SeverityVeryUnhealthy:
		return "very-unhealthy"
	case SeverityHazardous:
		return "hazardous"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// MarshalJSON encodes the severity as its string label.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON decodes a severity label.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	switch label {
	case "good":
		*s = SeverityGood
	case "moderate":
		*s = SeverityModerate
	case "unhealthy-sensitive":
		*s = SeverityUnhealthySensitive
	case "unhealthy":
		*s = SeverityUnhealthy
	case "very-unhealthy":
		*s = SeverityVeryUnhealthy
	case "hazardous":
		*s = SeverityHazardous
	default:
		return fmt.Errorf("unknown severity %q", label)
	}
	return nil
}

func describe(aqi int) string {
	switch {
	case aqi <= 50:
		return "Air quality is satisfactory, and air pollution poses little or no risk."
	case aqi <= 100:
		return "Air quality is acceptable. However, there may be a risk for some people."
	case aqi <= 150:
		return "Members of sensitive groups may experience health effects."
	case aqi <= 200:
		return "Everyone may begin to experience health effects; sensitive groups at greater risk."
	case aqi <= 300:
		return "Health alert: everyone may experience serious health effects."
	default:
		return "Health warning of emergency conditions: everyone affected."
	}
}
