package aqi

// CityProfile describes the static pollution characteristics of a monitored
// city. Profiles are loaded once at startup and never mutated.
type CityProfile struct {
	Name           string
	Lat            float64
	Lng            float64
	BaselineAQI    float64
	Variance       float64
	SeasonalFactor float64
}

// DefaultCities returns the built-in profiles for the major Indian cities the
// service monitors. Order matters: it breaks AQI ties in city rankings.
func DefaultCities() []CityProfile {
	return []CityProfile{
		{Name: "Delhi", Lat: 28.6139, Lng: 77.2090, BaselineAQI: 250, Variance: 50, SeasonalFactor: 1.3},
		{Name: "Mumbai", Lat: 19.0760, Lng: 72.8777, BaselineAQI: 150, Variance: 40, SeasonalFactor: 1.1},
		{Name: "Bangalore", Lat: 12.9716, Lng: 77.5946, BaselineAQI: 120, Variance: 30, SeasonalFactor: 1.05},
		{Name: "Chennai", Lat: 13.0827, Lng: 80.2707, BaselineAQI: 110, Variance: 35, SeasonalFactor: 1.1},
		{Name: "Kolkata", Lat: 22.5726, Lng: 88.3639, BaselineAQI: 180, Variance: 45, SeasonalFactor: 1.2},
		{Name: "Hyderabad", Lat: 17.3850, Lng: 78.4867, BaselineAQI: 130, Variance: 35, SeasonalFactor: 1.05},
		{Name: "Pune", Lat: 18.5204, Lng: 73.8567, BaselineAQI: 140, Variance: 38, SeasonalFactor: 1.1},
		{Name: "Ahmedabad", Lat: 23.0225, Lng: 72.5714, BaselineAQI: 160, Variance: 42, SeasonalFactor: 1.15},
		{Name: "Lucknow", Lat: 26.8467, Lng: 80.9462, BaselineAQI: 200, Variance: 48, SeasonalFactor: 1.25},
		{Name: "Jaipur", Lat: 26.9124, Lng: 75.7873, BaselineAQI: 170, Variance: 40, SeasonalFactor: 1.2},
	}
}
