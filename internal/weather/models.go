package weather

import (
	"time"

	"github.com/yegors/aeroguard/internal/route"
)

// Conditions is the current weather at one location
type Conditions struct {
	Location         route.Point `json:"location"`
	TemperatureC     float64     `json:"temperature_c"`
	WindSpeedKmh     float64     `json:"wind_speed_kmh"`
	WindSpeedMps     float64     `json:"wind_speed_mps"`
	WindDirectionDeg float64     `json:"wind_direction_deg"`
	WeatherCode      int         `json:"weather_code"`
	IsDay            bool        `json:"is_day"`
	ObservedAt       string      `json:"observed_at"`
	FetchedAt        time.Time   `json:"fetched_at"`
}

// RouteWeather is the weather at both ends of a route
type RouteWeather struct {
	Start       *Conditions `json:"start"`
	End         *Conditions `json:"end"`
	LastUpdated time.Time   `json:"last_updated"`
	FetchErrors []string    `json:"fetch_errors,omitempty"`
}

// Config represents the weather client configuration
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	MaxRetries     int
	CacheExpiry    time.Duration
	CacheSize      int
	RetryDelay     time.Duration
}

// DefaultConfig returns the default weather configuration
func DefaultConfig() Config {
	return Config{
		APIBaseURL:     "https://api.open-meteo.com",
		RequestTimeout: 10 * time.Second,
		MaxRetries:     2,
		CacheExpiry:    10 * time.Minute,
		CacheSize:      256,
		RetryDelay:     500 * time.Millisecond,
	}
}

// forecastResponse is the subset of the Open-Meteo forecast response we read
type forecastResponse struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	CurrentWeather *struct {
		Temperature   float64 `json:"temperature"`
		WindSpeed     float64 `json:"windspeed"`
		WindDirection float64 `json:"winddirection"`
		WeatherCode   int     `json:"weathercode"`
		IsDay         int     `json:"is_day"`
		Time          string  `json:"time"`
	} `json:"current_weather"`
}
