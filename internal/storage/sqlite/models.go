package sqlite

import (
	"errors"
	"time"
)

// ErrRunNotFound is returned when a run ID is not in storage
var ErrRunNotFound = errors.New("run not found")

// RunRecord represents one evaluated simulation run
type RunRecord struct {
	ID            string    `json:"id"`
	Aircraft      string    `json:"aircraft"`
	Custom        bool      `json:"custom"`
	AltitudeM     float64   `json:"altitude_m"`
	SpeedMps      float64   `json:"speed_mps"`
	StallSpeedMps float64   `json:"stall_speed_mps"`
	DensityKgM3   float64   `json:"density_kg_m3"`
	Verdict       string    `json:"verdict"`
	Language      string    `json:"language"`
	StartLat      float64   `json:"start_lat"`
	StartLon      float64   `json:"start_lon"`
	EndLat        float64   `json:"end_lat"`
	EndLon        float64   `json:"end_lon"`
	DistanceM     float64   `json:"distance_m"`
	CreatedAt     time.Time `json:"created_at"`
}

// VerdictCount is the number of runs that ended with one verdict
type VerdictCount struct {
	Verdict string `json:"verdict"`
	Count   int    `json:"count"`
}
