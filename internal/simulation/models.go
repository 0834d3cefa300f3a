package simulation

import (
	"time"

	"github.com/yegors/aeroguard/internal/aircraft"
	"github.com/yegors/aeroguard/internal/envelope"
	"github.com/yegors/aeroguard/internal/i18n"
	"github.com/yegors/aeroguard/internal/route"
)

// Status is the state shown by a replay frame
type Status string

const (
	StatusRunning  Status = "running"
	StatusFailed   Status = "failed"
	StatusComplete Status = "complete"
)

// Frame is one step of a replay
type Frame struct {
	RunID     string        `json:"run_id"`
	Step      int           `json:"step"`
	Progress  int           `json:"progress"` // percent
	AltitudeM int           `json:"altitude_m"`
	RPM       int           `json:"rpm"`
	Status    Status        `json:"status"`
	Outcome   *i18n.Outcome `json:"outcome,omitempty"`
}

// ReplayConfig controls replay pacing. None of it affects the verdict.
type ReplayConfig struct {
	Steps        int
	StepInterval time.Duration
	RevealStep   int
	RevealPause  time.Duration
	BaseRPM      float64
	RPMJitter    float64
}

// DefaultReplayConfig returns the stock pacing: 101 frames 40 ms apart,
// failures revealed at 60 % after a one second pause.
func DefaultReplayConfig() ReplayConfig {
	return ReplayConfig{
		Steps:        100,
		StepInterval: 40 * time.Millisecond,
		RevealStep:   60,
		RevealPause:  time.Second,
		BaseRPM:      90,
		RPMJitter:    2,
	}
}

// StartRequest describes a simulation to run
type StartRequest struct {
	Aircraft  string                 `json:"aircraft"`
	Custom    *aircraft.CustomParams `json:"custom,omitempty"`
	AltitudeM float64                `json:"altitude_m"`
	SpeedMps  float64                `json:"speed_mps"`
	Language  string                 `json:"language"`
}

// Run is an evaluated simulation, ready to be replayed
type Run struct {
	ID         string                 `json:"id"`
	Aircraft   string                 `json:"aircraft"`
	Custom     bool                   `json:"custom"`
	Request    envelope.FlightRequest `json:"request"`
	Assessment envelope.Assessment    `json:"assessment"`
	Leg        route.Leg              `json:"leg"`
	Language   string                 `json:"language"`
	Outcome    i18n.Outcome           `json:"outcome"`
	CreatedAt  time.Time              `json:"created_at"`
}
