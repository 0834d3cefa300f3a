package simulation

import (
	"context"
	"encoding/binary"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Plan builds every frame of a run's replay without waiting.
// A failed run stops at the reveal step; a safe run climbs to 100 %.
func Plan(run *Run, cfg ReplayConfig) []Frame {
	if cfg.Steps <= 0 {
		cfg = DefaultReplayConfig()
	}
	rng := rngFor(run.ID)
	failed := run.Assessment.Verdict.IsFailure()

	last := cfg.Steps
	if failed && cfg.RevealStep < last {
		last = cfg.RevealStep
	}

	frames := make([]Frame, 0, last+1)
	for i := 0; i <= last; i++ {
		f := Frame{
			RunID:     run.ID,
			Step:      i,
			Progress:  i * 100 / cfg.Steps,
			AltitudeM: int(run.Request.TargetAltitudeM * float64(i) / float64(cfg.Steps)),
			RPM:       int(cfg.BaseRPM + rng.NormFloat64()*cfg.RPMJitter),
			Status:    StatusRunning,
		}
		if i == last {
			outcome := run.Outcome
			f.Outcome = &outcome
			f.Status = StatusComplete
			if failed {
				f.Status = StatusFailed
			}
		}
		frames = append(frames, f)
	}

	return frames
}

// rngFor seeds the RPM jitter from the run ID so a replay is repeatable
func rngFor(id string) *rand.Rand {
	u, err := uuid.Parse(id)
	if err != nil {
		u = uuid.NewSHA1(uuid.NameSpaceOID, []byte(id))
	}
	return rand.New(rand.NewPCG(binary.BigEndian.Uint64(u[:8]), binary.BigEndian.Uint64(u[8:])))
}

// Replay emits a run's frames in real time.
// The final frame of a failed run is held back by RevealPause.
func Replay(ctx context.Context, run *Run, cfg ReplayConfig, emit func(Frame) error) error {
	frames := Plan(run, cfg)

	for _, f := range frames {
		wait := cfg.StepInterval
		if f.Status == StatusFailed {
			wait += cfg.RevealPause
		}
		if err := sleep(ctx, wait); err != nil {
			return err
		}
		if err := emit(f); err != nil {
			return err
		}
	}

	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil || d <= 0 {
		return err
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
