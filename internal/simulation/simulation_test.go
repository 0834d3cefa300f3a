package simulation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yegors/aeroguard/internal/aircraft"
	"github.com/yegors/aeroguard/internal/envelope"
	"github.com/yegors/aeroguard/internal/route"
	"github.com/yegors/aeroguard/internal/storage/sqlite"
	"github.com/yegors/aeroguard/pkg/logger"
)

func fastReplay() ReplayConfig {
	cfg := DefaultReplayConfig()
	cfg.StepInterval = 0
	cfg.RevealPause = 0
	return cfg
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := sqlite.NewRunStorage(db, logger.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	return NewService(aircraft.DefaultCatalog(), store, fastReplay(), 10, logger.NewNop())
}

var testLeg = route.Leg{
	Start:     route.Point{Lat: 39.93, Lon: 32.86},
	End:       route.Point{Lat: 41.01, Lon: 28.98},
	DistanceM: 350000,
}

func TestPlanSafe(t *testing.T) {
	run := &Run{
		ID:         uuid.NewString(),
		Request:    envelope.FlightRequest{TargetAltitudeM: 8000, TargetSpeedMps: 220},
		Assessment: envelope.Assessment{Verdict: envelope.Safe},
	}
	frames := Plan(run, DefaultReplayConfig())

	if len(frames) != 101 {
		t.Fatalf("frames = %d, want 101", len(frames))
	}
	if frames[50].AltitudeM != 4000 || frames[50].Progress != 50 {
		t.Errorf("mid frame = %+v", frames[50])
	}
	last := frames[100]
	if last.Status != StatusComplete || last.AltitudeM != 8000 || last.Outcome == nil {
		t.Errorf("last frame = %+v", last)
	}
	for _, f := range frames[:100] {
		if f.Status != StatusRunning || f.Outcome != nil {
			t.Fatalf("frame %d = %+v", f.Step, f)
		}
		if f.RPM < 80 || f.RPM > 100 {
			t.Fatalf("frame %d rpm = %d", f.Step, f.RPM)
		}
	}
}

func TestPlanFailureRevealedAtStep60(t *testing.T) {
	run := &Run{
		ID:         uuid.NewString(),
		Request:    envelope.FlightRequest{TargetAltitudeM: 13000, TargetSpeedMps: 220},
		Assessment: envelope.Assessment{Verdict: envelope.CeilingExceeded},
	}
	frames := Plan(run, DefaultReplayConfig())

	if len(frames) != 61 {
		t.Fatalf("frames = %d, want 61", len(frames))
	}
	last := frames[60]
	if last.Status != StatusFailed || last.AltitudeM != 7800 {
		t.Errorf("reveal frame = %+v", last)
	}
}

func TestPlanIsRepeatable(t *testing.T) {
	run := &Run{ID: uuid.NewString(), Assessment: envelope.Assessment{Verdict: envelope.Safe}}
	a := Plan(run, DefaultReplayConfig())
	b := Plan(run, DefaultReplayConfig())
	for i := range a {
		if a[i].RPM != b[i].RPM {
			t.Fatalf("frame %d rpm differs: %d vs %d", i, a[i].RPM, b[i].RPM)
		}
	}
}

func TestReplayCancel(t *testing.T) {
	run := &Run{ID: uuid.NewString(), Assessment: envelope.Assessment{Verdict: envelope.Safe}}
	cfg := DefaultReplayConfig()
	cfg.StepInterval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	emitted := 0
	err := Replay(ctx, run, cfg, func(f Frame) error {
		emitted++
		if emitted == 5 {
			cancel()
		}
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if emitted != 5 {
		t.Errorf("emitted = %d, want 5", emitted)
	}
}

func TestReplayRevealPause(t *testing.T) {
	cfg := DefaultReplayConfig()
	cfg.Steps = 10
	cfg.RevealStep = 6
	cfg.StepInterval = 2 * time.Millisecond
	cfg.RevealPause = 100 * time.Millisecond

	tests := []struct {
		name       string
		verdict    envelope.Verdict
		wantFrames int
		wantPause  bool
	}{
		{"failed run holds the reveal", envelope.StructuralOverspeed, 7, true},
		{"safe run does not pause", envelope.Safe, 11, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := &Run{ID: uuid.NewString(), Assessment: envelope.Assessment{Verdict: tt.verdict}}

			start := time.Now()
			var stamps []time.Time
			var frames []Frame
			err := Replay(context.Background(), run, cfg, func(f Frame) error {
				stamps = append(stamps, time.Now())
				frames = append(frames, f)
				return nil
			})
			if err != nil {
				t.Fatal(err)
			}
			if len(frames) != tt.wantFrames {
				t.Fatalf("frames = %d, want %d", len(frames), tt.wantFrames)
			}

			minTotal := time.Duration(tt.wantFrames) * cfg.StepInterval
			if elapsed := time.Since(start); elapsed < minTotal {
				t.Errorf("elapsed = %v, want at least %v", elapsed, minTotal)
			}

			n := len(stamps)
			final := stamps[n-1].Sub(stamps[n-2])
			if tt.wantPause {
				if frames[n-1].Status != StatusFailed {
					t.Fatalf("final frame = %+v", frames[n-1])
				}
				if final < cfg.StepInterval+cfg.RevealPause {
					t.Errorf("gap before reveal = %v, want at least %v", final, cfg.StepInterval+cfg.RevealPause)
				}
				return
			}
			if frames[n-1].Status != StatusComplete {
				t.Fatalf("final frame = %+v", frames[n-1])
			}
			if final >= cfg.RevealPause {
				t.Errorf("gap before final frame = %v, want under %v", final, cfg.RevealPause)
			}
		})
	}
}

func TestServiceStartAndStream(t *testing.T) {
	s := newTestService(t)

	tests := []struct {
		name  string
		req   StartRequest
		want  envelope.Verdict
		count int
	}{
		{"safe", StartRequest{Aircraft: "Boeing 737-800", AltitudeM: 8000, SpeedMps: 220}, envelope.Safe, 101},
		{"stall", StartRequest{Aircraft: "Boeing 737-800", AltitudeM: 8000, SpeedMps: 50}, envelope.StallSpeedFailure, 61},
		{"low and fast", StartRequest{Aircraft: "Boeing 737-800", AltitudeM: 500, SpeedMps: 200, Language: "fr"}, envelope.LowAltitudeOverspeed, 61},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run, err := s.Start(tt.req, testLeg)
			if err != nil {
				t.Fatal(err)
			}
			if run.Assessment.Verdict != tt.want {
				t.Fatalf("verdict = %v, want %v", run.Assessment.Verdict, tt.want)
			}

			loaded, err := s.Get(run.ID)
			if err != nil {
				t.Fatal(err)
			}
			if loaded.Assessment != run.Assessment || loaded.Outcome != run.Outcome {
				t.Errorf("loaded = %+v, want %+v", loaded, run)
			}

			var frames []Frame
			err = s.Stream(context.Background(), run.ID, func(f Frame) error {
				frames = append(frames, f)
				return nil
			})
			if err != nil {
				t.Fatal(err)
			}
			if len(frames) != tt.count {
				t.Errorf("frames = %d, want %d", len(frames), tt.count)
			}
		})
	}

	if _, err := s.Start(StartRequest{Aircraft: "Zeppelin"}, testLeg); !errors.Is(err, aircraft.ErrUnknownAircraft) {
		t.Errorf("unknown aircraft err = %v", err)
	}
	if err := s.Stream(context.Background(), "nope", func(Frame) error { return nil }); !sqlite.IsNotFound(err) {
		t.Errorf("unknown run err = %v", err)
	}
}

func TestServiceCustomProfile(t *testing.T) {
	s := newTestService(t)
	mass := 90000.0

	run, err := s.Start(StartRequest{
		Aircraft:  aircraft.CustomName,
		Custom:    &aircraft.CustomParams{MassKg: &mass},
		AltitudeM: 5000,
		SpeedMps:  100,
	}, testLeg)
	if err != nil {
		t.Fatal(err)
	}
	if !run.Custom {
		t.Error("run not flagged custom")
	}

	tmpl, _ := aircraft.DefaultCatalog().Get(aircraft.CustomName)
	if tmpl.MassKg != 5000 {
		t.Errorf("custom template mutated: %v", tmpl.MassKg)
	}
}
