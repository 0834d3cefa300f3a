package envelope

import (
	"encoding/json"
	"math"
	"testing"
)

var b737 = Limits{
	MassKg:                   70000,
	WingAreaM2:               124.6,
	ServiceCeilingM:          12500,
	StructuralSpeedLimitMps:  260,
	LowAltitudeSpeedLimitMps: 170,
}

func TestAirDensity(t *testing.T) {
	if got := AirDensity(0); got != SeaLevelDensity {
		t.Fatalf("AirDensity(0) = %v, want %v", got, SeaLevelDensity)
	}

	prev := AirDensity(-2000)
	if prev <= SeaLevelDensity {
		t.Errorf("negative altitude should extrapolate above sea level density, got %v", prev)
	}
	for h := -1500.0; h <= 40000; h += 500 {
		rho := AirDensity(h)
		if rho <= 0 || math.IsInf(rho, 0) || math.IsNaN(rho) {
			t.Fatalf("AirDensity(%v) = %v, want positive finite", h, rho)
		}
		if rho >= prev {
			t.Fatalf("AirDensity not strictly decreasing at %v: %v >= %v", h, rho, prev)
		}
		prev = rho
	}

	// One scale height divides density by e
	want := SeaLevelDensity / math.E
	if got := AirDensity(ScaleHeightM); math.Abs(got-want) > 1e-12 {
		t.Errorf("AirDensity(H) = %v, want %v", got, want)
	}
}

func TestStallSpeed(t *testing.T) {
	if got := StallSpeed(0, 124.6, 8000); got != 0 {
		t.Errorf("StallSpeed with zero mass = %v, want 0", got)
	}

	// Hand-computed for the 737 at 8000 m
	got := StallSpeed(70000, 124.6, 8000)
	if math.Abs(got-120.05) > 0.1 {
		t.Errorf("StallSpeed(737, 8000) = %.3f, want ~120.05", got)
	}

	t.Run("increasing in mass", func(t *testing.T) {
		prev := StallSpeed(0, 30, 1000)
		for m := 100.0; m <= 100000; m *= 2 {
			v := StallSpeed(m, 30, 1000)
			if v <= prev {
				t.Fatalf("StallSpeed not increasing at mass %v", m)
			}
			prev = v
		}
	})

	t.Run("decreasing in area", func(t *testing.T) {
		prev := StallSpeed(5000, 1, 1000)
		for a := 2.0; a <= 500; a += 7 {
			v := StallSpeed(5000, a, 1000)
			if v >= prev {
				t.Fatalf("StallSpeed not decreasing at area %v", a)
			}
			prev = v
		}
	})

	t.Run("increasing with altitude", func(t *testing.T) {
		prev := StallSpeed(5000, 30, -500)
		for h := 0.0; h <= 16000; h += 250 {
			v := StallSpeed(5000, 30, h)
			if v <= prev {
				t.Fatalf("StallSpeed not increasing at altitude %v", h)
			}
			prev = v
		}
	})

	t.Run("degenerate area is clamped", func(t *testing.T) {
		want := StallSpeed(5000, 1, 3000)
		for _, area := range []float64{0, -10, 0.25, 1} {
			if got := StallSpeed(5000, area, 3000); got != want {
				t.Errorf("StallSpeed(area=%v) = %v, want %v", area, got, want)
			}
		}
	})

	t.Run("density form agrees", func(t *testing.T) {
		for _, h := range []float64{-300, 0, 4500, 12000} {
			a := StallSpeed(12000, 27.8, h)
			b := StallSpeedAtDensity(12000, 27.8, AirDensity(h))
			if a != b {
				t.Errorf("altitude %v: %v != %v", h, a, b)
			}
		}
	})
}

func TestEvaluateScenarios(t *testing.T) {
	tests := []struct {
		name  string
		alt   float64
		speed float64
		want  Verdict
	}{
		{"default sliders", 8000, 220, Safe},
		{"above ceiling", 13000, 220, CeilingExceeded},
		{"too slow", 8000, 50, StallSpeedFailure},
		{"above vne", 8000, 300, StructuralOverspeed},
		{"fast and low", 500, 200, LowAltitudeOverspeed},
		{"negative speed stalls", 8000, -10, StallSpeedFailure},
		{"below sea level", -200, 160, Safe},
		{"below sea level too fast", -200, 200, LowAltitudeOverspeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(b737, FlightRequest{TargetAltitudeM: tt.alt, TargetSpeedMps: tt.speed})
			if got != tt.want {
				t.Errorf("Evaluate(%v m, %v m/s) = %v, want %v", tt.alt, tt.speed, got, tt.want)
			}
		})
	}
}

func TestEvaluatePrecedence(t *testing.T) {
	// Heavy enough that the stall speed sits far above Vne
	heavy := Limits{
		MassKg:                   1e9,
		WingAreaM2:               1,
		ServiceCeilingM:          10000,
		StructuralSpeedLimitMps:  100,
		LowAltitudeSpeedLimitMps: 50,
	}

	req := FlightRequest{TargetAltitudeM: 20000, TargetSpeedMps: 200}
	if stall := StallSpeed(heavy.MassKg, heavy.WingAreaM2, req.TargetAltitudeM); req.TargetSpeedMps >= stall {
		t.Fatalf("setup: speed %v not below stall %v", req.TargetSpeedMps, stall)
	}
	if got := Evaluate(heavy, req); got != CeilingExceeded {
		t.Errorf("ceiling+stall+structural: got %v, want %v", got, CeilingExceeded)
	}

	req.TargetAltitudeM = 500
	if got := Evaluate(heavy, req); got != StallSpeedFailure {
		t.Errorf("stall+structural+low altitude: got %v, want %v", got, StallSpeedFailure)
	}

	light := heavy
	light.MassKg = 1000
	if got := Evaluate(light, req); got != StructuralOverspeed {
		t.Errorf("structural+low altitude: got %v, want %v", got, StructuralOverspeed)
	}
}

func TestEvaluateBoundaries(t *testing.T) {
	limits := Limits{
		MassKg:                   5000,
		WingAreaM2:               30,
		ServiceCeilingM:          10000,
		StructuralSpeedLimitMps:  300,
		LowAltitudeSpeedLimitMps: 200,
	}

	stall := StallSpeed(limits.MassKg, limits.WingAreaM2, 5000)
	if got := Evaluate(limits, FlightRequest{TargetAltitudeM: 5000, TargetSpeedMps: stall}); got != Safe {
		t.Errorf("speed == stall: got %v, want safe", got)
	}
	if got := Evaluate(limits, FlightRequest{TargetAltitudeM: 10000, TargetSpeedMps: 250}); got != Safe {
		t.Errorf("altitude == ceiling: got %v, want safe", got)
	}
	if got := Evaluate(limits, FlightRequest{TargetAltitudeM: 5000, TargetSpeedMps: 300}); got != Safe {
		t.Errorf("speed == vne: got %v, want safe", got)
	}
	if got := Evaluate(limits, FlightRequest{TargetAltitudeM: 1000, TargetSpeedMps: 250}); got != Safe {
		t.Errorf("altitude == low threshold: got %v, want safe", got)
	}
	if got := Evaluate(limits, FlightRequest{TargetAltitudeM: 999, TargetSpeedMps: 200}); got != Safe {
		t.Errorf("speed == low altitude limit: got %v, want safe", got)
	}
}

func TestEvaluateIsPure(t *testing.T) {
	req := FlightRequest{TargetAltitudeM: 8000, TargetSpeedMps: 220}
	first := Assess(b737, req)
	for i := 0; i < 100; i++ {
		if got := Assess(b737, req); got != first {
			t.Fatalf("iteration %d: %+v != %+v", i, got, first)
		}
	}
}

func TestAssess(t *testing.T) {
	a := Assess(b737, FlightRequest{TargetAltitudeM: 8000, TargetSpeedMps: 50})
	if a.Verdict != StallSpeedFailure {
		t.Errorf("verdict = %v, want stall", a.Verdict)
	}
	if a.StallSpeedMps != StallSpeed(b737.MassKg, b737.WingAreaM2, 8000) {
		t.Errorf("stall speed = %v", a.StallSpeedMps)
	}
	if a.DensityKgM3 != AirDensity(8000) {
		t.Errorf("density = %v", a.DensityKgM3)
	}
}

func TestVerdictText(t *testing.T) {
	for _, v := range Verdicts {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal %v: %v", v, err)
		}
		var back Verdict
		if err := json.Unmarshal(b, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		if back != v {
			t.Errorf("got %v, want %v", back, v)
		}
	}

	if _, err := ParseVerdict("ALT_HIGH"); err == nil {
		t.Error("expected error for unknown verdict name")
	}
	if _, err := json.Marshal(Verdict(42)); err == nil {
		t.Error("expected error marshalling invalid verdict")
	}
	if Safe.IsFailure() || !CeilingExceeded.IsFailure() {
		t.Error("IsFailure wrong")
	}
}

func TestVerdictCode(t *testing.T) {
	tests := []struct {
		v    Verdict
		want string
	}{
		{Safe, "SAFE"},
		{CeilingExceeded, "ALT_HIGH"},
		{StallSpeedFailure, "STALL"},
		{StructuralOverspeed, "STRUCT"},
		{LowAltitudeOverspeed, "ALT_LOW_SPEED"},
		{Verdict(42), ""},
	}

	for _, tt := range tests {
		if got := tt.v.Code(); got != tt.want {
			t.Errorf("%v.Code() = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestCurves(t *testing.T) {
	env := EnvelopeCurve(b737, DefaultEnvelopeMinAltM, DefaultEnvelopeMaxAltM, DefaultCurveSamples)
	if len(env) != DefaultCurveSamples {
		t.Fatalf("envelope samples = %d", len(env))
	}
	if env[0].X != 0 || env[len(env)-1].X != 16000 {
		t.Errorf("envelope range = [%v, %v]", env[0].X, env[len(env)-1].X)
	}
	for i := 1; i < len(env); i++ {
		if env[i].Y <= env[i-1].Y {
			t.Fatalf("envelope not increasing at %d", i)
		}
	}

	wind := TakeoffWindCurve(b737, 8000, DefaultMinWindMps, DefaultMaxWindMps, DefaultCurveSamples)
	stall := StallSpeed(b737.MassKg, b737.WingAreaM2, 8000)
	if got, want := wind[0].Y, stall*1.1-30; math.Abs(got-want) > 1e-9 {
		t.Errorf("headwind end = %v, want %v", got, want)
	}
	if got, want := wind[len(wind)-1].Y, stall*1.1+30; math.Abs(got-want) > 1e-9 {
		t.Errorf("tailwind end = %v, want %v", got, want)
	}

	if got := Linspace(0, 1, 0); got != nil {
		t.Errorf("Linspace n=0 = %v", got)
	}
	if got := Linspace(5, 9, 1); len(got) != 1 || got[0] != 5 {
		t.Errorf("Linspace n=1 = %v", got)
	}
	if got := Linspace(0, 10, 3); got[1] != 5 {
		t.Errorf("Linspace midpoint = %v", got[1])
	}

	if AboveStall(stall, stall) {
		t.Error("speed equal to stall should not plot above stall")
	}
}
