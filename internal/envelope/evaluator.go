package envelope

// LowAltitudeThresholdM is the altitude below which the low-altitude speed limit applies
const LowAltitudeThresholdM = 1000.0

// Limits holds the physical and performance parameters the evaluator needs
type Limits struct {
	MassKg                   float64 `json:"mass_kg"`
	WingAreaM2               float64 `json:"wing_area_m2"`
	ServiceCeilingM          float64 `json:"service_ceiling_m"`
	StructuralSpeedLimitMps  float64 `json:"structural_speed_limit_mps"`
	LowAltitudeSpeedLimitMps float64 `json:"low_altitude_speed_limit_mps"`
}

// FlightRequest is the chosen altitude and airspeed for one evaluation
type FlightRequest struct {
	TargetAltitudeM float64 `json:"target_altitude_m"`
	TargetSpeedMps  float64 `json:"target_speed_mps"`
}

// Assessment is a verdict together with the numbers it was derived from
type Assessment struct {
	Verdict       Verdict `json:"verdict"`
	StallSpeedMps float64 `json:"stall_speed_mps"`
	DensityKgM3   float64 `json:"density_kg_m3"`
}

// Evaluate classifies a flight request against the aircraft limits.
// Rules are checked in a fixed order and the first match wins:
// ceiling, stall, structural overspeed, low-altitude overspeed.
// All comparisons are strict.
func Evaluate(limits Limits, req FlightRequest) Verdict {
	return Assess(limits, req).Verdict
}

// Assess runs the same rule chain as Evaluate and also returns the stall speed
// and air density at the requested altitude.
func Assess(limits Limits, req FlightRequest) Assessment {
	rho := AirDensity(req.TargetAltitudeM)
	stall := StallSpeedAtDensity(limits.MassKg, limits.WingAreaM2, rho)

	return Assessment{
		Verdict:       classify(limits, req, stall),
		StallSpeedMps: stall,
		DensityKgM3:   rho,
	}
}

func classify(limits Limits, req FlightRequest, stall float64) Verdict {
	alt, speed := req.TargetAltitudeM, req.TargetSpeedMps

	switch {
	case alt > limits.ServiceCeilingM:
		return CeilingExceeded
	case speed < stall:
		return StallSpeedFailure
	case speed > limits.StructuralSpeedLimitMps:
		return StructuralOverspeed
	case alt < LowAltitudeThresholdM && speed > limits.LowAltitudeSpeedLimitMps:
		return LowAltitudeOverspeed
	default:
		return Safe
	}
}
