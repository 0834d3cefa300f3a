package envelope

import "math"

// EffectiveWingArea clamps a wing area to MinEffectiveWingArea
func EffectiveWingArea(wingAreaM2 float64) float64 {
	if wingAreaM2 < MinEffectiveWingArea {
		return MinEffectiveWingArea
	}
	return wingAreaM2
}

// StallSpeed returns the minimum flyable airspeed in m/s for an aircraft of the
// given mass and wing area at the given altitude.
func StallSpeed(massKg, wingAreaM2, altitudeM float64) float64 {
	return StallSpeedAtDensity(massKg, wingAreaM2, AirDensity(altitudeM))
}

// StallSpeedAtDensity is StallSpeed with the air density supplied directly
func StallSpeedAtDensity(massKg, wingAreaM2, densityKgM3 float64) float64 {
	area := EffectiveWingArea(wingAreaM2)
	return math.Sqrt((2 * massKg * Gravity) / (densityKgM3 * area * LiftFactor))
}
