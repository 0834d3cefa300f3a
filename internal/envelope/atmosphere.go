package envelope

import "math"

// Constants for the atmosphere and lift model
const (
	SeaLevelDensity = 1.225  // kg/m³
	ScaleHeightM    = 8500.0 // Exponential density scale height in meters
	Gravity         = 9.81   // m/s²

	// LiftFactor folds the lift coefficient and a safety margin into one empirical constant
	LiftFactor = 1.6

	// MinEffectiveWingArea is the smallest wing area used in the stall formula (m²)
	MinEffectiveWingArea = 1.0
)

// AirDensity returns the air density in kg/m³ at the given altitude in meters.
// Negative altitudes extrapolate to densities above sea level.
func AirDensity(altitudeM float64) float64 {
	return SeaLevelDensity * math.Exp(-altitudeM/ScaleHeightM)
}
