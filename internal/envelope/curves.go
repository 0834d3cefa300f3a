package envelope

// Defaults for the plotted curves
const (
	DefaultEnvelopeMinAltM = 0.0
	DefaultEnvelopeMaxAltM = 16000.0
	DefaultCurveSamples    = 100

	DefaultMinWindMps = -30.0
	DefaultMaxWindMps = 30.0

	// TakeoffMargin is the required margin over stall speed at takeoff
	TakeoffMargin = 1.1
)

// CurvePoint is one sample of a plotted curve
type CurvePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Linspace returns n evenly spaced values over [start, stop], endpoints included.
// n <= 0 yields nil and n == 1 yields just start.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}

	step := (stop - start) / float64(n-1)
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	// Avoid accumulated rounding on the last sample
	out[n-1] = stop
	return out
}

// EnvelopeCurve samples the stall speed over an altitude range
func EnvelopeCurve(limits Limits, minAltM, maxAltM float64, samples int) []CurvePoint {
	alts := Linspace(minAltM, maxAltM, samples)
	points := make([]CurvePoint, len(alts))
	for i, alt := range alts {
		points[i] = CurvePoint{X: alt, Y: StallSpeed(limits.MassKg, limits.WingAreaM2, alt)}
	}
	return points
}

// RequiredGroundSpeed is the takeoff ground speed needed for the given wind.
// Positive wind is a tailwind.
func RequiredGroundSpeed(stallSpeedMps, windMps float64) float64 {
	return stallSpeedMps*TakeoffMargin + windMps
}

// TakeoffWindCurve samples the required takeoff ground speed over a wind range
// at a fixed altitude.
func TakeoffWindCurve(limits Limits, altitudeM, minWindMps, maxWindMps float64, samples int) []CurvePoint {
	stall := StallSpeed(limits.MassKg, limits.WingAreaM2, altitudeM)
	winds := Linspace(minWindMps, maxWindMps, samples)
	points := make([]CurvePoint, len(winds))
	for i, w := range winds {
		points[i] = CurvePoint{X: w, Y: RequiredGroundSpeed(stall, w)}
	}
	return points
}

// AboveStall reports whether a speed plots in the flyable region of the envelope chart
func AboveStall(speedMps, stallSpeedMps float64) bool {
	return speedMps > stallSpeedMps
}
