package envelope

import "fmt"

// Verdict is the outcome of an envelope evaluation
type Verdict uint8

const (
	Safe Verdict = iota
	CeilingExceeded
	StallSpeedFailure
	StructuralOverspeed
	LowAltitudeOverspeed
)

// Verdicts lists every verdict in rule order, Safe first
var Verdicts = []Verdict{Safe, CeilingExceeded, StallSpeedFailure, StructuralOverspeed, LowAltitudeOverspeed}

var verdictNames = [...]string{
	Safe:                 "safe",
	CeilingExceeded:      "ceiling_exceeded",
	StallSpeedFailure:    "stall_speed",
	StructuralOverspeed:  "structural_overspeed",
	LowAltitudeOverspeed: "low_altitude_overspeed",
}

var verdictCodes = [...]string{
	Safe:                 "SAFE",
	CeilingExceeded:      "ALT_HIGH",
	StallSpeedFailure:    "STALL",
	StructuralOverspeed:  "STRUCT",
	LowAltitudeOverspeed: "ALT_LOW_SPEED",
}

// Code returns the short cockpit annunciation code, or "" for an invalid verdict
func (v Verdict) Code() string {
	if v.Valid() {
		return verdictCodes[v]
	}
	return ""
}

// String returns the wire name of the verdict
func (v Verdict) String() string {
	if int(v) < len(verdictNames) {
		return verdictNames[v]
	}
	return fmt.Sprintf("verdict(%d)", uint8(v))
}

// IsFailure reports whether the verdict is anything other than Safe
func (v Verdict) IsFailure() bool {
	return v != Safe
}

// Valid reports whether v is one of the defined verdicts
func (v Verdict) Valid() bool {
	return int(v) < len(verdictNames)
}

// MarshalText implements encoding.TextMarshaler
func (v Verdict) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("invalid verdict: %d", uint8(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (v *Verdict) UnmarshalText(text []byte) error {
	parsed, err := ParseVerdict(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVerdict converts a wire name back into a Verdict
func ParseVerdict(s string) (Verdict, error) {
	for i, name := range verdictNames {
		if name == s {
			return Verdict(i), nil
		}
	}
	return Safe, fmt.Errorf("unknown verdict: %q", s)
}
