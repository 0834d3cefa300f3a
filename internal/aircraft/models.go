package aircraft

import (
	"errors"
	"fmt"
	"maps"
	"math"

	"github.com/yegors/aeroguard/internal/envelope"
)

// DefaultLowAltitudeSpeedLimitMps applies when a catalog file leaves the low-altitude limit unset
const DefaultLowAltitudeSpeedLimitMps = 200.0

// CustomName is the catalog key of the manually parameterized profile
const CustomName = "Custom / Manual"

// ErrUnknownAircraft is returned when a name is not in the catalog
var ErrUnknownAircraft = errors.New("unknown aircraft")

// ErrInvalidParams is returned for custom scalars the kernel cannot give a meaningful answer for
var ErrInvalidParams = errors.New("invalid custom aircraft parameters")

// Profile describes one aircraft type
type Profile struct {
	Name                     string            `json:"name" toml:"name"`
	MassKg                   float64           `json:"mass_kg" toml:"mass_kg"`
	WingAreaM2               float64           `json:"wing_area_m2" toml:"wing_area_m2"`
	ServiceCeilingM          float64           `json:"service_ceiling_m" toml:"service_ceiling_m"`
	StructuralSpeedLimitMps  float64           `json:"structural_speed_limit_mps" toml:"structural_speed_limit_mps"`
	LowAltitudeSpeedLimitMps float64           `json:"low_altitude_speed_limit_mps" toml:"low_altitude_speed_limit_mps"`
	FuelRateKgS              float64           `json:"fuel_rate_kg_s,omitempty" toml:"fuel_rate_kg_s"`
	Length                   string            `json:"length,omitempty" toml:"length"`
	Span                     string            `json:"span,omitempty" toml:"span"`
	Engine                   string            `json:"engine,omitempty" toml:"engine"`
	Image                    string            `json:"image,omitempty" toml:"image"`
	Icon                     string            `json:"icon,omitempty" toml:"icon"`
	Descriptions             map[string]string `json:"descriptions,omitempty" toml:"descriptions"`
	Custom                   bool              `json:"custom" toml:"-"`
}

// Limits returns the evaluator inputs for this profile
func (p Profile) Limits() envelope.Limits {
	return envelope.Limits{
		MassKg:                   p.MassKg,
		WingAreaM2:               p.WingAreaM2,
		ServiceCeilingM:          p.ServiceCeilingM,
		StructuralSpeedLimitMps:  p.StructuralSpeedLimitMps,
		LowAltitudeSpeedLimitMps: p.LowAltitudeSpeedLimitMps,
	}
}

// Description returns the description in lang, falling back to English
func (p Profile) Description(lang string) string {
	if d, ok := p.Descriptions[lang]; ok && d != "" {
		return d
	}
	return p.Descriptions["EN"]
}

// clone returns a copy that shares no maps with p
func (p Profile) clone() Profile {
	p.Descriptions = maps.Clone(p.Descriptions)
	return p
}

// CustomParams are the user-entered scalars for a custom profile.
// Nil fields fall back to the custom template.
type CustomParams struct {
	MassKg                   *float64 `json:"mass_kg,omitempty"`
	WingAreaM2               *float64 `json:"wing_area_m2,omitempty"`
	ServiceCeilingM          *float64 `json:"service_ceiling_m,omitempty"`
	StructuralSpeedLimitMps  *float64 `json:"structural_speed_limit_mps,omitempty"`
	LowAltitudeSpeedLimitMps *float64 `json:"low_altitude_speed_limit_mps,omitempty"`
}

// Validate rejects non-finite values and a negative mass.
// A small or negative wing area is left to the kernel's clamp.
func (c CustomParams) Validate() error {
	fields := []struct {
		name string
		v    *float64
	}{
		{"mass_kg", c.MassKg},
		{"wing_area_m2", c.WingAreaM2},
		{"service_ceiling_m", c.ServiceCeilingM},
		{"structural_speed_limit_mps", c.StructuralSpeedLimitMps},
		{"low_altitude_speed_limit_mps", c.LowAltitudeSpeedLimitMps},
	}
	for _, f := range fields {
		if f.v != nil && (math.IsNaN(*f.v) || math.IsInf(*f.v, 0)) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidParams, f.name)
		}
	}
	if c.MassKg != nil && *c.MassKg < 0 {
		return fmt.Errorf("%w: mass_kg must not be negative", ErrInvalidParams)
	}
	return nil
}
