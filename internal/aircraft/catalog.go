package aircraft

import (
	"fmt"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
)

// Catalog is a read-only registry of aircraft templates.
// It is populated at startup and never mutated afterwards, so it is safe for concurrent readers.
type Catalog struct {
	names    []string
	profiles map[string]Profile
}

// catalogFile is the on-disk layout of an aircraft catalog file
type catalogFile struct {
	Aircraft []Profile `toml:"aircraft"`
}

// catalogPresence records which optional keys each catalog entry sets
type catalogPresence struct {
	Aircraft []struct {
		LowAltitudeSpeedLimitMps *float64 `toml:"low_altitude_speed_limit_mps"`
	} `toml:"aircraft"`
}

// NewCatalog creates a catalog holding the given profiles in order.
// A later profile with the same name replaces an earlier one in place.
func NewCatalog(profiles ...Profile) (*Catalog, error) {
	c := &Catalog{profiles: make(map[string]Profile, len(profiles))}
	for _, p := range profiles {
		if err := c.add(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// DefaultCatalog returns the built-in catalog
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(builtinProfiles()...)
	if err != nil {
		// Built-ins are static and validated by tests
		panic(err)
	}
	return c
}

// LoadCatalog returns the built-in catalog merged with the profiles in a TOML file.
// An empty path yields the built-ins only.
func LoadCatalog(path string) (*Catalog, error) {
	c := DefaultCatalog()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read aircraft catalog: %w", err)
	}

	var file catalogFile
	if _, err := toml.Decode(string(data), &file); err != nil {
		return nil, fmt.Errorf("failed to decode aircraft catalog %s: %w", path, err)
	}
	var presence catalogPresence
	if _, err := toml.Decode(string(data), &presence); err != nil {
		return nil, fmt.Errorf("failed to decode aircraft catalog %s: %w", path, err)
	}

	for i, p := range file.Aircraft {
		// Only a missing key gets the default; an explicit 0 is kept
		if i < len(presence.Aircraft) && presence.Aircraft[i].LowAltitudeSpeedLimitMps == nil {
			p.LowAltitudeSpeedLimitMps = DefaultLowAltitudeSpeedLimitMps
		}
		if err := c.add(p); err != nil {
			return nil, fmt.Errorf("invalid aircraft in %s: %w", path, err)
		}
	}

	return c, nil
}

func (c *Catalog) add(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p = p.clone()
	p.Custom = p.Name == CustomName
	if _, exists := c.profiles[p.Name]; !exists {
		c.names = append(c.names, p.Name)
	}
	c.profiles[p.Name] = p
	return nil
}

// Validate checks that the kernel parameters of a profile are usable
func (p Profile) Validate() error {
	switch {
	case p.Name == "":
		return fmt.Errorf("aircraft name is required")
	case p.MassKg <= 0:
		return fmt.Errorf("aircraft %q: mass must be positive", p.Name)
	case p.WingAreaM2 <= 0:
		return fmt.Errorf("aircraft %q: wing area must be positive", p.Name)
	case p.ServiceCeilingM <= 0:
		return fmt.Errorf("aircraft %q: service ceiling must be positive", p.Name)
	case p.StructuralSpeedLimitMps <= 0:
		return fmt.Errorf("aircraft %q: structural speed limit must be positive", p.Name)
	case p.LowAltitudeSpeedLimitMps < 0:
		return fmt.Errorf("aircraft %q: low altitude speed limit must not be negative", p.Name)
	}
	return nil
}

// Names returns the catalog keys in registration order
func (c *Catalog) Names() []string {
	return slices.Clone(c.names)
}

// Len returns the number of profiles
func (c *Catalog) Len() int {
	return len(c.names)
}

// Get returns an independent copy of the named profile
func (c *Catalog) Get(name string) (Profile, error) {
	p, ok := c.profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownAircraft, name)
	}
	return p.clone(), nil
}

// All returns copies of every profile in registration order
func (c *Catalog) All() []Profile {
	out := make([]Profile, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.profiles[name].clone())
	}
	return out
}

// Custom builds a fresh profile from user-entered scalars on top of the custom template.
// The catalog itself is left untouched.
func (c *Catalog) Custom(params CustomParams) Profile {
	p, ok := c.profiles[CustomName]
	if !ok {
		p = customTemplate()
	}
	p = p.clone()
	p.Custom = true

	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.MassKg, params.MassKg)
	set(&p.WingAreaM2, params.WingAreaM2)
	set(&p.ServiceCeilingM, params.ServiceCeilingM)
	set(&p.StructuralSpeedLimitMps, params.StructuralSpeedLimitMps)
	set(&p.LowAltitudeSpeedLimitMps, params.LowAltitudeSpeedLimitMps)

	return p
}

// Resolve picks the profile for a request: custom params win when present,
// otherwise the named catalog entry is used.
func (c *Catalog) Resolve(name string, params *CustomParams) (Profile, error) {
	if params != nil {
		if err := params.Validate(); err != nil {
			return Profile{}, err
		}
		return c.Custom(*params), nil
	}
	return c.Get(name)
}
