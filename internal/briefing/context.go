package briefing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yegors/aeroguard/internal/i18n"
	"github.com/yegors/aeroguard/internal/route"
	"github.com/yegors/aeroguard/internal/simulation"
	"github.com/yegors/aeroguard/internal/weather"
	"github.com/yegors/aeroguard/pkg/logger"
)

// RunSource loads recorded simulation runs
type RunSource interface {
	Get(id string) (*simulation.Run, error)
}

// WeatherSource looks up conditions along a route
type WeatherSource interface {
	ForRoute(ctx context.Context, leg route.Leg) *weather.RouteWeather
}

// Context is everything a briefing is written from
type Context struct {
	Timestamp time.Time             `json:"timestamp"`
	Run       *simulation.Run       `json:"run"`
	Weather   *weather.RouteWeather `json:"weather,omitempty"`
	Language  string                `json:"language"`
}

// Aggregator collects the run and its route weather for a briefing
type Aggregator struct {
	runs    RunSource
	weather WeatherSource
	logger  *logger.Logger
}

// NewAggregator creates a new aggregator. weather may be nil.
func NewAggregator(runs RunSource, wx WeatherSource, log *logger.Logger) *Aggregator {
	return &Aggregator{
		runs:    runs,
		weather: wx,
		logger:  log.Named("briefing-ctx"),
	}
}

// Collect builds the briefing context for a run
func (a *Aggregator) Collect(ctx context.Context, runID, lang string) (*Context, error) {
	run, err := a.runs.Get(runID)
	if err != nil {
		return nil, err
	}

	if lang == "" {
		lang = run.Language
	}

	bc := &Context{
		Timestamp: time.Now().UTC(),
		Run:       run,
		Language:  i18n.Resolve(lang),
	}

	if a.weather != nil {
		bc.Weather = a.weather.ForRoute(ctx, run.Leg)
		// Continue without weather rather than failing the briefing
		if len(bc.Weather.FetchErrors) > 0 {
			a.logger.Debug("Briefing without full route weather",
				logger.Strings("errors", bc.Weather.FetchErrors))
		}
	}

	return bc, nil
}

// Facts renders the context as plain lines for a prompt or a fallback briefing
func (bc *Context) Facts() string {
	run := bc.Run
	var b strings.Builder

	fmt.Fprintf(&b, "Aircraft: %s\n", run.Aircraft)
	fmt.Fprintf(&b, "Target altitude: %.0f m\n", run.Request.TargetAltitudeM)
	fmt.Fprintf(&b, "Target speed: %.1f m/s\n", run.Request.TargetSpeedMps)
	fmt.Fprintf(&b, "Air density: %.3f kg/m3\n", run.Assessment.DensityKgM3)
	fmt.Fprintf(&b, "Stall speed: %.1f m/s\n", run.Assessment.StallSpeedMps)
	fmt.Fprintf(&b, "Verdict: %s\n", run.Assessment.Verdict)
	fmt.Fprintf(&b, "Route: %s to %s, %.1f NM, bearing %.0f deg\n",
		run.Leg.Start, run.Leg.End, run.Leg.DistanceNM, run.Leg.BearingDeg)

	if bc.Weather != nil {
		writeConditions(&b, "Departure weather", bc.Weather.Start)
		writeConditions(&b, "Arrival weather", bc.Weather.End)
	}

	return b.String()
}

func writeConditions(b *strings.Builder, label string, c *weather.Conditions) {
	if c == nil {
		fmt.Fprintf(b, "%s: unavailable\n", label)
		return
	}
	fmt.Fprintf(b, "%s: %.1f C, wind %.1f m/s from %.0f deg\n",
		label, c.TemperatureC, c.WindSpeedMps, c.WindDirectionDeg)
}
