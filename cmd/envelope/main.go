// Command envelope checks one flight request against an aircraft's envelope.
//
//	envelope -aircraft "Boeing 737-800" -alt 8000 -speed 220
//	envelope -aircraft "Custom / Manual" -mass 9000 -wing 25 -alt 3000 -speed 90 -lang de
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/yegors/aeroguard/internal/aircraft"
	"github.com/yegors/aeroguard/internal/envelope"
	"github.com/yegors/aeroguard/internal/i18n"
)

func main() {
	name := flag.String("aircraft", "Boeing 737-800", "aircraft name from the catalog")
	catalogPath := flag.String("catalog", "", "optional TOML catalog merged over the built-ins")
	alt := flag.Float64("alt", 0, "target altitude in meters")
	speed := flag.Float64("speed", 0, "target speed in m/s")
	lang := flag.String("lang", i18n.DefaultLanguage, "message language")
	list := flag.Bool("list", false, "list catalog aircraft and exit")

	mass := flag.Float64("mass", 0, "custom: mass in kg")
	wing := flag.Float64("wing", 0, "custom: wing area in m^2")
	ceiling := flag.Float64("ceiling", 0, "custom: service ceiling in m")
	vne := flag.Float64("vne", 0, "custom: structural speed limit in m/s")
	lowLimit := flag.Float64("low-limit", 0, "custom: low altitude speed limit in m/s")
	flag.Parse()

	catalog, err := aircraft.LoadCatalog(*catalogPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *list {
		for _, n := range catalog.Names() {
			fmt.Println(n)
		}
		return
	}

	// Only flags given on the command line override the custom template
	var params *aircraft.CustomParams
	if *name == aircraft.CustomName {
		params = &aircraft.CustomParams{}
		custom := map[string]**float64{
			"mass":      &params.MassKg,
			"wing":      &params.WingAreaM2,
			"ceiling":   &params.ServiceCeilingM,
			"vne":       &params.StructuralSpeedLimitMps,
			"low-limit": &params.LowAltitudeSpeedLimitMps,
		}
		values := map[string]*float64{
			"mass": mass, "wing": wing, "ceiling": ceiling, "vne": vne, "low-limit": lowLimit,
		}
		flag.Visit(func(f *flag.Flag) {
			if dst, ok := custom[f.Name]; ok {
				*dst = values[f.Name]
			}
		})
	}

	profile, err := catalog.Resolve(*name, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\navailable: %s\n", err, strings.Join(catalog.Names(), ", "))
		os.Exit(2)
	}

	a := envelope.Assess(profile.Limits(), envelope.FlightRequest{
		TargetAltitudeM: *alt,
		TargetSpeedMps:  *speed,
	})
	code := i18n.Resolve(*lang)

	fmt.Printf("aircraft:    %s\n", profile.Name)
	fmt.Printf("altitude:    %.0f m\n", *alt)
	fmt.Printf("speed:       %.1f m/s\n", *speed)
	fmt.Printf("density:     %.4f kg/m3\n", a.DensityKgM3)
	fmt.Printf("stall speed: %.2f m/s\n", a.StallSpeedMps)
	fmt.Printf("verdict:     %s (%s)\n", a.Verdict, a.Verdict.Code())
	fmt.Printf("message:     %s\n", i18n.Message(code, a.Verdict))

	if a.Verdict.IsFailure() {
		os.Exit(3)
	}
}
