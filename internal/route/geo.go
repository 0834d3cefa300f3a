package route

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Conversion factors
const (
	EarthRadiusM  = 6371000.0
	MetersPerNM   = 1852.0
	KmhPerMps     = 3.6
	degreesPerRad = 180.0 / math.Pi
)

// Point is a geographic position in decimal degrees
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate checks that the point lies on the globe
func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude out of range: %v", p.Lat)
	}
	if math.IsNaN(p.Lon) || p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("longitude out of range: %v", p.Lon)
	}
	return nil
}

// String formats the point as "lat,lon"
func (p Point) String() string {
	return fmt.Sprintf("%.5f,%.5f", p.Lat, p.Lon)
}

// Haversine calculates the distance in meters between two points
func Haversine(a, b Point) float64 {
	lat1 := a.Lat / degreesPerRad
	lat2 := b.Lat / degreesPerRad
	dlat := lat2 - lat1
	dlon := (b.Lon - a.Lon) / degreesPerRad

	h := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusM * c
}

// Bearing calculates the initial bearing in degrees from a to b.
// Returns a value between 0 and 360 (0 = North, 90 = East).
func Bearing(a, b Point) float64 {
	lat1 := a.Lat / degreesPerRad
	lat2 := b.Lat / degreesPerRad
	dlon := (b.Lon - a.Lon) / degreesPerRad

	y := math.Sin(dlon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dlon)

	return math.Mod(math.Atan2(y, x)*degreesPerRad+360.0, 360.0)
}

// MetersToNM converts meters to nautical miles
func MetersToNM(meters float64) float64 {
	return meters / MetersPerNM
}

// ParsePoint parses a string in the format "lat,lon"
func ParsePoint(s string) (Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("invalid coordinate format, expected 'lat,lon'")
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid latitude: %w", err)
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid longitude: %w", err)
	}

	p := Point{Lat: lat, Lon: lon}
	if err := p.Validate(); err != nil {
		return Point{}, err
	}
	return p, nil
}
