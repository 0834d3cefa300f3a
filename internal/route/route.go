package route

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MaxPoints is the number of points in a complete route: departure and destination
const MaxPoints = 2

// ErrIncomplete is returned when a route without both endpoints is used
var ErrIncomplete = errors.New("route needs a start and an end point")

// Route is a single-leg route of at most two points
type Route struct {
	points []Point
}

// Add appends a point while the route is not complete.
// A point equal to the last one is ignored so a double click does not add it twice.
func (r *Route) Add(p Point) bool {
	if len(r.points) >= MaxPoints {
		return false
	}
	if n := len(r.points); n > 0 && r.points[n-1] == p {
		return false
	}
	r.points = append(r.points, p)
	return true
}

// Reset clears the route
func (r *Route) Reset() {
	r.points = nil
}

// Points returns a copy of the route points
func (r *Route) Points() []Point {
	return slices.Clone(r.points)
}

// Complete reports whether both endpoints are set
func (r *Route) Complete() bool {
	return len(r.points) == MaxPoints
}

// Start returns the departure point
func (r *Route) Start() (Point, bool) {
	if len(r.points) == 0 {
		return Point{}, false
	}
	return r.points[0], true
}

// End returns the destination point
func (r *Route) End() (Point, bool) {
	if !r.Complete() {
		return Point{}, false
	}
	return r.points[1], true
}

// Last returns the most recently added point
func (r *Route) Last() (Point, bool) {
	if len(r.points) == 0 {
		return Point{}, false
	}
	return r.points[len(r.points)-1], true
}

// Leg summarizes a complete route
type Leg struct {
	Start      Point   `json:"start"`
	End        Point   `json:"end"`
	DistanceM  float64 `json:"distance_m"`
	DistanceNM float64 `json:"distance_nm"`
	BearingDeg float64 `json:"bearing_deg"`
}

// Leg returns distance and bearing for a complete route
func (r *Route) Leg() (Leg, error) {
	if !r.Complete() {
		return Leg{}, ErrIncomplete
	}
	start, end := r.points[0], r.points[1]
	d := Haversine(start, end)
	return Leg{
		Start:      start,
		End:        end,
		DistanceM:  d,
		DistanceNM: MetersToNM(d),
		BearingDeg: Bearing(start, end),
	}, nil
}

// Snapshot is the JSON view of a route
type Snapshot struct {
	Points   []Point `json:"points"`
	Complete bool    `json:"complete"`
	Leg      *Leg    `json:"leg,omitempty"`
}

// Snapshot returns the JSON view of the route
func (r *Route) Snapshot() Snapshot {
	s := Snapshot{Points: r.Points(), Complete: r.Complete()}
	if s.Points == nil {
		s.Points = []Point{}
	}
	if leg, err := r.Leg(); err == nil {
		s.Leg = &leg
	}
	return s
}

// Planner holds one route per session. Sessions are kept in an expirable LRU,
// so idle or excess sessions are dropped without a client DELETE.
type Planner struct {
	mu     sync.Mutex
	routes *expirable.LRU[string, *Route]
}

// Default planner bounds
const (
	DefaultMaxSessions = 1024
	DefaultSessionTTL  = time.Hour
)

// NewPlanner creates an empty planner holding at most maxSessions routes,
// each dropped ttl after its last change
func NewPlanner(maxSessions int, ttl time.Duration) *Planner {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Planner{routes: expirable.NewLRU[string, *Route](maxSessions, nil, ttl)}
}

// Add adds a point to the session's route
func (p *Planner) Add(session string, pt Point) (Snapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	r, ok := p.routes.Get(session)
	if !ok {
		r = &Route{}
	}
	added := r.Add(pt)
	// Re-adding refreshes the session's expiry
	p.routes.Add(session, r)
	return r.Snapshot(), added
}

// Reset clears the session's route
func (p *Planner) Reset(session string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.routes.Remove(session)
}

// Get returns a snapshot of the session's route; unknown sessions have an empty route
func (p *Planner) Get(session string) Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	r, ok := p.routes.Get(session)
	if !ok {
		return (&Route{}).Snapshot()
	}
	return r.Snapshot()
}

// Leg returns the session's leg, or ErrIncomplete
func (p *Planner) Leg(session string) (Leg, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	r, ok := p.routes.Get(session)
	if !ok {
		return Leg{}, ErrIncomplete
	}
	return r.Leg()
}

// Len returns the number of live sessions
func (p *Planner) Len() int {
	return p.routes.Len()
}
