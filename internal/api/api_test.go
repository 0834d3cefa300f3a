package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/yegors/aeroguard/internal/aircraft"
	"github.com/yegors/aeroguard/internal/briefing"
	"github.com/yegors/aeroguard/internal/config"
	"github.com/yegors/aeroguard/internal/route"
	"github.com/yegors/aeroguard/internal/simulation"
	"github.com/yegors/aeroguard/internal/storage/sqlite"
	"github.com/yegors/aeroguard/internal/weather"
	"github.com/yegors/aeroguard/pkg/logger"
)

type fakeWeather struct{}

func (fakeWeather) Current(_ context.Context, p route.Point) (*weather.Conditions, error) {
	if p.Lat == 0 && p.Lon == 0 {
		return nil, errors.New("upstream down")
	}
	return &weather.Conditions{Location: p, TemperatureC: 18, WindSpeedMps: 3}, nil
}

func (f fakeWeather) ForRoute(ctx context.Context, leg route.Leg) *weather.RouteWeather {
	start, _ := f.Current(ctx, leg.Start)
	end, _ := f.Current(ctx, leg.End)
	return &weather.RouteWeather{Start: start, End: end}
}

func newTestServer(t *testing.T, opts ...func(*config.Config)) *httptest.Server {
	t.Helper()
	log := logger.NewNop()

	db, err := sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	store, err := sqlite.NewRunStorage(db, log)
	if err != nil {
		t.Fatal(err)
	}

	replay := simulation.DefaultReplayConfig()
	replay.StepInterval = 0
	replay.RevealPause = 0

	catalog := aircraft.DefaultCatalog()
	sims := simulation.NewService(catalog, store, replay, 100, log)

	cfg := config.DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	router := NewRouter(Services{
		Catalog:    catalog,
		Planner:    route.NewPlanner(cfg.Server.MaxRouteSessions, cfg.Server.RouteSessionTTL()),
		Weather:    fakeWeather{},
		Simulation: sims,
		Runs:       store,
		Briefing:   briefing.NewService(briefing.NewAggregator(sims, fakeWeather{}, log), nil, 0, log),
	}, cfg, log)

	srv := httptest.NewServer(router.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("%s %s: decode: %v", method, path, err)
	}
	return resp.StatusCode, out
}

func TestEvaluate(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantVerdict string
	}{
		{"safe cruise", `{"aircraft":"Boeing 737-800","altitude_m":8000,"speed_mps":220}`, 200, "safe"},
		{"stall", `{"aircraft":"Boeing 737-800","altitude_m":8000,"speed_mps":50}`, 200, "stall_speed"},
		{"ceiling", `{"aircraft":"Boeing 737-800","altitude_m":13000,"speed_mps":220}`, 200, "ceiling_exceeded"},
		{"structural", `{"aircraft":"Boeing 737-800","altitude_m":8000,"speed_mps":270}`, 200, "structural_overspeed"},
		{"low and fast", `{"aircraft":"Boeing 737-800","altitude_m":500,"speed_mps":200}`, 200, "low_altitude_overspeed"},
		{"custom", `{"custom":{"mass_kg":5000,"wing_area_m2":30},"altitude_m":1000,"speed_mps":100}`, 200, "safe"},
		{"unknown aircraft", `{"aircraft":"Zeppelin","altitude_m":1,"speed_mps":1}`, 404, ""},
		{"malformed", `{"aircraft":`, 400, ""},
		{"negative custom mass", `{"custom":{"mass_kg":-5000},"altitude_m":8000,"speed_mps":220}`, 400, ""},
		{"zero custom mass", `{"custom":{"mass_kg":0},"altitude_m":8000,"speed_mps":220}`, 200, "safe"},
		{"missing speed", `{"aircraft":"Boeing 737-800","altitude_m":100}`, 400, ""},
		{"wrong type", `{"aircraft":"Boeing 737-800","altitude_m":"high","speed_mps":1}`, 400, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, srv, http.MethodPost, "/api/v1/evaluate", tt.body)
			if status != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%v)", status, tt.wantStatus, body)
			}
			if tt.wantVerdict != "" && body["verdict"] != tt.wantVerdict {
				t.Errorf("verdict = %v, want %s", body["verdict"], tt.wantVerdict)
			}
			if tt.wantStatus != 200 && body["error"] == nil {
				t.Error("error body missing")
			}
		})
	}
}

func TestEvaluateLocalizedMessage(t *testing.T) {
	srv := newTestServer(t)
	status, body := do(t, srv, http.MethodPost, "/api/v1/evaluate?lang=tr",
		`{"aircraft":"Boeing 737-800","altitude_m":13000,"speed_mps":220}`)
	if status != 200 || body["language"] != "TR" {
		t.Fatalf("status = %d, body = %v", status, body)
	}
	if msg, _ := body["message"].(string); msg == "" {
		t.Error("message missing")
	}
}

func TestCurves(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		path       string
		wantStatus int
		wantPoints int
	}{
		{"/api/v1/envelope?aircraft=Boeing%20737-800", 200, 100},
		{"/api/v1/envelope?aircraft=Boeing%20737-800&samples=5&min=0&max=4000", 200, 5},
		{"/api/v1/envelope?aircraft=Custom%20%2F%20Manual&mass_kg=9000&samples=3", 200, 3},
		{"/api/v1/takeoff-wind?aircraft=Cessna%20172%20Skyhawk", 200, 100},
		{"/api/v1/takeoff-wind?aircraft=Cessna%20172%20Skyhawk&altitude=1500&samples=7", 200, 7},
		{"/api/v1/envelope", 400, 0},
		{"/api/v1/envelope?aircraft=Zeppelin", 404, 0},
		{"/api/v1/envelope?aircraft=Boeing%20737-800&samples=1", 400, 0},
		{"/api/v1/envelope?aircraft=Boeing%20737-800&min=5000&max=100", 400, 0},
		{"/api/v1/takeoff-wind?aircraft=Boeing%20737-800&altitude=NaN", 400, 0},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, body := do(t, srv, http.MethodGet, tt.path, "")
			if status != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%v)", status, tt.wantStatus, body)
			}
			if tt.wantPoints > 0 {
				points, _ := body["points"].([]any)
				if len(points) != tt.wantPoints {
					t.Errorf("points = %d, want %d", len(points), tt.wantPoints)
				}
			}
		})
	}
}

func TestAircraftRoutes(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, srv, http.MethodGet, "/api/v1/aircraft", "")
	if status != 200 || body["count"] != float64(4) {
		t.Fatalf("status = %d, body = %v", status, body)
	}

	status, body = do(t, srv, http.MethodGet, "/api/v1/aircraft/F-16%20Fighting%20Falcon?lang=fr", "")
	if status != 200 || body["description"] != "Avion de chasse très maniable." {
		t.Errorf("status = %d, body = %v", status, body)
	}

	if status, _ := do(t, srv, http.MethodGet, "/api/v1/aircraft/Zeppelin", ""); status != 404 {
		t.Errorf("unknown aircraft status = %d", status)
	}
}

func TestRouteAndSimulationFlow(t *testing.T) {
	srv := newTestServer(t)
	sim := `{"session":"s1","aircraft":"Boeing 737-800","altitude_m":8000,"speed_mps":50}`

	if status, _ := do(t, srv, http.MethodPost, "/api/v1/simulation", sim); status != http.StatusConflict {
		t.Fatalf("simulation without route status = %d", status)
	}
	if status, _ := do(t, srv, http.MethodGet, "/api/v1/route/s1/wx", ""); status != http.StatusConflict {
		t.Fatalf("weather without route status = %d", status)
	}
	if status, _ := do(t, srv, http.MethodPost, "/api/v1/route/s1/points", `{"lat":95,"lon":0}`); status != 400 {
		t.Fatalf("invalid point status = %d", status)
	}

	do(t, srv, http.MethodPost, "/api/v1/route/s1/points", `{"lat":39.93,"lon":32.86}`)
	_, body := do(t, srv, http.MethodPost, "/api/v1/route/s1/points", `{"lat":41.01,"lon":28.98}`)
	rt, _ := body["route"].(map[string]any)
	if rt["complete"] != true {
		t.Fatalf("route = %v", body)
	}

	if status, body := do(t, srv, http.MethodGet, "/api/v1/route/s1/wx", ""); status != 200 || body["start"] == nil {
		t.Fatalf("route weather status = %d, body = %v", status, body)
	}

	status, body := do(t, srv, http.MethodPost, "/api/v1/simulation", sim)
	if status != http.StatusCreated {
		t.Fatalf("simulation status = %d, body = %v", status, body)
	}
	frames, _ := body["frames"].([]any)
	if len(frames) != 61 {
		t.Errorf("frames = %d, want 61", len(frames))
	}
	run, _ := body["run"].(map[string]any)
	id, _ := run["id"].(string)

	if status, body := do(t, srv, http.MethodGet, "/api/v1/runs/"+id, ""); status != 200 || body["verdict"] != "stall_speed" {
		t.Errorf("run status = %d, body = %v", status, body)
	}
	if status, body := do(t, srv, http.MethodGet, "/api/v1/runs?verdict=stall_speed", ""); status != 200 || body["count"] != float64(1) {
		t.Errorf("runs status = %d, body = %v", status, body)
	}
	if status, _ := do(t, srv, http.MethodGet, "/api/v1/runs?verdict=bogus", ""); status != 400 {
		t.Errorf("bad verdict filter status = %d", status)
	}
	_, stats := do(t, srv, http.MethodGet, "/api/v1/runs/stats", "")
	if stats["total"] != float64(1) {
		t.Errorf("stats = %v", stats)
	}

	status, body = do(t, srv, http.MethodPost, "/api/v1/briefing", fmt.Sprintf(`{"run_id":%q,"language":"EN"}`, id))
	if status != 200 || body["source"] != briefing.SourceStatic {
		t.Errorf("briefing status = %d, body = %v", status, body)
	}

	streamed := streamFrames(t, srv, id)
	if len(streamed) != 61 {
		t.Fatalf("streamed frames = %d, want 61", len(streamed))
	}
	if last := streamed[60]; last.Status != simulation.StatusFailed || last.Outcome == nil {
		t.Errorf("last streamed frame = %+v", last)
	}

	if status, _ := do(t, srv, http.MethodGet, "/api/v1/simulation/nope/stream", ""); status != 404 {
		t.Errorf("unknown run stream status = %d", status)
	}

	_, body = do(t, srv, http.MethodDelete, "/api/v1/route/s1", "")
	if points, _ := body["points"].([]any); len(points) != 0 {
		t.Errorf("route after reset = %v", body)
	}
}

func streamFrames(t *testing.T, srv *httptest.Server, id string) []simulation.Frame {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/simulation/" + id + "/stream"
	ws, err := websocket.Dial(url, "", srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Close()

	var frames []simulation.Frame
	for {
		var f simulation.Frame
		if err := websocket.JSON.Receive(ws, &f); err != nil {
			break
		}
		frames = append(frames, f)
	}
	return frames
}

func TestWeatherAndStrings(t *testing.T) {
	srv := newTestServer(t)

	if status, body := do(t, srv, http.MethodGet, "/api/v1/wx?lat=39.9&lon=32.8", ""); status != 200 || body["temperature_c"] != float64(18) {
		t.Errorf("wx status = %d, body = %v", status, body)
	}
	if status, _ := do(t, srv, http.MethodGet, "/api/v1/wx?lat=39.9", ""); status != 400 {
		t.Errorf("missing lon status = %d", status)
	}
	if status, _ := do(t, srv, http.MethodGet, "/api/v1/wx?lat=0&lon=0", ""); status != http.StatusBadGateway {
		t.Errorf("upstream failure status = %d", status)
	}

	_, body := do(t, srv, http.MethodGet, "/api/v1/i18n/ru", "")
	if body["language"] != "RU" {
		t.Errorf("i18n = %v", body)
	}
	_, body = do(t, srv, http.MethodGet, "/api/v1/health", "")
	if body["status"] != "ok" || body["briefing"] != false {
		t.Errorf("health = %v", body)
	}
}

func TestSimulationRejectsInvalidCustomProfile(t *testing.T) {
	srv := newTestServer(t)
	do(t, srv, http.MethodPost, "/api/v1/route/s1/points", `{"lat":39.93,"lon":32.86}`)
	do(t, srv, http.MethodPost, "/api/v1/route/s1/points", `{"lat":41.01,"lon":28.98}`)

	status, body := do(t, srv, http.MethodPost, "/api/v1/simulation",
		`{"session":"s1","custom":{"mass_kg":-5000},"altitude_m":8000,"speed_mps":220}`)
	if status != http.StatusBadRequest || body["error"] == nil {
		t.Fatalf("status = %d, body = %v", status, body)
	}

	_, stats := do(t, srv, http.MethodGet, "/api/v1/runs/stats", "")
	if stats["total"] != float64(0) {
		t.Errorf("rejected simulation was recorded: %v", stats)
	}

	status, _ = do(t, srv, http.MethodGet, "/api/v1/envelope?aircraft=Custom%20%2F%20Manual&mass_kg=-1", "")
	if status != http.StatusBadRequest {
		t.Errorf("envelope with negative mass status = %d", status)
	}
}

func TestWriteJSONUnencodable(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]float64{"stall_speed_mps": math.NaN()})

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["error"] == "" {
		t.Errorf("body = %q, err = %v", rec.Body.String(), err)
	}
}

func TestStreamOriginCheck(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.Config) {
		cfg.Server.CORSAllowedOrigins = []string{"http://cockpit.example"}
	})
	do(t, srv, http.MethodPost, "/api/v1/route/s1/points", `{"lat":39.93,"lon":32.86}`)
	do(t, srv, http.MethodPost, "/api/v1/route/s1/points", `{"lat":41.01,"lon":28.98}`)
	_, body := do(t, srv, http.MethodPost, "/api/v1/simulation",
		`{"session":"s1","aircraft":"Boeing 737-800","altitude_m":8000,"speed_mps":220}`)
	run, _ := body["run"].(map[string]any)
	id, _ := run["id"].(string)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/simulation/" + id + "/stream"

	if ws, err := websocket.Dial(url, "", "http://evil.example"); err == nil {
		ws.Close()
		t.Error("foreign origin accepted")
	}

	ws, err := websocket.Dial(url, "", "http://cockpit.example")
	if err != nil {
		t.Fatalf("allowed origin rejected: %v", err)
	}
	defer ws.Close()
	var f simulation.Frame
	if err := websocket.JSON.Receive(ws, &f); err != nil || f.Step != 0 {
		t.Errorf("first frame = %+v, err = %v", f, err)
	}
}
