package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/net/websocket"

	"github.com/yegors/aeroguard/internal/aircraft"
	"github.com/yegors/aeroguard/internal/briefing"
	"github.com/yegors/aeroguard/internal/config"
	"github.com/yegors/aeroguard/internal/envelope"
	"github.com/yegors/aeroguard/internal/i18n"
	"github.com/yegors/aeroguard/internal/route"
	"github.com/yegors/aeroguard/internal/simulation"
	"github.com/yegors/aeroguard/internal/storage/sqlite"
	"github.com/yegors/aeroguard/internal/weather"
	"github.com/yegors/aeroguard/pkg/logger"
)

const (
	maxCurveSamples = 1000
	maxBodyBytes    = 1 << 16
)

var (
	errWeatherDisabled = errors.New("weather lookup is disabled")
	errOriginRejected  = errors.New("origin not allowed")
)

// WeatherLookup fetches current conditions
type WeatherLookup interface {
	Current(ctx context.Context, p route.Point) (*weather.Conditions, error)
	ForRoute(ctx context.Context, leg route.Leg) *weather.RouteWeather
}

// RunHistory reads recorded runs
type RunHistory interface {
	GetRun(id string) (*sqlite.RunRecord, error)
	GetRecentRuns(limit int) ([]*sqlite.RunRecord, error)
	GetRunsByVerdict(verdict string, limit int) ([]*sqlite.RunRecord, error)
	CountByVerdict() ([]sqlite.VerdictCount, error)
}

// Services are the components behind the API. Weather and Briefing may be nil.
type Services struct {
	Catalog    *aircraft.Catalog
	Planner    *route.Planner
	Weather    WeatherLookup
	Simulation *simulation.Service
	Runs       RunHistory
	Briefing   *briefing.Service
}

// Handler contains the HTTP handlers
type Handler struct {
	services Services
	config   *config.Config
	logger   *logger.Logger
	started  time.Time
}

// NewHandler creates a new handler
func NewHandler(services Services, cfg *config.Config, log *logger.Logger) *Handler {
	return &Handler{
		services: services,
		config:   cfg,
		logger:   log.Named("api-handler"),
		started:  time.Now(),
	}
}

// GetHealth reports service status
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"aircraft":  h.services.Catalog.Len(),
		"weather":   h.services.Weather != nil,
		"briefing":  h.services.Briefing != nil && h.services.Briefing.Enabled(),
		"uptime_s":  int(time.Since(h.started).Seconds()),
		"timestamp": time.Now().UTC(),
	})
}

// GetAllAircraft returns the catalog in display order
func (h *Handler) GetAllAircraft(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)
	profiles := h.services.Catalog.All()

	out := make([]aircraftView, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, newAircraftView(p, lang))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"aircraft": out,
		"count":    len(out),
	})
}

// GetAircraft returns one catalog entry
func (h *Handler) GetAircraft(w http.ResponseWriter, r *http.Request) {
	p, err := h.services.Catalog.Get(chi.URLParam(r, "name"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newAircraftView(p, requestLanguage(r)))
}

type aircraftView struct {
	aircraft.Profile
	Description string `json:"description"`
}

func newAircraftView(p aircraft.Profile, lang string) aircraftView {
	return aircraftView{Profile: p, Description: p.Description(lang)}
}

type evaluateRequest struct {
	Aircraft  string                 `json:"aircraft"`
	Custom    *aircraft.CustomParams `json:"custom,omitempty"`
	AltitudeM *float64               `json:"altitude_m"`
	SpeedMps  *float64               `json:"speed_mps"`
}

func (req evaluateRequest) validate() error {
	if req.Aircraft == "" && req.Custom == nil {
		return errors.New("aircraft or custom is required")
	}
	if req.AltitudeM == nil || req.SpeedMps == nil {
		return errors.New("altitude_m and speed_mps are required")
	}
	return nil
}

type evaluateResponse struct {
	Aircraft      string           `json:"aircraft"`
	Custom        bool             `json:"custom"`
	AltitudeM     float64          `json:"altitude_m"`
	SpeedMps      float64          `json:"speed_mps"`
	Verdict       envelope.Verdict `json:"verdict"`
	Failed        bool             `json:"failed"`
	StallSpeedMps float64          `json:"stall_speed_mps"`
	DensityKgM3   float64          `json:"density_kg_m3"`
	Language      string           `json:"language"`
	Message       string           `json:"message"`
}

// Evaluate runs the envelope check for one request
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.services.Catalog.Resolve(req.Aircraft, req.Custom)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	flight := envelope.FlightRequest{TargetAltitudeM: *req.AltitudeM, TargetSpeedMps: *req.SpeedMps}
	a := envelope.Assess(profile.Limits(), flight)
	lang := requestLanguage(r)

	writeJSON(w, http.StatusOK, evaluateResponse{
		Aircraft:      profile.Name,
		Custom:        profile.Custom,
		AltitudeM:     flight.TargetAltitudeM,
		SpeedMps:      flight.TargetSpeedMps,
		Verdict:       a.Verdict,
		Failed:        a.Verdict.IsFailure(),
		StallSpeedMps: a.StallSpeedMps,
		DensityKgM3:   a.DensityKgM3,
		Language:      lang,
		Message:       i18n.Message(lang, a.Verdict),
	})
}

type curveResponse struct {
	Aircraft    string                `json:"aircraft"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Points      []envelope.CurvePoint `json:"points"`
}

// GetEnvelopeCurve returns stall speed against altitude
func (h *Handler) GetEnvelopeCurve(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.profileFromQuery(w, r)
	if !ok {
		return
	}

	minAlt, err1 := queryFloat(r, "min", envelope.DefaultEnvelopeMinAltM)
	maxAlt, err2 := queryFloat(r, "max", envelope.DefaultEnvelopeMaxAltM)
	samples, err3 := querySamples(r)
	if err := errors.Join(err1, err2, err3); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if minAlt >= maxAlt {
		writeError(w, http.StatusBadRequest, "min must be below max")
		return
	}

	lang := requestLanguage(r)
	writeJSON(w, http.StatusOK, curveResponse{
		Aircraft:    profile.Name,
		Title:       i18n.Text(lang, i18n.KeyEnvTitle),
		Description: i18n.Text(lang, i18n.KeyEnvDesc),
		Points:      envelope.EnvelopeCurve(profile.Limits(), minAlt, maxAlt, samples),
	})
}

// GetTakeoffWindCurve returns required ground speed against headwind
func (h *Handler) GetTakeoffWindCurve(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.profileFromQuery(w, r)
	if !ok {
		return
	}

	alt, err1 := queryFloat(r, "altitude", 0)
	minWind, err2 := queryFloat(r, "min_wind", envelope.DefaultMinWindMps)
	maxWind, err3 := queryFloat(r, "max_wind", envelope.DefaultMaxWindMps)
	samples, err4 := querySamples(r)
	if err := errors.Join(err1, err2, err3, err4); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if minWind >= maxWind {
		writeError(w, http.StatusBadRequest, "min_wind must be below max_wind")
		return
	}

	lang := requestLanguage(r)
	writeJSON(w, http.StatusOK, curveResponse{
		Aircraft:    profile.Name,
		Title:       i18n.Text(lang, i18n.KeyWindTitle),
		Description: i18n.Text(lang, i18n.KeyWindDesc),
		Points:      envelope.TakeoffWindCurve(profile.Limits(), alt, minWind, maxWind, samples),
	})
}

// profileFromQuery resolves ?aircraft=, reading custom scalars from the query
// when the custom entry is selected. It writes the error response itself.
func (h *Handler) profileFromQuery(w http.ResponseWriter, r *http.Request) (aircraft.Profile, bool) {
	name := r.URL.Query().Get("aircraft")
	if name == "" {
		writeError(w, http.StatusBadRequest, "aircraft is required")
		return aircraft.Profile{}, false
	}

	var params *aircraft.CustomParams
	if name == aircraft.CustomName {
		params = &aircraft.CustomParams{}
		fields := []struct {
			key string
			dst **float64
		}{
			{"mass_kg", &params.MassKg},
			{"wing_area_m2", &params.WingAreaM2},
			{"service_ceiling_m", &params.ServiceCeilingM},
			{"structural_speed_limit_mps", &params.StructuralSpeedLimitMps},
			{"low_altitude_speed_limit_mps", &params.LowAltitudeSpeedLimitMps},
		}
		for _, f := range fields {
			if r.URL.Query().Get(f.key) == "" {
				continue
			}
			v, err := queryFloat(r, f.key, 0)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return aircraft.Profile{}, false
			}
			*f.dst = &v
		}
	}

	profile, err := h.services.Catalog.Resolve(name, params)
	if err != nil {
		h.writeServiceError(w, r, err)
		return aircraft.Profile{}, false
	}
	return profile, true
}

// GetRoute returns the session's route
func (h *Handler) GetRoute(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.services.Planner.Get(chi.URLParam(r, "session")))
}

// AddRoutePoint appends a point to the session's route
func (h *Handler) AddRoutePoint(w http.ResponseWriter, r *http.Request) {
	var p route.Point
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := p.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, added := h.services.Planner.Add(chi.URLParam(r, "session"), p)
	writeJSON(w, http.StatusOK, map[string]any{
		"route": snap,
		"added": added,
	})
}

// ResetRoute clears the session's route
func (h *Handler) ResetRoute(w http.ResponseWriter, r *http.Request) {
	session := chi.URLParam(r, "session")
	h.services.Planner.Reset(session)
	writeJSON(w, http.StatusOK, h.services.Planner.Get(session))
}

// GetRouteWeather returns the weather at both ends of the session's route
func (h *Handler) GetRouteWeather(w http.ResponseWriter, r *http.Request) {
	if h.services.Weather == nil {
		writeError(w, http.StatusServiceUnavailable, errWeatherDisabled.Error())
		return
	}
	leg, err := h.services.Planner.Leg(chi.URLParam(r, "session"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.services.Weather.ForRoute(r.Context(), leg))
}

// GetWeather returns the current weather at ?lat=&lon=
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	if h.services.Weather == nil {
		writeError(w, http.StatusServiceUnavailable, errWeatherDisabled.Error())
		return
	}

	lat, err1 := queryFloat(r, "lat", math.NaN())
	lon, err2 := queryFloat(r, "lon", math.NaN())
	if err := errors.Join(err1, err2); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p := route.Point{Lat: lat, Lon: lon}
	if err := p.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.services.Weather.Current(r.Context(), p)
	if err != nil {
		h.logger.Warn("Weather lookup failed", logger.String("point", p.String()), logger.Error(err))
		writeError(w, http.StatusBadGateway, "weather lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type simulationRequest struct {
	simulation.StartRequest
	Session string `json:"session"`
}

type simulationResponse struct {
	Run    *simulation.Run    `json:"run"`
	Frames []simulation.Frame `json:"frames"`
	Stream string             `json:"stream"`
}

// StartSimulation evaluates a request over the session's route and records the run
func (h *Handler) StartSimulation(w http.ResponseWriter, r *http.Request) {
	var req simulationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Session == "" {
		writeError(w, http.StatusBadRequest, "session is required")
		return
	}
	if req.Aircraft == "" && req.Custom == nil {
		writeError(w, http.StatusBadRequest, "aircraft or custom is required")
		return
	}
	if req.Language == "" {
		req.Language = requestLanguage(r)
	}

	leg, err := h.services.Planner.Leg(req.Session)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	run, err := h.services.Simulation.Start(req.StartRequest, leg)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, h.simulationView(run))
}

// GetSimulation returns a recorded run and its frames
func (h *Handler) GetSimulation(w http.ResponseWriter, r *http.Request) {
	run, err := h.services.Simulation.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.simulationView(run))
}

func (h *Handler) simulationView(run *simulation.Run) simulationResponse {
	return simulationResponse{
		Run:    run,
		Frames: h.services.Simulation.Plan(run),
		Stream: fmt.Sprintf("/api/v1/simulation/%s/stream", run.ID),
	}
}

// StreamSimulation replays a run over a websocket, one JSON frame per message
func (h *Handler) StreamSimulation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.services.Simulation.Get(id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	log := h.logger.WithRunID(id).WithRequestID(middleware.GetReqID(r.Context()))

	allowed := h.config.Server.CORSAllowedOrigins
	server := websocket.Server{
		// Browsers do not apply CORS to websockets, so the origin is checked here.
		// Clients that send no Origin are not browsers and are let through.
		Handshake: func(_ *websocket.Config, req *http.Request) error {
			origin := req.Header.Get("Origin")
			if origin == "" || originAllowed(allowed, origin) {
				return nil
			}
			log.Warn("Rejected replay stream origin", logger.String("origin", origin))
			return errOriginRejected
		},
		Handler: func(ws *websocket.Conn) {
			defer ws.Close()

			ctx, cancel := context.WithCancel(r.Context())
			defer cancel()

			// The client never sends; a read returning means it went away
			go func() {
				io.Copy(io.Discard, ws)
				cancel()
			}()

			err := h.services.Simulation.Stream(ctx, id, func(f simulation.Frame) error {
				return websocket.JSON.Send(ws, f)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("Replay stream ended early", logger.Error(err))
			}
		},
	}
	server.ServeHTTP(w, r)
}

// GetRuns returns recent runs, optionally filtered by ?verdict=
func (h *Handler) GetRuns(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", h.config.Storage.RecentRunLimit)
	if err != nil || limit <= 0 {
		writeError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}

	var runs []*sqlite.RunRecord
	if v := r.URL.Query().Get("verdict"); v != "" {
		verdict, perr := envelope.ParseVerdict(v)
		if perr != nil {
			writeError(w, http.StatusBadRequest, perr.Error())
			return
		}
		runs, err = h.services.Runs.GetRunsByVerdict(verdict.String(), limit)
	} else {
		runs, err = h.services.Runs.GetRecentRuns(limit)
	}
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if runs == nil {
		runs = []*sqlite.RunRecord{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"runs":  runs,
		"count": len(runs),
	})
}

// GetRun returns one recorded run
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	rec, err := h.services.Runs.GetRun(chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// GetRunStats returns run counts per verdict
func (h *Handler) GetRunStats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.services.Runs.CountByVerdict()
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	total := 0
	byVerdict := make(map[string]int, len(envelope.Verdicts))
	for _, v := range envelope.Verdicts {
		byVerdict[v.String()] = 0
	}
	for _, c := range counts {
		byVerdict[c.Verdict] = c.Count
		total += c.Count
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total":      total,
		"by_verdict": byVerdict,
	})
}

// GetLanguages lists the supported language codes
func (h *Handler) GetLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"languages": i18n.Languages,
		"default":   requestLanguage(r),
	})
}

// GetStrings returns the UI string table for a language
func (h *Handler) GetStrings(w http.ResponseWriter, r *http.Request) {
	lang := i18n.Resolve(chi.URLParam(r, "lang"))
	writeJSON(w, http.StatusOK, map[string]any{
		"language": lang,
		"strings":  i18n.Table(lang),
	})
}

type briefingRequest struct {
	RunID    string `json:"run_id"`
	Language string `json:"language"`
}

// CreateBriefing writes a pilot briefing for a recorded run
func (h *Handler) CreateBriefing(w http.ResponseWriter, r *http.Request) {
	if h.services.Briefing == nil {
		writeError(w, http.StatusServiceUnavailable, "briefings are unavailable")
		return
	}

	var req briefingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.RunID == "" {
		writeError(w, http.StatusBadRequest, "run_id is required")
		return
	}

	b, err := h.services.Briefing.Brief(r.Context(), req.RunID, req.Language)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// writeServiceError maps domain errors to status codes
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, aircraft.ErrInvalidParams):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, aircraft.ErrUnknownAircraft), sqlite.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, route.ErrIncomplete):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.WithRequestID(middleware.GetReqID(r.Context())).Error("Request failed",
			logger.String("path", r.URL.Path),
			logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func queryFloat(r *http.Request, key string, def float64) (float64, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		if math.IsNaN(def) {
			return 0, fmt.Errorf("%s is required", key)
		}
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s must be a finite number", key)
	}
	return v, nil
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return v, nil
}

func querySamples(r *http.Request) (int, error) {
	n, err := queryInt(r, "samples", envelope.DefaultCurveSamples)
	if err != nil {
		return 0, err
	}
	if n < 2 || n > maxCurveSamples {
		return 0, fmt.Errorf("samples must be between 2 and %d", maxCurveSamples)
	}
	return n, nil
}

// writeJSON encodes before writing the header so an unencodable value becomes a 500
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"failed to encode response"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
