package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yegors/aeroguard/internal/aircraft"
	"github.com/yegors/aeroguard/internal/envelope"
	"github.com/yegors/aeroguard/internal/i18n"
	"github.com/yegors/aeroguard/internal/route"
	"github.com/yegors/aeroguard/internal/storage/sqlite"
	"github.com/yegors/aeroguard/pkg/logger"
)

// Storage defines the run history the service writes to
type Storage interface {
	StoreRun(record *sqlite.RunRecord) error
	GetRun(id string) (*sqlite.RunRecord, error)
	PruneRuns(keep int) (int64, error)
}

// Service evaluates simulation requests and replays their outcome
type Service struct {
	catalog   *aircraft.Catalog
	storage   Storage
	replay    ReplayConfig
	retention int
	logger    *logger.Logger
	now       func() time.Time
}

// NewService creates a new simulation service
func NewService(catalog *aircraft.Catalog, storage Storage, replay ReplayConfig, retention int, log *logger.Logger) *Service {
	return &Service{
		catalog:   catalog,
		storage:   storage,
		replay:    replay,
		retention: retention,
		logger:    log.Named("simulation"),
		now:       time.Now,
	}
}

// ReplayConfig returns the pacing used for replays
func (s *Service) ReplayConfig() ReplayConfig {
	return s.replay
}

// Start evaluates a request over a complete route and records the run.
// The verdict is final before any frame is produced.
func (s *Service) Start(req StartRequest, leg route.Leg) (*Run, error) {
	profile, err := s.catalog.Resolve(req.Aircraft, req.Custom)
	if err != nil {
		return nil, err
	}

	flight := envelope.FlightRequest{TargetAltitudeM: req.AltitudeM, TargetSpeedMps: req.SpeedMps}
	assessment := envelope.Assess(profile.Limits(), flight)
	lang := i18n.Resolve(req.Language)

	run := &Run{
		ID:         uuid.NewString(),
		Aircraft:   profile.Name,
		Custom:     profile.Custom,
		Request:    flight,
		Assessment: assessment,
		Leg:        leg,
		Language:   lang,
		Outcome:    i18n.OutcomeFor(lang, assessment.Verdict),
		CreatedAt:  s.now().UTC(),
	}

	if err := s.storage.StoreRun(toRecord(run)); err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}
	if _, err := s.storage.PruneRuns(s.retention); err != nil {
		s.logger.Warn("Failed to prune run history", logger.Error(err))
	}

	s.logger.Info("Simulation evaluated",
		logger.String("run_id", run.ID),
		logger.String("aircraft", run.Aircraft),
		logger.Float64("altitude_m", flight.TargetAltitudeM),
		logger.Float64("speed_mps", flight.TargetSpeedMps),
		logger.Float64("stall_speed_mps", assessment.StallSpeedMps),
		logger.String("verdict", assessment.Verdict.String()),
		logger.String("code", assessment.Verdict.Code()),
	)

	return run, nil
}

// Get loads a recorded run
func (s *Service) Get(id string) (*Run, error) {
	rec, err := s.storage.GetRun(id)
	if err != nil {
		return nil, err
	}
	return fromRecord(rec)
}

// Plan returns the frames of a run's replay
func (s *Service) Plan(run *Run) []Frame {
	return Plan(run, s.replay)
}

// Stream replays a recorded run through emit in real time
func (s *Service) Stream(ctx context.Context, id string, emit func(Frame) error) error {
	run, err := s.Get(id)
	if err != nil {
		return err
	}

	log := s.logger.WithRunID(id)
	log.Debug("Replay started")

	if err := Replay(ctx, run, s.replay, emit); err != nil {
		log.Debug("Replay stopped", logger.Error(err))
		return err
	}

	log.Debug("Replay finished", logger.String("verdict", run.Assessment.Verdict.String()))
	return nil
}

func toRecord(run *Run) *sqlite.RunRecord {
	return &sqlite.RunRecord{
		ID:            run.ID,
		Aircraft:      run.Aircraft,
		Custom:        run.Custom,
		AltitudeM:     run.Request.TargetAltitudeM,
		SpeedMps:      run.Request.TargetSpeedMps,
		StallSpeedMps: run.Assessment.StallSpeedMps,
		DensityKgM3:   run.Assessment.DensityKgM3,
		Verdict:       run.Assessment.Verdict.String(),
		Language:      run.Language,
		StartLat:      run.Leg.Start.Lat,
		StartLon:      run.Leg.Start.Lon,
		EndLat:        run.Leg.End.Lat,
		EndLon:        run.Leg.End.Lon,
		DistanceM:     run.Leg.DistanceM,
		CreatedAt:     run.CreatedAt,
	}
}

func fromRecord(rec *sqlite.RunRecord) (*Run, error) {
	verdict, err := envelope.ParseVerdict(rec.Verdict)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", rec.ID, err)
	}

	start := route.Point{Lat: rec.StartLat, Lon: rec.StartLon}
	end := route.Point{Lat: rec.EndLat, Lon: rec.EndLon}

	return &Run{
		ID:       rec.ID,
		Aircraft: rec.Aircraft,
		Custom:   rec.Custom,
		Request: envelope.FlightRequest{
			TargetAltitudeM: rec.AltitudeM,
			TargetSpeedMps:  rec.SpeedMps,
		},
		Assessment: envelope.Assessment{
			Verdict:       verdict,
			StallSpeedMps: rec.StallSpeedMps,
			DensityKgM3:   rec.DensityKgM3,
		},
		Leg: route.Leg{
			Start:      start,
			End:        end,
			DistanceM:  rec.DistanceM,
			DistanceNM: route.MetersToNM(rec.DistanceM),
			BearingDeg: route.Bearing(start, end),
		},
		Language:  rec.Language,
		Outcome:   i18n.OutcomeFor(rec.Language, verdict),
		CreatedAt: rec.CreatedAt,
	}, nil
}
