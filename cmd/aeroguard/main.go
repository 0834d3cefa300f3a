package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yegors/aeroguard/internal/aircraft"
	"github.com/yegors/aeroguard/internal/api"
	"github.com/yegors/aeroguard/internal/briefing"
	"github.com/yegors/aeroguard/internal/config"
	"github.com/yegors/aeroguard/internal/route"
	"github.com/yegors/aeroguard/internal/simulation"
	"github.com/yegors/aeroguard/internal/storage/sqlite"
	"github.com/yegors/aeroguard/internal/weather"
	"github.com/yegors/aeroguard/pkg/logger"
)

var configPath = flag.String("config", "", "Path to a TOML configuration file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("Server failed", logger.Error(err))
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	catalog, err := aircraft.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	log.Info("Aircraft catalog loaded",
		logger.Int("count", catalog.Len()),
		logger.Strings("aircraft", catalog.Names()))

	db, err := sqlite.Open(cfg.Storage.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := sqlite.NewRunStorage(db, log)
	if err != nil {
		return err
	}

	sims := simulation.NewService(catalog, runs, replayConfig(cfg.Simulation), cfg.Simulation.RunRetention, log)

	services := api.Services{
		Catalog:    catalog,
		Planner:    route.NewPlanner(cfg.Server.MaxRouteSessions, cfg.Server.RouteSessionTTL()),
		Simulation: sims,
		Runs:       runs,
	}

	// Leave the interfaces nil when disabled so handlers can tell
	var wx briefing.WeatherSource
	if cfg.Weather.Enabled {
		client := weather.NewClient(weather.Config{
			APIBaseURL:     cfg.Weather.APIBaseURL,
			RequestTimeout: cfg.Weather.RequestTimeout(),
			MaxRetries:     cfg.Weather.MaxRetries,
			CacheExpiry:    cfg.Weather.CacheExpiry(),
			CacheSize:      cfg.Weather.CacheSize,
		}, log)
		services.Weather = client
		wx = client
	}

	var completer briefing.Completer
	if cfg.Briefing.Enabled {
		completer = briefing.NewOpenAICompleter(briefing.Config{
			Enabled:   true,
			APIKey:    cfg.Briefing.OpenAIAPIKey,
			Model:     cfg.Briefing.Model,
			MaxTokens: cfg.Briefing.MaxTokens,
		})
		log.Info("LLM briefings enabled", logger.String("model", cfg.Briefing.Model))
	}
	services.Briefing = briefing.NewService(
		briefing.NewAggregator(sims, wx, log),
		completer,
		time.Duration(cfg.Briefing.TimeoutSeconds)*time.Second,
		log,
	)

	router := api.NewRouter(services, cfg, log)
	server := &http.Server{
		Addr:        cfg.Server.Addr(),
		Handler:     router.Routes(),
		ReadTimeout: time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		// Zero keeps websocket replays open
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-sigCh:
		log.Info("Shutting down", logger.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Warn("HTTP server shutdown error", logger.Error(err))
	}

	log.Info("Shutdown complete")
	return nil
}

func replayConfig(c config.SimulationConfig) simulation.ReplayConfig {
	return simulation.ReplayConfig{
		Steps:        c.Steps,
		StepInterval: time.Duration(c.StepIntervalMs) * time.Millisecond,
		RevealStep:   c.RevealStep,
		RevealPause:  time.Duration(c.RevealPauseMs) * time.Millisecond,
		BaseRPM:      c.BaseRPM,
		RPMJitter:    c.RPMJitter,
	}
}
