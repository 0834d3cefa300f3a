package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yegors/aeroguard/internal/config"
	"github.com/yegors/aeroguard/pkg/logger"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	config     *config.Config
	logger     *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(services Services, cfg *config.Config, log *logger.Logger) *Router {
	return &Router{
		handler:    NewHandler(services, cfg, log),
		middleware: NewMiddleware(log, cfg.Server.DefaultLanguage),
		config:     cfg,
		logger:     log.Named("api-router"),
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(r.config.Server.CORSAllowedOrigins))
	router.Use(r.middleware.Language)

	router.Route("/api/v1", func(router chi.Router) {
		router.Get("/health", r.handler.GetHealth)

		// Aircraft catalog
		router.Get("/aircraft", r.handler.GetAllAircraft)
		router.Get("/aircraft/{name}", r.handler.GetAircraft)

		// Envelope evaluation and curves
		router.Post("/evaluate", r.handler.Evaluate)
		router.Get("/envelope", r.handler.GetEnvelopeCurve)
		router.Get("/takeoff-wind", r.handler.GetTakeoffWindCurve)

		// Route planning
		router.Get("/route/{session}", r.handler.GetRoute)
		router.Post("/route/{session}/points", r.handler.AddRoutePoint)
		router.Delete("/route/{session}", r.handler.ResetRoute)
		router.Get("/route/{session}/wx", r.handler.GetRouteWeather)

		// Weather
		router.Get("/wx", r.handler.GetWeather)

		// Simulation
		router.Post("/simulation", r.handler.StartSimulation)
		router.Get("/simulation/{id}", r.handler.GetSimulation)
		router.Get("/simulation/{id}/stream", r.handler.StreamSimulation)

		// Run history
		router.Get("/runs", r.handler.GetRuns)
		router.Get("/runs/stats", r.handler.GetRunStats)
		router.Get("/runs/{id}", r.handler.GetRun)

		// Localization
		router.Get("/i18n", r.handler.GetLanguages)
		router.Get("/i18n/{lang}", r.handler.GetStrings)

		router.Post("/briefing", r.handler.CreateBriefing)
	})

	return router
}
