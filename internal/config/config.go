package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Logging    LoggingConfig    `toml:"logging"`
	Weather    WeatherConfig    `toml:"weather"`
	Storage    StorageConfig    `toml:"storage"`
	Simulation SimulationConfig `toml:"simulation"`
	Catalog    CatalogConfig    `toml:"catalog"`
	Briefing   BriefingConfig   `toml:"briefing"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Host                string   `toml:"host"`
	Port                int      `toml:"port"`
	ReadTimeoutSeconds  int      `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds int      `toml:"write_timeout_seconds"`
	CORSAllowedOrigins  []string `toml:"cors_allowed_origins"`
	DefaultLanguage     string   `toml:"default_language"`

	// Route sessions are held in memory and dropped when idle or over the limit
	MaxRouteSessions       int `toml:"max_route_sessions"`
	RouteSessionTTLMinutes int `toml:"route_session_ttl_minutes"`
}

// LoggingConfig represents the logging configuration
type LoggingConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// WeatherConfig represents the weather lookup configuration
type WeatherConfig struct {
	Enabled               bool   `toml:"enabled"`
	APIBaseURL            string `toml:"api_base_url"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	MaxRetries            int    `toml:"max_retries"`
	CacheExpiryMinutes    int    `toml:"cache_expiry_minutes"`
	CacheSize             int    `toml:"cache_size"`
}

// StorageConfig represents the run history storage configuration
type StorageConfig struct {
	// DSN defaults to a shared in-memory database so nothing outlives the process
	DSN            string `toml:"dsn"`
	RecentRunLimit int    `toml:"recent_run_limit"`
}

// SimulationConfig represents the replay timing configuration
type SimulationConfig struct {
	Steps          int     `toml:"steps"`
	StepIntervalMs int     `toml:"step_interval_ms"`
	RevealStep     int     `toml:"reveal_step"`
	RevealPauseMs  int     `toml:"reveal_pause_ms"`
	BaseRPM        float64 `toml:"base_rpm"`
	RPMJitter      float64 `toml:"rpm_jitter"`
	RunRetention   int     `toml:"run_retention"`
}

// CatalogConfig points at an optional aircraft catalog file
type CatalogConfig struct {
	Path string `toml:"path"`
}

// BriefingConfig represents the LLM briefing configuration
type BriefingConfig struct {
	Enabled        bool   `toml:"enabled"`
	OpenAIAPIKey   string `toml:"openai_api_key"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	MaxTokens      int    `toml:"max_tokens"`
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:                "0.0.0.0",
			Port:                8080,
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 0, // websocket replays are long-lived
			DefaultLanguage:     "EN",

			MaxRouteSessions:       1024,
			RouteSessionTTLMinutes: 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Weather: WeatherConfig{
			Enabled:               true,
			APIBaseURL:            "https://api.open-meteo.com",
			RequestTimeoutSeconds: 10,
			MaxRetries:            2,
			CacheExpiryMinutes:    10,
			CacheSize:             256,
		},
		Storage: StorageConfig{
			DSN:            "file:aeroguard?mode=memory&cache=shared",
			RecentRunLimit: 50,
		},
		Simulation: SimulationConfig{
			Steps:          100,
			StepIntervalMs: 40,
			RevealStep:     60,
			RevealPauseMs:  1000,
			BaseRPM:        90,
			RPMJitter:      2,
			RunRetention:   128,
		},
		Briefing: BriefingConfig{
			Model:          "gpt-4o-mini",
			TimeoutSeconds: 20,
			MaxTokens:      200,
		},
	}
}

// Load reads a TOML file over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	if cfg.Briefing.OpenAIAPIKey == "" {
		cfg.Briefing.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the services cannot work with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.MaxRouteSessions <= 0 || c.Server.RouteSessionTTLMinutes <= 0 {
		return fmt.Errorf("route session limit and ttl must be positive")
	}
	if c.Storage.DSN == "" {
		return fmt.Errorf("storage dsn is required")
	}
	if c.Weather.Enabled && c.Weather.APIBaseURL == "" {
		return fmt.Errorf("weather api_base_url is required when weather is enabled")
	}

	sim := c.Simulation
	if sim.Steps <= 0 {
		return fmt.Errorf("simulation steps must be positive, got %d", sim.Steps)
	}
	if sim.RevealStep < 0 || sim.RevealStep > sim.Steps {
		return fmt.Errorf("simulation reveal_step %d outside [0, %d]", sim.RevealStep, sim.Steps)
	}
	if sim.StepIntervalMs < 0 || sim.RevealPauseMs < 0 {
		return fmt.Errorf("simulation timings must not be negative")
	}

	if c.Briefing.Enabled && c.Briefing.OpenAIAPIKey == "" {
		return fmt.Errorf("briefing is enabled but no OpenAI API key is configured")
	}

	return nil
}

// Addr returns the listen address of the HTTP server
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RouteSessionTTL returns how long an idle route session is kept
func (s ServerConfig) RouteSessionTTL() time.Duration {
	return time.Duration(s.RouteSessionTTLMinutes) * time.Minute
}

// RequestTimeout returns the weather request timeout as a duration
func (w WeatherConfig) RequestTimeout() time.Duration {
	return time.Duration(w.RequestTimeoutSeconds) * time.Second
}

// CacheExpiry returns the weather cache expiry as a duration
func (w WeatherConfig) CacheExpiry() time.Duration {
	return time.Duration(w.CacheExpiryMinutes) * time.Minute
}
