package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"

	"github.com/yegors/aeroguard/internal/route"
	"github.com/yegors/aeroguard/pkg/logger"
)

// ErrNoCurrentWeather is returned when the API answers without a current_weather block
var ErrNoCurrentWeather = errors.New("response has no current weather")

// Client fetches current conditions from the Open-Meteo forecast API
type Client struct {
	httpClient *http.Client
	config     Config
	cache      *expirable.LRU[string, Conditions]
	logger     *logger.Logger
	now        func() time.Time
}

// NewClient creates a new weather client
func NewClient(config Config, logger *logger.Logger) *Client {
	if config.CacheSize <= 0 {
		config.CacheSize = DefaultConfig().CacheSize
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = DefaultConfig().RetryDelay
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: config.RequestTimeout,
		},
		config: config,
		cache:  expirable.NewLRU[string, Conditions](config.CacheSize, nil, config.CacheExpiry),
		logger: logger.Named("weather"),
		now:    time.Now,
	}
}

// cacheKey rounds coordinates to two decimals (about 1 km), well inside model resolution
func cacheKey(p route.Point) string {
	round := func(v float64) float64 { return math.Round(v*100) / 100 }
	return fmt.Sprintf("%.2f,%.2f", round(p.Lat), round(p.Lon))
}

// Current returns the current conditions at a point, served from cache when fresh
func (c *Client) Current(ctx context.Context, p route.Point) (*Conditions, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	key := cacheKey(p)
	if cached, ok := c.cache.Get(key); ok {
		c.logger.Debug("Weather cache hit", logger.String("key", key))
		return &cached, nil
	}

	cond, err := c.fetchWithRetry(ctx, p)
	if err != nil {
		return nil, err
	}

	c.cache.Add(key, *cond)
	return cond, nil
}

func (c *Client) fetchWithRetry(ctx context.Context, p route.Point) (*Conditions, error) {
	attempts := c.config.MaxRetries + 1
	delay := c.config.RetryDelay

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		cond, err := c.fetch(ctx, p)
		if err == nil {
			return cond, nil
		}
		lastErr = err

		if attempt == attempts-1 {
			break
		}

		c.logger.Warn("Retrying weather request",
			logger.String("location", p.String()),
			logger.Int("attempt", attempt+1),
			logger.Int("max_attempts", attempts),
			logger.Error(err),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}

	return nil, fmt.Errorf("failed to fetch weather after %d attempts: %w", attempts, lastErr)
}

func (c *Client) fetch(ctx context.Context, p route.Point) (*Conditions, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(p.Lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(p.Lon, 'f', 4, 64))
	q.Set("current_weather", "true")
	reqURL := c.config.APIBaseURL + "/v1/forecast?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Fetching weather", logger.String("url", reqURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var data forecastResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if data.CurrentWeather == nil {
		return nil, ErrNoCurrentWeather
	}

	cw := data.CurrentWeather
	return &Conditions{
		Location:         p,
		TemperatureC:     cw.Temperature,
		WindSpeedKmh:     cw.WindSpeed,
		WindSpeedMps:     cw.WindSpeed / route.KmhPerMps,
		WindDirectionDeg: cw.WindDirection,
		WeatherCode:      cw.WeatherCode,
		IsDay:            cw.IsDay == 1,
		ObservedAt:       cw.Time,
		FetchedAt:        c.now().UTC(),
	}, nil
}

// ForRoute fetches conditions at both ends of a leg concurrently.
// A failure at one end is reported in FetchErrors and leaves that end nil.
func (c *Client) ForRoute(ctx context.Context, leg route.Leg) *RouteWeather {
	var start, end *Conditions
	var startErr, endErr error

	var g errgroup.Group
	g.Go(func() error {
		start, startErr = c.Current(ctx, leg.Start)
		return nil
	})
	g.Go(func() error {
		end, endErr = c.Current(ctx, leg.End)
		return nil
	})
	_ = g.Wait()

	rw := &RouteWeather{Start: start, End: end, LastUpdated: c.now().UTC()}
	if startErr != nil {
		rw.FetchErrors = append(rw.FetchErrors, "start: "+startErr.Error())
		c.logger.Warn("Weather unavailable at route start", logger.Error(startErr))
	}
	if endErr != nil {
		rw.FetchErrors = append(rw.FetchErrors, "end: "+endErr.Error())
		c.logger.Warn("Weather unavailable at route end", logger.Error(endErr))
	}
	return rw
}

// Purge drops every cached entry
func (c *Client) Purge() {
	c.cache.Purge()
}
