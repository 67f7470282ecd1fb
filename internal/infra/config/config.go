package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Location      LocationConfig      `yaml:"location"`
	Regulation    RegulationConfig    `yaml:"regulation"`
	Forecast      ForecastConfig      `yaml:"forecast"`
	Prediction    PredictionConfig    `yaml:"prediction"`
	Cache         CacheConfig         `yaml:"cache"`
	Observations  ObservationsConfig  `yaml:"observations"`
	ReferenceData ReferenceDataConfig `yaml:"referenceData"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	Retry        RetryConfig     `yaml:"retry"`
	CORSOrigins  []string        `yaml:"corsOrigins"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// LocationConfig is the location used when a request names none.
type LocationConfig struct {
	Latitude         float64 `yaml:"latitude"`
	Longitude        float64 `yaml:"longitude"`
	UTCOffsetMinutes int     `yaml:"utcOffsetMinutes"`
	TimeZone         string  `yaml:"timeZone"`
}

// RegulationConfig holds the legal hunting hours rule.
type RegulationConfig struct {
	OffsetMinutes int `yaml:"offsetMinutes"`
}

// ForecastConfig controls multi-day forecasts.
type ForecastConfig struct {
	DefaultDays int `yaml:"defaultDays"`
}

// PredictionConfig tunes the activity model.
type PredictionConfig struct {
	ConfidenceWithWeather    float64 `yaml:"confidenceWithWeather"`
	ConfidenceWithoutWeather float64 `yaml:"confidenceWithoutWeather"`
	NewMoonScore             float64 `yaml:"newMoonScore"`
	FullMoonScore            float64 `yaml:"fullMoonScore"`
	MaxOptimalTimes          int     `yaml:"maxOptimalTimes"`
}

// CacheConfig controls the result cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
	Prefix  string        `yaml:"prefix"`
	Redis   RedisConfig   `yaml:"redis"`
}

// RedisConfig contains connection information for cache storage.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// ObservationsConfig controls the sighting history.
type ObservationsConfig struct {
	Enabled  bool           `yaml:"enabled"`
	RadiusKm float64        `yaml:"radiusKm"`
	Lookback time.Duration  `yaml:"lookback"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ReferenceDataConfig points at an optional YAML file overriding the
// built-in season, slot and species tables.
type ReferenceDataConfig struct {
	Path string `yaml:"path"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("DEFAULT_LATITUDE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Location.Latitude = parsed
		}
	}
	if v := os.Getenv("DEFAULT_LONGITUDE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Location.Longitude = parsed
		}
	}
	if v := os.Getenv("DEFAULT_UTC_OFFSET_MINUTES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Location.UTCOffsetMinutes = parsed
		}
	}
	if v := os.Getenv("DEFAULT_TIMEZONE"); v != "" {
		cfg.Location.TimeZone = v
	}
	if v := os.Getenv("LEGAL_OFFSET_MINUTES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Regulation.OffsetMinutes = parsed
		}
	}
	if v := os.Getenv("FORECAST_DEFAULT_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Forecast.DefaultDays = parsed
		}
	}
	if v := os.Getenv("CACHE_ENABLED"); v != "" {
		cfg.Cache.Enabled = parseBool(v)
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Cache.TTL = parsed
		}
	}
	if v := os.Getenv("CACHE_REDIS_ENABLED"); v != "" {
		cfg.Cache.Redis.Enabled = parseBool(v)
	}
	if v := os.Getenv("CACHE_REDIS_ADDR"); v != "" {
		cfg.Cache.Redis.Addr = v
	}
	if v := os.Getenv("OBSERVATIONS_ENABLED"); v != "" {
		cfg.Observations.Enabled = parseBool(v)
	}
	if v := os.Getenv("OBSERVATIONS_RADIUS_KM"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Observations.RadiusKm = parsed
		}
	}
	if v := os.Getenv("OBSERVATIONS_LOOKBACK"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Observations.Lookback = parsed
		}
	}
	if v := os.Getenv("OBSERVATIONS_POSTGRES_DSN"); v != "" {
		cfg.Observations.Postgres.DSN = v
	}
	if v := os.Getenv("OBSERVATIONS_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Observations.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("OBSERVATIONS_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Observations.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("REFERENCE_DATA_PATH"); v != "" {
		cfg.ReferenceData.Path = v
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
			Retry: RetryConfig{
				Enabled:     false,
				MaxAttempts: 2,
				BaseBackoff: 100 * time.Millisecond,
				Exclude: []string{
					"/api/v1/observations",
				},
			},
			CORSOrigins: []string{"http://localhost:5173"},
		},
		Location: LocationConfig{
			Latitude:         46.8139,
			Longitude:        -71.2080,
			UTCOffsetMinutes: -300,
			TimeZone:         "America/Toronto",
		},
		Regulation: RegulationConfig{
			OffsetMinutes: 30,
		},
		Forecast: ForecastConfig{
			DefaultDays: 7,
		},
		Prediction: PredictionConfig{
			ConfidenceWithWeather:    0.85,
			ConfidenceWithoutWeather: 0.60,
			NewMoonScore:             80,
			FullMoonScore:            40,
			MaxOptimalTimes:          3,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     6 * time.Hour,
			Prefix:  "huntcast",
			Redis: RedisConfig{
				Enabled: false,
				Addr:    "",
			},
		},
		Observations: ObservationsConfig{
			Enabled:  true,
			RadiusKm: 25,
			Lookback: 7 * 24 * time.Hour,
			Postgres: PostgresConfig{
				DSN:      "",
				MaxConns: 4,
				MinConns: 0,
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	if math.IsNaN(c.Location.Latitude) || c.Location.Latitude < -90 || c.Location.Latitude > 90 {
		return errors.New("location.latitude must be within [-90, 90]")
	}
	if math.IsNaN(c.Location.Longitude) || c.Location.Longitude < -180 || c.Location.Longitude > 180 {
		return errors.New("location.longitude must be within [-180, 180]")
	}
	if c.Location.UTCOffsetMinutes < -840 || c.Location.UTCOffsetMinutes > 840 {
		return errors.New("location.utcOffsetMinutes must be within [-840, 840]")
	}
	if tz := strings.TrimSpace(c.Location.TimeZone); tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return fmt.Errorf("location.timeZone: %w", err)
		}
	}
	if c.Regulation.OffsetMinutes < 0 || c.Regulation.OffsetMinutes > 180 {
		return errors.New("regulation.offsetMinutes must be within [0, 180]")
	}
	if c.Forecast.DefaultDays < 1 || c.Forecast.DefaultDays > 14 {
		return errors.New("forecast.defaultDays must be within [1, 14]")
	}
	if c.Prediction.ConfidenceWithWeather < 0 || c.Prediction.ConfidenceWithWeather > 1 {
		return errors.New("prediction.confidenceWithWeather must be within [0, 1]")
	}
	if c.Prediction.ConfidenceWithoutWeather < 0 || c.Prediction.ConfidenceWithoutWeather > 1 {
		return errors.New("prediction.confidenceWithoutWeather must be within [0, 1]")
	}
	if c.Prediction.ConfidenceWithWeather <= c.Prediction.ConfidenceWithoutWeather {
		return errors.New("prediction.confidenceWithWeather must exceed prediction.confidenceWithoutWeather")
	}
	if c.Prediction.MaxOptimalTimes < 0 {
		return errors.New("prediction.maxOptimalTimes cannot be negative")
	}
	if c.Cache.TTL < 0 {
		return errors.New("cache.ttl cannot be negative")
	}
	if c.Cache.Redis.Enabled && strings.TrimSpace(c.Cache.Redis.Addr) == "" {
		return errors.New("cache.redis.addr cannot be empty when redis cache is enabled")
	}
	if c.Observations.RadiusKm < 0 {
		return errors.New("observations.radiusKm cannot be negative")
	}
	if c.Observations.Lookback < 0 {
		return errors.New("observations.lookback cannot be negative")
	}
	return nil
}
