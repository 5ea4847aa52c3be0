package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Log       LogConfig       `yaml:"log"`
	Weather   WeatherConfig   `yaml:"weather"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Static    StaticConfig    `yaml:"static"`
	Auth      AuthConfig      `yaml:"auth"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address         string          `yaml:"address"`
	ReadTimeout     time.Duration   `yaml:"readTimeout"`
	WriteTimeout    time.Duration   `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration   `yaml:"shutdownTimeout"`
	AllowedOrigins  []string        `yaml:"allowedOrigins"`
	RateLimit       RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// WeatherConfig covers both upstream services used by a lookup.
type WeatherConfig struct {
	GeocoderBaseURL string        `yaml:"geocoderBaseUrl"`
	UserAgent       string        `yaml:"userAgent"`
	Language        string        `yaml:"language"`
	ProviderBaseURL string        `yaml:"providerBaseUrl"`
	APIKey          string        `yaml:"apiKey"`
	Timeout         time.Duration `yaml:"timeout"`
	MaxForecastDays int           `yaml:"maxForecastDays"`
}

// AnalyticsConfig controls event ingestion and the dashboard report.
type AnalyticsConfig struct {
	Storage      string         `yaml:"storage"`
	Postgres     PostgresConfig `yaml:"postgres"`
	SQLite       SQLiteConfig   `yaml:"sqlite"`
	Queue        QueueConfig    `yaml:"queue"`
	Window       time.Duration  `yaml:"window"`
	TopLimit     int            `yaml:"topLimit"`
	RecentErrors int            `yaml:"recentErrors"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// SQLiteConfig points at the database file.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// QueueConfig selects how accepted events reach storage.
type QueueConfig struct {
	Driver string       `yaml:"driver"`
	Valkey ValkeyConfig `yaml:"valkey"`
}

// ValkeyConfig contains connection information for the event queue.
type ValkeyConfig struct {
	Addr string `yaml:"addr"`
	Key  string `yaml:"key"`
}

// StaticConfig selects where static assets are read from.
type StaticConfig struct {
	Source string   `yaml:"source"`
	Dir    string   `yaml:"dir"`
	R2     R2Config `yaml:"r2"`
}

// R2Config holds S3-compatible object storage settings.
type R2Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Prefix    string `yaml:"prefix"`
}

// AuthConfig protects the analytics dashboard API.
type AuthConfig struct {
	Enabled       bool          `yaml:"enabled"`
	JWTSecret     string        `yaml:"jwtSecret"`
	TokenTTL      time.Duration `yaml:"tokenTtl"`
	PasswordHash  string        `yaml:"passwordHash"`
	Google        GoogleConfig  `yaml:"google"`
	AllowedEmails []string      `yaml:"allowedEmails"`
}

// GoogleConfig enables Google ID tokens as dashboard credentials.
type GoogleConfig struct {
	ClientID string `yaml:"clientId"`
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
	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Address = ":" + v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
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
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("WEATHER_API_KEY"); v != "" {
		cfg.Weather.APIKey = v
	}
	if v := os.Getenv("GEOCODER_BASE_URL"); v != "" {
		cfg.Weather.GeocoderBaseURL = v
	}
	if v := os.Getenv("WEATHER_BASE_URL"); v != "" {
		cfg.Weather.ProviderBaseURL = v
	}
	if v := os.Getenv("HTTP_SHUTDOWN_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.ShutdownTimeout = parsed
		}
	}
	if v := os.Getenv("WEATHER_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Weather.Timeout = parsed
		}
	}
	if v := os.Getenv("WEATHER_MAX_FORECAST_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Weather.MaxForecastDays = parsed
		}
	}
	if v := os.Getenv("ANALYTICS_STORAGE"); v != "" {
		cfg.Analytics.Storage = strings.ToLower(v)
	}
	if v := os.Getenv("ANALYTICS_POSTGRES_DSN"); v != "" {
		cfg.Analytics.Postgres.DSN = v
	}
	if v := os.Getenv("ANALYTICS_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Analytics.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("ANALYTICS_SQLITE_PATH"); v != "" {
		cfg.Analytics.SQLite.Path = v
	}
	if v := os.Getenv("ANALYTICS_QUEUE"); v != "" {
		cfg.Analytics.Queue.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("ANALYTICS_VALKEY_ADDR"); v != "" {
		cfg.Analytics.Queue.Valkey.Addr = v
	}
	if v := os.Getenv("ANALYTICS_WINDOW"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Analytics.Window = parsed
		}
	}
	if v := os.Getenv("STATIC_SOURCE"); v != "" {
		cfg.Static.Source = strings.ToLower(v)
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		cfg.Static.Dir = v
	}
	if v := os.Getenv("R2_ENDPOINT"); v != "" {
		cfg.Static.R2.Endpoint = v
	}
	if v := os.Getenv("R2_ACCESS_KEY"); v != "" {
		cfg.Static.R2.AccessKey = v
	}
	if v := os.Getenv("R2_SECRET_KEY"); v != "" {
		cfg.Static.R2.SecretKey = v
	}
	if v := os.Getenv("R2_BUCKET"); v != "" {
		cfg.Static.R2.Bucket = v
	}
	if v := os.Getenv("AUTH_ENABLED"); v != "" {
		cfg.Auth.Enabled = parseBool(v)
	}
	if v := os.Getenv("AUTH_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("AUTH_PASSWORD_HASH"); v != "" {
		cfg.Auth.PasswordHash = v
	}
	if v := os.Getenv("AUTH_GOOGLE_CLIENT_ID"); v != "" {
		cfg.Auth.Google.ClientID = v
	}
	if v := os.Getenv("AUTH_ALLOWED_EMAILS"); v != "" {
		cfg.Auth.AllowedEmails = splitList(v)
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:         ":3000",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    40 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Weather: WeatherConfig{
			GeocoderBaseURL: "https://nominatim.openstreetmap.org",
			UserAgent:       "simple-yandex-weather-app/1.0",
			Language:        "ru",
			ProviderBaseURL: "https://customer-api.open-meteo.com/v1/forecast",
			Timeout:         15 * time.Second,
			MaxForecastDays: 15,
		},
		Analytics: AnalyticsConfig{
			Storage: "memory",
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
			SQLite: SQLiteConfig{
				Path: "data/analytics.db",
			},
			Queue: QueueConfig{
				Driver: "immediate",
				Valkey: ValkeyConfig{Key: "analytics:events"},
			},
			Window:       30 * 24 * time.Hour,
			TopLimit:     10,
			RecentErrors: 20,
		},
		Static: StaticConfig{
			Source: "disk",
			Dir:    "web",
		},
		Auth: AuthConfig{
			TokenTTL: 12 * time.Hour,
		},
	}
}

// Validate ensures the configuration is safe to use. The weather API key is
// deliberately not checked here: lookups report its absence per request.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		return errors.New("http.shutdownTimeout must be positive")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if strings.TrimSpace(c.Weather.GeocoderBaseURL) == "" {
		return errors.New("weather.geocoderBaseUrl cannot be empty")
	}
	if strings.TrimSpace(c.Weather.ProviderBaseURL) == "" {
		return errors.New("weather.providerBaseUrl cannot be empty")
	}
	if strings.TrimSpace(c.Weather.UserAgent) == "" {
		return errors.New("weather.userAgent cannot be empty")
	}
	if c.Weather.Timeout <= 0 {
		return errors.New("weather.timeout must be positive")
	}
	if c.Weather.MaxForecastDays < 0 {
		return errors.New("weather.maxForecastDays cannot be negative")
	}
	switch c.Analytics.Storage {
	case "memory":
	case "postgres":
		if strings.TrimSpace(c.Analytics.Postgres.DSN) == "" {
			return errors.New("analytics.postgres.dsn cannot be empty when storage is postgres")
		}
	case "sqlite":
		if strings.TrimSpace(c.Analytics.SQLite.Path) == "" {
			return errors.New("analytics.sqlite.path cannot be empty when storage is sqlite")
		}
	default:
		return fmt.Errorf("analytics.storage %q is not supported (memory, postgres, sqlite)", c.Analytics.Storage)
	}
	switch c.Analytics.Queue.Driver {
	case "immediate":
	case "valkey":
		if strings.TrimSpace(c.Analytics.Queue.Valkey.Addr) == "" {
			return errors.New("analytics.queue.valkey.addr cannot be empty when queue driver is valkey")
		}
	default:
		return fmt.Errorf("analytics.queue.driver %q is not supported (immediate, valkey)", c.Analytics.Queue.Driver)
	}
	if c.Analytics.Window <= 0 {
		return errors.New("analytics.window must be positive")
	}
	if c.Analytics.TopLimit <= 0 {
		return errors.New("analytics.topLimit must be positive")
	}
	if c.Analytics.RecentErrors < 0 {
		return errors.New("analytics.recentErrors cannot be negative")
	}
	switch c.Static.Source {
	case "disk":
		if strings.TrimSpace(c.Static.Dir) == "" {
			return errors.New("static.dir cannot be empty when source is disk")
		}
	case "r2":
		if strings.TrimSpace(c.Static.R2.Endpoint) == "" || strings.TrimSpace(c.Static.R2.Bucket) == "" {
			return errors.New("static.r2.endpoint and static.r2.bucket are required when source is r2")
		}
	default:
		return fmt.Errorf("static.source %q is not supported (disk, r2)", c.Static.Source)
	}
	if c.Auth.Enabled {
		if strings.TrimSpace(c.Auth.JWTSecret) == "" {
			return errors.New("auth.jwtSecret cannot be empty when auth is enabled")
		}
		if c.Auth.TokenTTL <= 0 {
			return errors.New("auth.tokenTtl must be positive")
		}
		if strings.TrimSpace(c.Auth.PasswordHash) == "" && strings.TrimSpace(c.Auth.Google.ClientID) == "" {
			return errors.New("auth requires passwordHash or google.clientId")
		}
		if strings.TrimSpace(c.Auth.Google.ClientID) != "" && len(c.Auth.AllowedEmails) == 0 {
			return errors.New("auth.allowedEmails cannot be empty when google sign-in is enabled")
		}
	}
	return nil
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
