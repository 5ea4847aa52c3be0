package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/weather-advisor/internal/domain/analytics"
	"github.com/yanqian/weather-advisor/internal/domain/auth"
	"github.com/yanqian/weather-advisor/internal/domain/weather"
	"github.com/yanqian/weather-advisor/internal/infra/analyticsrepo"
	"github.com/yanqian/weather-advisor/internal/infra/assets"
	"github.com/yanqian/weather-advisor/internal/infra/config"
	"github.com/yanqian/weather-advisor/internal/infra/eventqueue"
	"github.com/yanqian/weather-advisor/internal/infra/geo/nominatim"
	"github.com/yanqian/weather-advisor/internal/infra/weatherapi/openmeteo"
	"github.com/yanqian/weather-advisor/pkg/logger"
)

func provideLogger(cfg *config.Config) *slog.Logger {
	return logger.New(cfg.Log.Level, cfg.Log.Format)
}

func provideWeatherConfig(cfg *config.Config) weather.Config {
	return weather.Config{MaxForecastDays: cfg.Weather.MaxForecastDays}
}

func provideGeoResolver(cfg *config.Config) *nominatim.Client {
	return nominatim.NewClient(nominatim.Config{
		BaseURL:   cfg.Weather.GeocoderBaseURL,
		UserAgent: cfg.Weather.UserAgent,
		Language:  cfg.Weather.Language,
		Timeout:   cfg.Weather.Timeout,
	})
}

func provideWeatherProvider(cfg *config.Config, logger *slog.Logger) *openmeteo.Client {
	if strings.TrimSpace(cfg.Weather.APIKey) == "" {
		logger.Warn("weather api key not set, lookups will fail until WEATHER_API_KEY is configured")
	}
	return openmeteo.NewClient(openmeteo.Config{
		BaseURL: cfg.Weather.ProviderBaseURL,
		APIKey:  cfg.Weather.APIKey,
		Timeout: cfg.Weather.Timeout,
	})
}

func provideAnalyticsConfig(cfg *config.Config) analytics.Config {
	return analytics.Config{
		Window:       cfg.Analytics.Window,
		TopLimit:     cfg.Analytics.TopLimit,
		RecentErrors: cfg.Analytics.RecentErrors,
	}
}

func provideAnalyticsRepository(cfg *config.Config, logger *slog.Logger) (analytics.Repository, func()) {
	fallback := analyticsrepo.NewMemoryRepository()
	switch cfg.Analytics.Storage {
	case "postgres":
		pool, ok := openPostgres(cfg.Analytics.Postgres, logger)
		if !ok {
			return fallback, func() {}
		}
		repo := analyticsrepo.NewPostgresRepository(pool)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := repo.Migrate(ctx); err != nil {
			logger.Error("analytics schema migration failed, using memory repository", "error", err)
			pool.Close()
			return fallback, func() {}
		}
		logger.Info("analytics postgres repository enabled")
		return repo, pool.Close
	case "sqlite":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		repo, err := analyticsrepo.OpenSQLite(ctx, cfg.Analytics.SQLite.Path)
		if err != nil {
			logger.Error("failed to open sqlite database, using memory repository", "error", err)
			return fallback, func() {}
		}
		logger.Info("analytics sqlite repository enabled", "path", cfg.Analytics.SQLite.Path)
		return repo, func() {
			if err := repo.Close(); err != nil {
				logger.Error("failed to close sqlite database", "error", err)
			}
		}
	}
	logger.Info("analytics storage set to memory")
	return fallback, func() {}
}

func openPostgres(cfg config.PostgresConfig, logger *slog.Logger) (*pgxpool.Pool, bool) {
	poolConfig, err := pgxpool.ParseConfig(strings.TrimSpace(cfg.DSN))
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return nil, false
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return nil, false
	}
	return pool, true
}

func provideEventQueue(cfg *config.Config, repo analytics.Repository, logger *slog.Logger) (analytics.Queue, func()) {
	handler := eventqueue.Handler(repo.Append)
	immediate := eventqueue.NewImmediateQueue(handler, logger)
	if cfg.Analytics.Queue.Driver != "valkey" {
		return immediate, func() {}
	}

	opt, err := buildValkeyOptions(cfg.Analytics.Queue.Valkey.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to immediate queue", "error", err)
		return immediate, func() {}
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to immediate queue", "error", err)
		return immediate, func() {}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to immediate queue", "error", err)
		client.Close()
		return immediate, func() {}
	}

	queue := eventqueue.NewValkeyQueue(client, cfg.Analytics.Queue.Valkey.Key, handler, logger)
	queue.Start()
	logger.Info("analytics valkey queue enabled", "addr", cfg.Analytics.Queue.Valkey.Addr)
	return queue, func() {
		queue.Close()
		client.Close()
	}
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:         cfg.Auth.JWTSecret,
		TokenTTL:       cfg.Auth.TokenTTL,
		PasswordHash:   cfg.Auth.PasswordHash,
		GoogleClientID: cfg.Auth.Google.ClientID,
		AllowedEmails:  cfg.Auth.AllowedEmails,
	}
}

func provideIDTokenVerifier(cfg *config.Config) auth.IDTokenVerifier {
	clientID := strings.TrimSpace(cfg.Auth.Google.ClientID)
	if clientID == "" {
		return nil
	}
	return auth.NewGoogleVerifier(context.Background(), clientID)
}

func provideAssetSource(cfg *config.Config, logger *slog.Logger) (assets.Source, error) {
	if cfg.Static.Source != "r2" {
		logger.Info("serving static assets from disk", "dir", cfg.Static.Dir)
		return assets.NewDiskSource(cfg.Static.Dir), nil
	}
	r2 := cfg.Static.R2
	source, err := assets.NewR2Source(assets.R2Config{
		Endpoint:  r2.Endpoint,
		AccessKey: r2.AccessKey,
		SecretKey: r2.SecretKey,
		Bucket:    r2.Bucket,
		Region:    r2.Region,
		Prefix:    r2.Prefix,
	}, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("serving static assets from object storage", "bucket", r2.Bucket)
	return source, nil
}
