package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/huntcast/internal/domain/activity"
	"github.com/yanqian/huntcast/internal/domain/astro"
	"github.com/yanqian/huntcast/internal/domain/hunting"
	"github.com/yanqian/huntcast/internal/domain/regulation"
	"github.com/yanqian/huntcast/internal/domain/schedule"
	"github.com/yanqian/huntcast/internal/infra/config"
	"github.com/yanqian/huntcast/internal/infra/observation"
	"github.com/yanqian/huntcast/internal/infra/refdata"
	"github.com/yanqian/huntcast/internal/infra/resultcache"
)

func provideReferenceData(cfg *config.Config, logger *slog.Logger) (refdata.Tables, error) {
	tables, err := refdata.Load(cfg.ReferenceData.Path)
	if err != nil {
		return refdata.Tables{}, err
	}
	if cfg.ReferenceData.Path != "" {
		logger.Info("reference data loaded", "path", cfg.ReferenceData.Path, "species", len(tables.Species))
	}
	return tables, nil
}

func provideRules(cfg *config.Config) regulation.Rules {
	return regulation.NewRules(cfg.Regulation.OffsetMinutes)
}

func providePlanner(rules regulation.Rules, tables refdata.Tables) *schedule.Planner {
	return schedule.NewPlanner(rules, tables.Slots)
}

func provideActivityConfig(cfg *config.Config, tables refdata.Tables) activity.Config {
	return activity.Config{
		SeasonFactors:            tables.SeasonTable(),
		ConfidenceWithWeather:    cfg.Prediction.ConfidenceWithWeather,
		ConfidenceWithoutWeather: cfg.Prediction.ConfidenceWithoutWeather,
		NewMoonScore:             cfg.Prediction.NewMoonScore,
		FullMoonScore:            cfg.Prediction.FullMoonScore,
		MaxOptimalTimes:          cfg.Prediction.MaxOptimalTimes,
	}
}

func provideProfileCatalog(tables refdata.Tables) activity.ProfileLookup {
	return activity.NewCatalog(tables.Species)
}

func provideHuntingConfig(cfg *config.Config) hunting.Config {
	return hunting.Config{
		DefaultLocation: astro.Location{
			Latitude:         cfg.Location.Latitude,
			Longitude:        cfg.Location.Longitude,
			UTCOffsetMinutes: cfg.Location.UTCOffsetMinutes,
			TimeZone:         cfg.Location.TimeZone,
		},
		DefaultForecastDays: cfg.Forecast.DefaultDays,
		ObservationRadiusKm: cfg.Observations.RadiusKm,
		ObservationLookback: cfg.Observations.Lookback,
	}
}

func provideHuntingService(cfg *config.Config, huntCfg hunting.Config, planner *schedule.Planner, predictor *activity.Predictor, repo hunting.ObservationRepository, store hunting.ResultStore, logger *slog.Logger) hunting.Service {
	svc := hunting.NewService(huntCfg, planner, predictor, repo, logger)
	if !cfg.Cache.Enabled {
		return svc
	}
	return hunting.NewCachedService(svc, store, cfg.Cache.TTL, repo != nil, logger)
}

func provideObservationRepository(cfg *config.Config, logger *slog.Logger) hunting.ObservationRepository {
	if !cfg.Observations.Enabled {
		logger.Info("observation history disabled")
		return nil
	}
	fallback := observation.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.Observations.Postgres.DSN)
	if dsn == "" {
		logger.Info("observations postgres dsn not set, using memory repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback
	}
	if cfg.Observations.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Observations.Postgres.MaxConns
	}
	if cfg.Observations.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Observations.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	repo := observation.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("observations schema setup failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("observations postgres repository enabled")
	return repo
}

func provideResultStore(cfg *config.Config, logger *slog.Logger) hunting.ResultStore {
	if !cfg.Cache.Enabled {
		return nil
	}
	if cfg.Cache.Redis.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return resultcache.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return resultcache.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
			client.Close()
		} else {
			logger.Info("result cache valkey store enabled", "addr", cfg.Cache.Redis.Addr)
			return resultcache.NewValkeyStore(client, cfg.Cache.Prefix)
		}
	}
	return resultcache.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Cache.Redis.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Cache.Redis.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Cache.Redis.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
