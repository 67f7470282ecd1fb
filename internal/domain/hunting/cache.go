package hunting

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/huntcast/internal/domain/activity"
	"github.com/yanqian/huntcast/internal/domain/schedule"
)

// DefaultCacheTTL bounds how long a cached result is served.
const DefaultCacheTTL = 6 * time.Hour

type cachedService struct {
	Service
	store           ResultStore
	ttl             time.Duration
	livePredictions bool
	logger          *slog.Logger
}

// NewCachedService serves schedules, forecasts and predictions from store when
// the caller pinned a date. Requests relying on "today" always go to inner.
// Store failures are logged and never surface to the caller.
//
// livePredictions must be set when recorded sightings feed the recent activity
// factor: a new observation changes the prediction, so predictions then always
// go to inner.
func NewCachedService(inner Service, store ResultStore, ttl time.Duration, livePredictions bool, logger *slog.Logger) Service {
	if store == nil {
		return inner
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &cachedService{
		Service:         inner,
		store:           store,
		ttl:             ttl,
		livePredictions: livePredictions,
		logger:          logger.With("component", "hunting.cache"),
	}
}

func (c *cachedService) DailySchedule(ctx context.Context, req DayRequest) (schedule.DailySchedule, error) {
	return cachedCall(ctx, c, "schedule", req.Date, req, func() (schedule.DailySchedule, error) {
		return c.Service.DailySchedule(ctx, req)
	})
}

func (c *cachedService) Forecast(ctx context.Context, req ForecastRequest) (schedule.MultiDayForecast, error) {
	return cachedCall(ctx, c, "forecast", req.Date, req, func() (schedule.MultiDayForecast, error) {
		return c.Service.Forecast(ctx, req)
	})
}

func (c *cachedService) Predict(ctx context.Context, req PredictRequest) (activity.Prediction, error) {
	if c.livePredictions {
		return c.Service.Predict(ctx, req)
	}
	return cachedCall(ctx, c, "prediction", req.Date, req, func() (activity.Prediction, error) {
		return c.Service.Predict(ctx, req)
	})
}

func cachedCall[T any](ctx context.Context, c *cachedService, op, date string, req any, compute func() (T, error)) (T, error) {
	if strings.TrimSpace(date) == "" {
		return compute()
	}
	key, err := cacheKey(op, req)
	if err != nil {
		return compute()
	}

	payload, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache lookup failed", "op", op, "error", err)
	} else if ok {
		var out T
		if err := json.Unmarshal(payload, &out); err == nil {
			c.logger.Debug("cache hit", "op", op)
			return out, nil
		}
		c.logger.Warn("cache payload unreadable", "op", op, "error", err)
	}

	out, err := compute()
	if err != nil {
		return out, err
	}
	encoded, err := json.Marshal(out)
	if err != nil {
		c.logger.Warn("cache encode failed", "op", op, "error", err)
		return out, nil
	}
	if err := c.store.Set(ctx, key, encoded, c.ttl); err != nil {
		c.logger.Warn("cache save failed", "op", op, "error", err)
	}
	return out, nil
}

func cacheKey(op string, req any) (string, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return op + ":" + hex.EncodeToString(sum[:16]), nil
}
