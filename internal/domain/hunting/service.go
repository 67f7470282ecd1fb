// Package hunting is the request facing layer over the ephemeris, legal window,
// schedule and activity components.
package hunting

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/huntcast/internal/domain/activity"
	"github.com/yanqian/huntcast/internal/domain/astro"
	"github.com/yanqian/huntcast/internal/domain/regulation"
	"github.com/yanqian/huntcast/internal/domain/schedule"
	apperrors "github.com/yanqian/huntcast/pkg/errors"
	"github.com/yanqian/huntcast/pkg/util"
)

// Service exposes the query operations of the planner.
type Service interface {
	SunTimes(ctx context.Context, req DayRequest) (astro.SunTimes, error)
	LegalWindow(ctx context.Context, req DayRequest) (regulation.Window, error)
	CheckLegal(ctx context.Context, req CheckRequest) (CheckResponse, error)
	LunarPhase(ctx context.Context, req LunarRequest) (astro.LunarPhase, error)
	RecommendedSlots(ctx context.Context, req DayRequest) (SlotsResponse, error)
	DailySchedule(ctx context.Context, req DayRequest) (schedule.DailySchedule, error)
	Forecast(ctx context.Context, req ForecastRequest) (schedule.MultiDayForecast, error)
	Predict(ctx context.Context, req PredictRequest) (activity.Prediction, error)
	Timeline(ctx context.Context, req TimelineRequest) (TimelineResponse, error)
	RecordObservation(ctx context.Context, req ObservationRequest) (Observation, error)
}

type service struct {
	cfg          Config
	planner      *schedule.Planner
	predictor    *activity.Predictor
	observations ObservationRepository
	logger       *slog.Logger
	now          func() time.Time
}

// NewService wires up the hunting facade. observations may be nil.
func NewService(cfg Config, planner *schedule.Planner, predictor *activity.Predictor, observations ObservationRepository, logger *slog.Logger) Service {
	if cfg.DefaultForecastDays <= 0 {
		cfg.DefaultForecastDays = 7
	}
	if cfg.ObservationLookback <= 0 {
		cfg.ObservationLookback = activity.RecentActivityWindow
	}
	return &service{
		cfg:          cfg,
		planner:      planner,
		predictor:    predictor,
		observations: observations,
		logger:       logger.With("component", "hunting.service"),
		now:          util.NowUTC,
	}
}

func (s *service) SunTimes(_ context.Context, req DayRequest) (astro.SunTimes, error) {
	date, loc, err := s.resolveDay(req)
	if err != nil {
		return astro.SunTimes{}, err
	}
	return astro.Sun(date, loc), nil
}

func (s *service) LegalWindow(_ context.Context, req DayRequest) (regulation.Window, error) {
	date, loc, err := s.resolveDay(req)
	if err != nil {
		return regulation.Window{}, err
	}
	return s.planner.Rules().For(date, loc), nil
}

func (s *service) CheckLegal(_ context.Context, req CheckRequest) (CheckResponse, error) {
	if err := validateRequest(req); err != nil {
		return CheckResponse{}, err
	}
	loc, err := s.resolveLocation(req.LocationQuery)
	if err != nil {
		return CheckResponse{}, err
	}
	at := s.now()
	if raw := strings.TrimSpace(req.At); raw != "" {
		at, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return CheckResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "at must be an RFC3339 timestamp", err)
		}
	}
	legal, msg, w := s.planner.Rules().Check(at, loc)
	return CheckResponse{Legal: legal, Message: msg, LegalWindow: w}, nil
}

func (s *service) LunarPhase(_ context.Context, req LunarRequest) (astro.LunarPhase, error) {
	date, err := s.resolveDate(req.Date, s.cfg.DefaultLocation)
	if err != nil {
		return astro.LunarPhase{}, err
	}
	return astro.Moon(date), nil
}

func (s *service) RecommendedSlots(_ context.Context, req DayRequest) (SlotsResponse, error) {
	date, loc, err := s.resolveDay(req)
	if err != nil {
		return SlotsResponse{}, err
	}
	slots, _ := s.planner.Slots(date, loc)
	return SlotsResponse{Date: date, Slots: slots, BestSlot: schedule.Best(slots)}, nil
}

func (s *service) DailySchedule(_ context.Context, req DayRequest) (schedule.DailySchedule, error) {
	date, loc, err := s.resolveDay(req)
	if err != nil {
		return schedule.DailySchedule{}, err
	}
	return s.planner.Daily(date, loc), nil
}

func (s *service) Forecast(_ context.Context, req ForecastRequest) (schedule.MultiDayForecast, error) {
	start, loc, err := s.resolveDay(req.DayRequest)
	if err != nil {
		return schedule.MultiDayForecast{}, err
	}
	days := s.cfg.DefaultForecastDays
	if req.Days != nil {
		days = *req.Days
	}
	forecast, err := s.planner.Forecast(start, days, loc)
	if err != nil {
		return schedule.MultiDayForecast{}, err
	}
	s.logger.Debug("forecast computed", "start", start.String(), "days", days)
	return forecast, nil
}

func (s *service) Predict(ctx context.Context, req PredictRequest) (activity.Prediction, error) {
	if err := validateRequest(req); err != nil {
		return activity.Prediction{}, err
	}
	date, loc, err := s.resolveDay(req.DayRequest)
	if err != nil {
		return activity.Prediction{}, err
	}
	species := s.speciesOrDefault(req.Species)

	pred := s.predictor.Predict(activity.Input{
		Species:         species,
		Date:            date,
		Location:        loc,
		Weather:         req.Weather,
		RecentSightings: s.recentSightings(ctx, species, date, loc),
	})
	if pred.ProfileFallback && species != activity.DefaultSpecies {
		s.logger.Warn("unknown species, using default profile", "species", species)
	}
	s.logger.Info("prediction computed",
		"species", pred.Species,
		"date", date.String(),
		"success_probability", pred.SuccessProbability,
		"weather", pred.WeatherUsed,
	)
	return pred, nil
}

func (s *service) Timeline(_ context.Context, req TimelineRequest) (TimelineResponse, error) {
	if err := validateRequest(req); err != nil {
		return TimelineResponse{}, err
	}
	date, loc, err := s.resolveDay(req.DayRequest)
	if err != nil {
		return TimelineResponse{}, err
	}
	species := s.speciesOrDefault(req.Species)
	entries, profile, known := s.predictor.Timeline(species, date, loc)
	if !known && species != activity.DefaultSpecies {
		s.logger.Warn("unknown species, using default profile", "species", species)
	}
	return TimelineResponse{
		Species:         profile.Species,
		Date:            date,
		Entries:         entries,
		ProfileFallback: !known,
	}, nil
}

func (s *service) RecordObservation(ctx context.Context, req ObservationRequest) (Observation, error) {
	if err := validateRequest(req); err != nil {
		return Observation{}, err
	}
	if s.observations == nil {
		return Observation{}, apperrors.Wrap(apperrors.CodeObservationError, "observation history is not configured", nil)
	}
	loc, err := s.resolveLocation(req.LocationQuery)
	if err != nil {
		return Observation{}, err
	}
	observedAt := s.now()
	if raw := strings.TrimSpace(req.ObservedAt); raw != "" {
		observedAt, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return Observation{}, apperrors.Wrap(apperrors.CodeInvalidInput, "observedAt must be an RFC3339 timestamp", err)
		}
	}
	if observedAt.After(s.now().Add(time.Hour)) {
		return Observation{}, apperrors.Invalidf("observedAt cannot be in the future")
	}

	obs, err := s.observations.Insert(ctx, Observation{
		ID:         uuid.New(),
		Species:    normalizeSpecies(req.Species),
		Latitude:   loc.Latitude,
		Longitude:  loc.Longitude,
		Count:      req.Count,
		ObservedAt: observedAt.UTC(),
		CreatedAt:  s.now(),
	})
	if err != nil {
		return Observation{}, apperrors.Wrap(apperrors.CodeObservationError, "failed to store observation", err)
	}
	s.logger.Info("observation recorded", "species", obs.Species, "count", obs.Count)
	return obs, nil
}

// recentSightings returns nil when no history exists or the lookup fails, so
// the predictor falls back to its placeholder.
func (s *service) recentSightings(ctx context.Context, species string, date util.Date, loc astro.Location) *int {
	if s.observations == nil {
		return nil
	}
	// Count up to the end of the requested local day.
	until := util.Clock(util.MinutesPerDay - 1).On(date.Time(), loc.ZoneOn(date))
	total, hasHistory, err := s.observations.RecentSightings(ctx, SightingQuery{
		Species: species,
		Box:     BoxAround(loc.Latitude, loc.Longitude, s.cfg.ObservationRadiusKm),
		Since:   until.Add(-s.cfg.ObservationLookback),
	})
	if err != nil {
		s.logger.Warn("observation lookup failed, using placeholder", "species", species, "error", err)
		return nil
	}
	if !hasHistory {
		return nil
	}
	return &total
}

func (s *service) resolveDay(req DayRequest) (util.Date, astro.Location, error) {
	if err := validateRequest(req); err != nil {
		return util.Date{}, astro.Location{}, err
	}
	loc, err := s.resolveLocation(req.LocationQuery)
	if err != nil {
		return util.Date{}, astro.Location{}, err
	}
	date, err := s.resolveDate(req.Date, loc)
	if err != nil {
		return util.Date{}, astro.Location{}, err
	}
	return date, loc, nil
}

func (s *service) resolveDate(input string, loc astro.Location) (util.Date, error) {
	if strings.TrimSpace(input) == "" {
		date, _ := loc.LocalDate(s.now())
		return date, nil
	}
	date, err := util.ParseDateValue(input)
	if err != nil {
		return util.Date{}, apperrors.Wrap(apperrors.CodeInvalidInput, "date must be formatted as YYYY-MM-DD", err)
	}
	return date, nil
}

// resolveLocation applies the default location and, when the caller gives
// coordinates without a clock, estimates the offset from the longitude.
func (s *service) resolveLocation(q LocationQuery) (astro.Location, error) {
	if q.Latitude == nil && q.Longitude == nil {
		loc := s.cfg.DefaultLocation
		if q.UTCOffsetMinutes != nil || q.TimeZone != "" {
			loc.UTCOffsetMinutes, loc.TimeZone = 0, ""
			applyClock(&loc, q)
		}
		return loc, validateLocation(loc)
	}
	if q.Latitude == nil || q.Longitude == nil {
		return astro.Location{}, apperrors.Invalidf("latitude and longitude must be supplied together")
	}
	loc := astro.Location{Latitude: *q.Latitude, Longitude: *q.Longitude}
	if q.UTCOffsetMinutes == nil && strings.TrimSpace(q.TimeZone) == "" {
		loc.UTCOffsetMinutes = int(math.Round(loc.Longitude/15)) * 60
	}
	applyClock(&loc, q)
	return loc, validateLocation(loc)
}

func applyClock(loc *astro.Location, q LocationQuery) {
	if q.UTCOffsetMinutes != nil {
		loc.UTCOffsetMinutes = *q.UTCOffsetMinutes
	}
	if tz := strings.TrimSpace(q.TimeZone); tz != "" {
		loc.TimeZone = tz
	}
}

func validateLocation(loc astro.Location) error {
	if err := loc.Validate(); err != nil {
		return apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
	}
	return nil
}

func (s *service) speciesOrDefault(species string) string {
	if normalized := normalizeSpecies(species); normalized != "" {
		return normalized
	}
	return activity.DefaultSpecies
}

func normalizeSpecies(species string) string {
	return strings.ToLower(strings.TrimSpace(species))
}
