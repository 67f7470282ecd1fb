package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/huntcast/internal/domain/activity"
	"github.com/yanqian/huntcast/internal/domain/astro"
	"github.com/yanqian/huntcast/internal/domain/hunting"
	"github.com/yanqian/huntcast/internal/domain/regulation"
	"github.com/yanqian/huntcast/internal/domain/schedule"
	"github.com/yanqian/huntcast/internal/infra/config"
	"github.com/yanqian/huntcast/internal/infra/observation"
	apperrors "github.com/yanqian/huntcast/pkg/errors"
)

func TestRouter_LegalWindowQuebecSummer(t *testing.T) {
	server := newRouterUnderTest(t, newRealService(nil))

	rec := performRequest(server, http.MethodGet, "/api/v1/legal-window?lat=46.8139&lon=-71.2080&tz=America/Toronto&date=2026-06-21", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Start    string `json:"start"`
		End      string `json:"end"`
		SunTimes struct {
			DayLengthMinutes int `json:"dayLengthMinutes"`
		} `json:"sunTimes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Less(t, body.Start, "05:00")
	require.Greater(t, body.End, "21:00")
	require.Greater(t, body.SunTimes.DayLengthMinutes, 15*60)
}

func TestRouter_TimelineHas24Entries(t *testing.T) {
	server := newRouterUnderTest(t, newRealService(nil))

	rec := performRequest(server, http.MethodGet, "/api/v1/timeline?species=deer&date=2026-11-10", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Entries []map[string]any `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Entries, 24)
}

func TestRouter_ForecastOutOfRange(t *testing.T) {
	server := newRouterUnderTest(t, newRealService(nil))

	rec := performRequest(server, http.MethodGet, "/api/v1/forecast?date=2026-11-10&days=20", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.NotEmpty(t, errBody["error"]["message"])
}

func TestRouter_InvalidQueryType(t *testing.T) {
	server := newRouterUnderTest(t, newRealService(nil))

	rec := performRequest(server, http.MethodGet, "/api/v1/sun?lat=north", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid_request", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
}

func TestRouter_PredictWithWeather(t *testing.T) {
	server := newRouterUnderTest(t, newRealService(nil))

	payload := `{"species":"deer","date":"2026-11-10","latitude":46.8139,"longitude":-71.2080,"timeZone":"America/Toronto","weather":{"temperature":5,"windSpeed":5,"precipitation":0}}`
	rec := performRequest(server, http.MethodPost, "/api/v1/predictions", payload)
	require.Equal(t, http.StatusOK, rec.Code)

	var pred activity.Prediction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pred))
	require.True(t, pred.WeatherUsed)
	require.Equal(t, 0.85, pred.Confidence)
	f, ok := pred.Factor(activity.FactorWeather)
	require.True(t, ok)
	require.GreaterOrEqual(t, f.Score, 80.0)
}

func TestRouter_PredictInvalidJSON(t *testing.T) {
	server := newRouterUnderTest(t, &stubService{})

	rec := performRequest(server, http.MethodPost, "/api/v1/predictions", `{"species":42}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid_request", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
}

func TestRouter_ObservationThenPrediction(t *testing.T) {
	repo := observation.NewMemoryRepository()
	server := newRouterUnderTest(t, newRealService(repo))

	now := time.Now().UTC()
	obs := `{"species":"moose","count":2,"latitude":46.82,"longitude":-71.21,"observedAt":"` + now.Add(-2*time.Hour).Format(time.RFC3339) + `"}`
	rec := performRequest(server, http.MethodPost, "/api/v1/observations", obs)
	require.Equal(t, http.StatusCreated, rec.Code)

	payload := `{"species":"moose","date":"` + now.Format("2006-01-02") + `"}`
	rec = performRequest(server, http.MethodPost, "/api/v1/predictions", payload)
	require.Equal(t, http.StatusOK, rec.Code)

	var pred activity.Prediction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pred))
	f, ok := pred.Factor(activity.FactorRecentActivity)
	require.True(t, ok)
	require.Equal(t, 66.0, f.Score)
}

func TestRouter_ObservationUnavailable(t *testing.T) {
	svc := &stubService{
		recordFn: func(ctx context.Context, req hunting.ObservationRequest) (hunting.Observation, error) {
			return hunting.Observation{}, apperrors.Wrap(apperrors.CodeObservationError, "observation history is not configured", nil)
		},
	}
	server := newRouterUnderTest(t, svc)

	rec := performRequest(server, http.MethodPost, "/api/v1/observations", `{"species":"deer","count":1}`)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "observation_unavailable", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
}

func TestRouter_InternalErrorHidesDetails(t *testing.T) {
	svc := &stubService{
		sunFn: func(ctx context.Context, req hunting.DayRequest) (astro.SunTimes, error) {
			return astro.SunTimes{}, errors.New("boom")
		},
	}
	server := newRouterUnderTest(t, svc)

	rec := performRequest(server, http.MethodGet, "/api/v1/sun", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "internal_error", errBody["error"]["code"])
	require.Equal(t, "something went wrong", errBody["error"]["message"])
}

func TestRouter_BindsQueryIntoRequest(t *testing.T) {
	var got hunting.ForecastRequest
	svc := &stubService{
		forecastFn: func(ctx context.Context, req hunting.ForecastRequest) (schedule.MultiDayForecast, error) {
			got = req
			return schedule.MultiDayForecast{}, nil
		},
	}
	server := newRouterUnderTest(t, svc)

	rec := performRequest(server, http.MethodGet, "/api/v1/forecast?lat=45.5&lon=-73.6&utcOffset=-240&date=2026-10-01&days=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.Latitude)
	require.Equal(t, 45.5, *got.Latitude)
	require.Equal(t, -73.6, *got.Longitude)
	require.Equal(t, -240, *got.UTCOffsetMinutes)
	require.Equal(t, "2026-10-01", got.Date)
	require.Equal(t, 3, *got.Days)
}

func TestRouter_Health(t *testing.T) {
	server := newRouterUnderTest(t, &stubService{})
	rec := performRequest(server, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	handler := NewHandler(&stubService{}, newTestLogger())
	cfg := testConfig()
	cfg.HTTP.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1}
	server := NewRouter(cfg, handler)

	require.Equal(t, http.StatusOK, performRequest(server, http.MethodGet, "/api/v1/lunar", "").Code)
	rec := performRequest(server, http.MethodGet, "/api/v1/lunar", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "rate_limit_exceeded", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
}

func TestRouter_CORSPreflight(t *testing.T) {
	server := newRouterUnderTest(t, &stubService{})
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/sun", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func performRequest(server *http.Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func testConfig() *config.Config {
	return &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			CORSOrigins:  []string{"http://localhost:5173"},
		},
	}
}

func newRouterUnderTest(t *testing.T, svc hunting.Service) *http.Server {
	t.Helper()
	return NewRouter(testConfig(), NewHandler(svc, newTestLogger()))
}

func newRealService(repo hunting.ObservationRepository) hunting.Service {
	planner := schedule.NewPlanner(regulation.NewRules(regulation.DefaultOffsetMinutes), nil)
	predictor := activity.NewPredictor(activity.DefaultConfig(), activity.NewCatalog(activity.DefaultProfiles()), planner)
	return hunting.NewService(hunting.Config{
		DefaultLocation:     astro.DefaultLocation(),
		DefaultForecastDays: 7,
		ObservationRadiusKm: 25,
		ObservationLookback: 7 * 24 * time.Hour,
	}, planner, predictor, repo, newTestLogger())
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubService struct {
	sunFn      func(ctx context.Context, req hunting.DayRequest) (astro.SunTimes, error)
	forecastFn func(ctx context.Context, req hunting.ForecastRequest) (schedule.MultiDayForecast, error)
	recordFn   func(ctx context.Context, req hunting.ObservationRequest) (hunting.Observation, error)
}

func (s *stubService) SunTimes(ctx context.Context, req hunting.DayRequest) (astro.SunTimes, error) {
	if s.sunFn != nil {
		return s.sunFn(ctx, req)
	}
	return astro.SunTimes{}, nil
}

func (s *stubService) LegalWindow(context.Context, hunting.DayRequest) (regulation.Window, error) {
	return regulation.Window{}, nil
}

func (s *stubService) CheckLegal(context.Context, hunting.CheckRequest) (hunting.CheckResponse, error) {
	return hunting.CheckResponse{}, nil
}

func (s *stubService) LunarPhase(context.Context, hunting.LunarRequest) (astro.LunarPhase, error) {
	return astro.LunarPhase{}, nil
}

func (s *stubService) RecommendedSlots(context.Context, hunting.DayRequest) (hunting.SlotsResponse, error) {
	return hunting.SlotsResponse{}, nil
}

func (s *stubService) DailySchedule(context.Context, hunting.DayRequest) (schedule.DailySchedule, error) {
	return schedule.DailySchedule{}, nil
}

func (s *stubService) Forecast(ctx context.Context, req hunting.ForecastRequest) (schedule.MultiDayForecast, error) {
	if s.forecastFn != nil {
		return s.forecastFn(ctx, req)
	}
	return schedule.MultiDayForecast{}, nil
}

func (s *stubService) Predict(context.Context, hunting.PredictRequest) (activity.Prediction, error) {
	return activity.Prediction{}, nil
}

func (s *stubService) Timeline(context.Context, hunting.TimelineRequest) (hunting.TimelineResponse, error) {
	return hunting.TimelineResponse{}, nil
}

func (s *stubService) RecordObservation(ctx context.Context, req hunting.ObservationRequest) (hunting.Observation, error) {
	if s.recordFn != nil {
		return s.recordFn(ctx, req)
	}
	return hunting.Observation{}, nil
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
