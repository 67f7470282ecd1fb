package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/huntcast/internal/domain/hunting"
	apperrors "github.com/yanqian/huntcast/pkg/errors"
)

// Handler wires the HTTP transport to the hunting service.
type Handler struct {
	svc    hunting.Service
	logger *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(svc hunting.Service, logger *slog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger.With("component", "http.handler"),
	}
}

// SunTimes returns sunrise, sunset and civil twilight for a date.
func (h *Handler) SunTimes(c *gin.Context) {
	var req hunting.DayRequest
	if !bindQuery(c, &req) {
		return
	}
	resp, err := h.svc.SunTimes(c.Request.Context(), req)
	respond(c, resp, err)
}

// LegalWindow returns the legal hunting hours for a date.
func (h *Handler) LegalWindow(c *gin.Context) {
	var req hunting.DayRequest
	if !bindQuery(c, &req) {
		return
	}
	resp, err := h.svc.LegalWindow(c.Request.Context(), req)
	respond(c, resp, err)
}

// CheckLegal reports whether an instant falls inside legal hours.
func (h *Handler) CheckLegal(c *gin.Context) {
	var req hunting.CheckRequest
	if !bindQuery(c, &req) {
		return
	}
	resp, err := h.svc.CheckLegal(c.Request.Context(), req)
	respond(c, resp, err)
}

// LunarPhase returns the moon phase for a date.
func (h *Handler) LunarPhase(c *gin.Context) {
	var req hunting.LunarRequest
	if !bindQuery(c, &req) {
		return
	}
	resp, err := h.svc.LunarPhase(c.Request.Context(), req)
	respond(c, resp, err)
}

// RecommendedSlots returns the ranked legal slots of a date.
func (h *Handler) RecommendedSlots(c *gin.Context) {
	var req hunting.DayRequest
	if !bindQuery(c, &req) {
		return
	}
	resp, err := h.svc.RecommendedSlots(c.Request.Context(), req)
	respond(c, resp, err)
}

// DailySchedule returns the full plan of one date.
func (h *Handler) DailySchedule(c *gin.Context) {
	var req hunting.DayRequest
	if !bindQuery(c, &req) {
		return
	}
	resp, err := h.svc.DailySchedule(c.Request.Context(), req)
	respond(c, resp, err)
}

// Forecast returns consecutive daily schedules.
func (h *Handler) Forecast(c *gin.Context) {
	var req hunting.ForecastRequest
	if !bindQuery(c, &req) {
		return
	}
	resp, err := h.svc.Forecast(c.Request.Context(), req)
	respond(c, resp, err)
}

// Timeline returns the hourly activity of a species.
func (h *Handler) Timeline(c *gin.Context) {
	var req hunting.TimelineRequest
	if !bindQuery(c, &req) {
		return
	}
	resp, err := h.svc.Timeline(c.Request.Context(), req)
	respond(c, resp, err)
}

// Predict scores a hunt for a species, optionally with a weather snapshot.
func (h *Handler) Predict(c *gin.Context) {
	var req hunting.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	resp, err := h.svc.Predict(c.Request.Context(), req)
	respond(c, resp, err)
}

// RecordObservation stores a field sighting.
func (h *Handler) RecordObservation(c *gin.Context) {
	var req hunting.ObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	resp, err := h.svc.RecordObservation(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, mapServiceError(err))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Health is the liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return false
	}
	return true
}

func respond(c *gin.Context, resp any, err error) {
	if err != nil {
		abortWithError(c, mapServiceError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func mapServiceError(err error) *HTTPError {
	switch {
	case apperrors.IsCode(err, apperrors.CodeInvalidInput):
		return NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err)
	case apperrors.IsCode(err, apperrors.CodeObservationError):
		return NewHTTPError(http.StatusServiceUnavailable, "observation_unavailable", errMessage(err), err)
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal_error", "something went wrong", err)
	}
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
