package hunting

import (
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/huntcast/internal/domain/activity"
	"github.com/yanqian/huntcast/internal/domain/regulation"
	"github.com/yanqian/huntcast/internal/domain/schedule"
	"github.com/yanqian/huntcast/pkg/util"
)

// LocationQuery is the caller's optional location. Omitting both coordinates
// selects the configured default location.
type LocationQuery struct {
	Latitude         *float64 `json:"latitude,omitempty" form:"lat" validate:"omitempty,gte=-90,lte=90"`
	Longitude        *float64 `json:"longitude,omitempty" form:"lon" validate:"omitempty,gte=-180,lte=180"`
	UTCOffsetMinutes *int     `json:"utcOffsetMinutes,omitempty" form:"utcOffset" validate:"omitempty,gte=-840,lte=840"`
	TimeZone         string   `json:"timeZone,omitempty" form:"tz" validate:"omitempty,max=64"`
}

// DayRequest selects a date (YYYY-MM-DD, default today) at a location.
type DayRequest struct {
	LocationQuery
	Date string `json:"date,omitempty" form:"date"`
}

// CheckRequest asks whether an instant is legal. At is RFC3339, default now.
type CheckRequest struct {
	LocationQuery
	At string `json:"at,omitempty" form:"at"`
}

// CheckResponse answers a CheckRequest.
type CheckResponse struct {
	Legal       bool              `json:"isLegal"`
	Message     string            `json:"message"`
	LegalWindow regulation.Window `json:"legalWindow"`
}

// LunarRequest selects a date for the moon phase.
type LunarRequest struct {
	Date string `json:"date,omitempty" form:"date"`
}

// SlotsResponse carries the ranked legal slots of a date.
type SlotsResponse struct {
	Date     util.Date       `json:"date"`
	Slots    []schedule.Slot `json:"slots"`
	BestSlot *schedule.Slot  `json:"bestSlot,omitempty"`
}

// ForecastRequest spans Days consecutive dates, default 7.
type ForecastRequest struct {
	DayRequest
	Days *int `json:"days,omitempty" form:"days"`
}

// PredictRequest asks for the activity prediction of a species.
type PredictRequest struct {
	DayRequest
	Species string            `json:"species" form:"species" validate:"max=64"`
	Weather *activity.Weather `json:"weather,omitempty"`
}

// TimelineRequest asks for the hourly activity timeline.
type TimelineRequest struct {
	DayRequest
	Species string `json:"species" form:"species" validate:"max=64"`
}

// TimelineResponse is exactly 24 entries, hour 0 first.
type TimelineResponse struct {
	Species         string                   `json:"species"`
	Date            util.Date                `json:"date"`
	Entries         []activity.TimelineEntry `json:"entries"`
	ProfileFallback bool                     `json:"profileFallback,omitempty"`
}

// ObservationRequest records a field sighting.
type ObservationRequest struct {
	LocationQuery
	Species    string `json:"species" validate:"required,max=64"`
	Count      int    `json:"count" validate:"gte=1,lte=1000"`
	ObservedAt string `json:"observedAt,omitempty"`
}

// Observation is a stored sighting.
type Observation struct {
	ID         uuid.UUID `json:"id"`
	Species    string    `json:"species"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Count      int       `json:"count"`
	ObservedAt time.Time `json:"observedAt"`
	CreatedAt  time.Time `json:"createdAt"`
}
