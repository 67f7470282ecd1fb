// Package activity scores how likely game is to move on a date and builds the
// hour-by-hour activity timeline.
package activity

import (
	"github.com/yanqian/huntcast/internal/domain/astro"
	"github.com/yanqian/huntcast/internal/domain/regulation"
	"github.com/yanqian/huntcast/internal/domain/schedule"
	"github.com/yanqian/huntcast/pkg/util"
)

// Weather is a caller supplied snapshot of current conditions.
type Weather struct {
	TemperatureC    float64 `json:"temperature" validate:"gte=-80,lte=60"`
	WindSpeedKmh    float64 `json:"windSpeed" validate:"gte=0,lte=400"`
	PrecipitationMm float64 `json:"precipitation" validate:"gte=0,lte=500"`
	PressureHpa     float64 `json:"pressure,omitempty" validate:"omitempty,gte=850,lte=1090"`
	// PressureChangeHpa is the change over the last three hours.
	PressureChangeHpa *float64 `json:"pressureChange,omitempty" validate:"omitempty,gte=-50,lte=50"`
}

// Impact is a qualitative reading of a factor score.
type Impact string

const (
	ImpactVeryPositive Impact = "very_positive"
	ImpactPositive     Impact = "positive"
	ImpactNeutral      Impact = "neutral"
	ImpactNegative     Impact = "negative"
	ImpactVeryNegative Impact = "very_negative"
)

// ImpactOf bands a 0-100 score.
func ImpactOf(score float64) Impact {
	switch {
	case score >= 80:
		return ImpactVeryPositive
	case score >= 60:
		return ImpactPositive
	case score >= 40:
		return ImpactNeutral
	case score >= 20:
		return ImpactNegative
	default:
		return ImpactVeryNegative
	}
}

// Factor names.
const (
	FactorSeason         = "season"
	FactorWeather        = "weather"
	FactorLunar          = "lunar"
	FactorPressure       = "pressure"
	FactorRecentActivity = "recent_activity"
)

// Factor is one contributing signal.
type Factor struct {
	Name        string  `json:"name"`
	Score       float64 `json:"score"`
	Impact      Impact  `json:"impact"`
	Description string  `json:"description"`
}

func newFactor(name string, score float64, description string) Factor {
	score = clampScore(score)
	return Factor{Name: name, Score: score, Impact: ImpactOf(score), Description: description}
}

// Input gathers everything a prediction depends on.
type Input struct {
	Species  string
	Date     util.Date
	Location astro.Location
	Weather  *Weather
	// RecentSightings is nil when no observation history is available.
	RecentSightings *int
}

// Prediction is the composite forecast for one species and date.
type Prediction struct {
	Species            string            `json:"species"`
	DisplayName        string            `json:"displayName"`
	Date               util.Date         `json:"date"`
	Location           astro.Location    `json:"location"`
	Factors            []Factor          `json:"factors"`
	SuccessProbability float64           `json:"successProbability"`
	Confidence         float64           `json:"confidence"`
	Recommendation     string            `json:"recommendation"`
	OptimalTimes       []schedule.Slot   `json:"optimalTimes"`
	LegalWindow        regulation.Window `json:"legalWindow"`
	Lunar              astro.LunarPhase  `json:"lunarPhase"`
	WeatherUsed        bool              `json:"weatherUsed"`
	ProfileFallback    bool              `json:"profileFallback,omitempty"`
}

// Factor returns the named factor.
func (p Prediction) Factor(name string) (Factor, bool) {
	for _, f := range p.Factors {
		if f.Name == name {
			return f, true
		}
	}
	return Factor{}, false
}

// Level is the ordinal activity classification of an hour.
type Level string

const (
	LevelVeryLow  Level = "very_low"
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
	LevelVeryHigh Level = "very_high"
)

var levels = [5]Level{LevelVeryLow, LevelLow, LevelModerate, LevelHigh, LevelVeryHigh}

// Light classifies natural light during an hour.
type Light string

const (
	LightDark     Light = "dark"
	LightDawn     Light = "dawn"
	LightDaylight Light = "daylight"
	LightDusk     Light = "dusk"
	LightTwilight Light = "twilight"
)

// TimelineEntry describes one local hour.
type TimelineEntry struct {
	Hour     int   `json:"hour"`
	Activity Level `json:"activityLevel"`
	Legal    bool  `json:"isLegal"`
	Light    Light `json:"lightCondition"`
}

func clampScore(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}
