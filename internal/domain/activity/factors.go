package activity

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/yanqian/huntcast/internal/domain/astro"
	"github.com/yanqian/huntcast/pkg/util"
)

func (p *Predictor) seasonFactor(profile Profile, date util.Date, loc astro.Location) Factor {
	month := date.Month()
	idx := int(month) - 1
	if loc.SouthernHemisphere() {
		idx = (idx + 6) % 12
	}
	table := p.cfg.SeasonFactors[:]
	if len(profile.SeasonFactors) == 12 {
		table = profile.SeasonFactors
	}
	score := table[idx] * 100

	var desc string
	switch {
	case score >= 90:
		desc = fmt.Sprintf("%s is peak season for %s", month, profile.DisplayName)
	case score >= 60:
		desc = fmt.Sprintf("%s is an active month for %s", month, profile.DisplayName)
	default:
		desc = fmt.Sprintf("%s is a quiet month for %s", month, profile.DisplayName)
	}
	return newFactor(FactorSeason, score, desc)
}

// weatherFactor starts from a perfect score and subtracts for each condition
// outside the species' comfort range. The score never drops below 10.
func weatherFactor(profile Profile, w Weather) Factor {
	score := 100.0
	var notes []string

	var tempOff float64
	switch {
	case w.TemperatureC < profile.TempMinC:
		tempOff = profile.TempMinC - w.TemperatureC
	case w.TemperatureC > profile.TempMaxC:
		tempOff = w.TemperatureC - profile.TempMaxC
	}
	if tempOff > 0 {
		score -= math.Min(40, tempOff*3)
		notes = append(notes, fmt.Sprintf("%.0f°C is %.0f°C outside the preferred %.0f..%.0f°C", w.TemperatureC, tempOff, profile.TempMinC, profile.TempMaxC))
	}

	if excess := w.WindSpeedKmh - profile.CalmWindKmh; excess > 0 {
		score -= math.Min(35, excess*2*profile.WindSensitivity)
		notes = append(notes, fmt.Sprintf("wind %.0f km/h makes game nervous", w.WindSpeedKmh))
	}

	switch band := precipitationBand(w.PrecipitationMm); band {
	case "light":
		score -= 10 * profile.PrecipSensitivity
		notes = append(notes, "light precipitation")
	case "moderate":
		score -= 25 * profile.PrecipSensitivity
		notes = append(notes, "moderate precipitation")
	case "heavy":
		score -= 40 * profile.PrecipSensitivity
		notes = append(notes, "heavy precipitation keeps game in cover")
	}

	score = math.Max(10, score)
	desc := "Conditions are within the species' comfort range"
	if len(notes) > 0 {
		desc = strings.ToUpper(notes[0][:1]) + strings.Join(notes, "; ")[1:]
	}
	return newFactor(FactorWeather, round1(score), desc)
}

func precipitationBand(mm float64) string {
	switch {
	case mm <= 0.2:
		return "trace"
	case mm < 2.5:
		return "light"
	case mm < 7.6:
		return "moderate"
	default:
		return "heavy"
	}
}

func (p *Predictor) lunarFactor(phase astro.LunarPhase) Factor {
	score := p.cfg.FullMoonScore + (p.cfg.NewMoonScore-p.cfg.FullMoonScore)*(1-phase.Illumination)
	name := strings.ReplaceAll(string(phase.Name), "_", " ")
	desc := fmt.Sprintf("%s, %.0f%% illuminated", name, phase.Illumination*100)
	switch {
	case phase.Illumination < 0.25:
		desc += ": dark nights push feeding into daylight"
	case phase.Illumination > 0.75:
		desc += ": bright nights favour nocturnal feeding"
	}
	return newFactor(FactorLunar, round1(score), desc)
}

// Pressure trends are scored in discrete bands.
const (
	pressureFalling = 85.0
	pressureSteady  = 65.0
	pressureRising  = 45.0
	pressureLow     = 75.0
	pressureHigh    = 55.0
)

func pressureFactor(w *Weather) Factor {
	switch {
	case w == nil:
		return newFactor(FactorPressure, pressureSteady, "No pressure reading; assuming steady conditions")
	case w.PressureChangeHpa != nil && *w.PressureChangeHpa <= -1:
		return newFactor(FactorPressure, pressureFalling, fmt.Sprintf("Falling pressure (%.1f hPa/3h) triggers feeding ahead of the front", *w.PressureChangeHpa))
	case w.PressureChangeHpa != nil && *w.PressureChangeHpa >= 1:
		return newFactor(FactorPressure, pressureRising, fmt.Sprintf("Rising pressure (+%.1f hPa/3h) usually slows movement", *w.PressureChangeHpa))
	case w.PressureChangeHpa != nil:
		return newFactor(FactorPressure, pressureSteady, "Steady pressure")
	case w.PressureHpa <= 0:
		return newFactor(FactorPressure, pressureSteady, "No pressure reading; assuming steady conditions")
	case w.PressureHpa < 1009:
		return newFactor(FactorPressure, pressureLow, fmt.Sprintf("Low pressure (%.0f hPa), unsettled weather moving in", w.PressureHpa))
	case w.PressureHpa > 1022:
		return newFactor(FactorPressure, pressureHigh, fmt.Sprintf("High pressure (%.0f hPa), settled conditions", w.PressureHpa))
	default:
		return newFactor(FactorPressure, pressureSteady, fmt.Sprintf("Normal pressure (%.0f hPa)", w.PressureHpa))
	}
}

// RecentActivityWindow is how far back sightings count toward the prediction.
const RecentActivityWindow = 7 * 24 * time.Hour

func (p *Predictor) recentActivityFactor(sightings *int) Factor {
	if sightings == nil {
		return newFactor(FactorRecentActivity, p.cfg.PlaceholderRecentScore, "No observation history available; neutral placeholder")
	}
	n := *sightings
	if n <= 0 {
		return newFactor(FactorRecentActivity, 40, "No sightings reported nearby in the last 7 days")
	}
	return newFactor(FactorRecentActivity, math.Min(90, 50+8*float64(n)), fmt.Sprintf("%d sightings reported nearby in the last 7 days", n))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
