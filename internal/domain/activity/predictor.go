package activity

import (
	"github.com/yanqian/huntcast/internal/domain/astro"
	"github.com/yanqian/huntcast/internal/domain/regulation"
	"github.com/yanqian/huntcast/internal/domain/schedule"
	"github.com/yanqian/huntcast/pkg/util"
)

// Predictor blends season, weather, moon, pressure and recent sightings into
// a success probability. It only reads its reference data.
type Predictor struct {
	cfg      Config
	profiles ProfileLookup
	planner  *schedule.Planner
}

// NewPredictor wires the scoring model.
func NewPredictor(cfg Config, profiles ProfileLookup, planner *schedule.Planner) *Predictor {
	return &Predictor{cfg: cfg.withDefaults(), profiles: profiles, planner: planner}
}

// Predict scores in. Optimal times are always inside the legal window.
func (p *Predictor) Predict(in Input) Prediction {
	profile, known := p.profiles.Lookup(in.Species)
	window := p.planner.Rules().For(in.Date, in.Location)
	phase := astro.Moon(in.Date)

	factors := make([]Factor, 0, 5)
	factors = append(factors, p.seasonFactor(profile, in.Date, in.Location))
	if in.Weather != nil {
		factors = append(factors, weatherFactor(profile, *in.Weather))
	}
	factors = append(factors,
		p.lunarFactor(phase),
		pressureFactor(in.Weather),
		p.recentActivityFactor(in.RecentSightings),
	)

	var total float64
	for _, f := range factors {
		total += f.Score
	}
	success := round1(clampScore(total / float64(len(factors))))

	confidence := p.cfg.ConfidenceWithoutWeather
	if in.Weather != nil {
		confidence = p.cfg.ConfidenceWithWeather
	}

	return Prediction{
		Species:            profile.Species,
		DisplayName:        profile.DisplayName,
		Date:               in.Date,
		Location:           in.Location,
		Factors:            factors,
		SuccessProbability: success,
		Confidence:         confidence,
		Recommendation:     recommendationFor(success),
		OptimalTimes:       p.optimalTimes(profile, window, success),
		LegalWindow:        window,
		Lunar:              phase,
		WeatherUsed:        in.Weather != nil,
		ProfileFallback:    !known,
	}
}

// optimalTimes re-scores the legal slots with the species' hourly activity and
// the composite probability.
func (p *Predictor) optimalTimes(profile Profile, window regulation.Window, success float64) []schedule.Slot {
	ranked := p.planner.Rank(window)
	out := make([]schedule.Slot, 0, len(ranked))
	for _, slot := range ranked {
		if !slot.Legal || !window.Contains(slot.Start) || !window.Contains(slot.End) {
			continue
		}
		slot.Score = round1(0.5*slotActivity(profile, window.Sun, slot) + 0.5*success)
		out = append(out, slot)
	}
	schedule.SortByScore(out)
	if len(out) > p.cfg.MaxOptimalTimes {
		out = out[:p.cfg.MaxOptimalTimes]
	}
	return out
}

// slotActivity averages the hourly activity ordinal over the hours a slot
// touches, scaled to 0-100.
func slotActivity(profile Profile, sun astro.SunTimes, slot schedule.Slot) float64 {
	first, last := slot.Start.Hour(), slot.End.Hour()
	if slot.End.Minute() == 0 && last > first {
		last--
	}
	var sum float64
	for h := first; h <= last; h++ {
		sum += float64(hourlyOrdinal(profile, h, classifyLight(sun, h)))
	}
	return sum / float64(last-first+1) * 25
}

func recommendationFor(success float64) string {
	switch {
	case success >= 80:
		return "Excellent conditions: plan a full outing and be in position for the best slot."
	case success >= 60:
		return "Good conditions: concentrate on the dawn and dusk slots."
	case success >= 40:
		return "Fair conditions: hunt the prime slots only and keep outings short."
	default:
		return "Poor conditions: consider scouting or waiting for a better day."
	}
}

// Timeline returns 24 hourly entries for species on date at loc, along with
// the profile used and whether it was the generic fallback.
func (p *Predictor) Timeline(species string, date util.Date, loc astro.Location) ([]TimelineEntry, Profile, bool) {
	profile, known := p.profiles.Lookup(species)
	window := p.planner.Rules().For(date, loc)
	return buildTimeline(profile, window), profile, known
}
