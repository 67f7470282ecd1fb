package activity

import (
	"github.com/yanqian/huntcast/internal/domain/astro"
	"github.com/yanqian/huntcast/internal/domain/regulation"
	"github.com/yanqian/huntcast/pkg/util"
)

func buildTimeline(profile Profile, window regulation.Window) []TimelineEntry {
	entries := make([]TimelineEntry, 24)
	for h := 0; h < 24; h++ {
		light := classifyLight(window.Sun, h)
		entries[h] = TimelineEntry{
			Hour:     h,
			Activity: levels[hourlyOrdinal(profile, h, light)],
			Legal:    window.Contains(util.Clock(h * 60)),
			Light:    light,
		}
	}
	return entries
}

// hourlyOrdinal maps the profile buckets to 0 (very low) .. 4 (very high).
func hourlyOrdinal(profile Profile, hour int, light Light) int {
	level := 1
	if anyContains(profile.ActiveHours, hour) {
		level += 2
	}
	if anyContains(profile.FeedingHours, hour) {
		level += 2
	}
	if anyContains(profile.BeddingHours, hour) {
		level--
	}
	if light == LightDawn || light == LightDusk {
		level++
	}
	switch {
	case level < 0:
		return 0
	case level > len(levels)-1:
		return len(levels) - 1
	default:
		return level
	}
}

// classifyLight looks at the middle of the hour.
func classifyLight(sun astro.SunTimes, hour int) Light {
	m := util.Clock(hour*60 + 30)
	switch sun.Polar {
	case astro.PolarDay:
		return LightDaylight
	case astro.PolarNight:
		if sun.CivilDawn < sun.CivilDusk && m >= sun.CivilDawn && m <= sun.CivilDusk {
			return LightTwilight
		}
		return LightDark
	}

	switch {
	case m >= sun.Sunrise && m <= sun.Sunset:
		return LightDaylight
	case sun.CivilTwilightAllNight:
		return LightTwilight
	case m < sun.Sunrise && m >= sun.CivilDawn:
		return LightDawn
	case m > sun.Sunset && m <= sun.CivilDusk:
		return LightDusk
	default:
		return LightDark
	}
}
