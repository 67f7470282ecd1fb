// Package astro computes solar and lunar ephemerides for a date and location.
package astro

import (
	"math"
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/yanqian/huntcast/pkg/util"
)

// Polar flags dates on which the sun never crosses the horizon.
type Polar string

const (
	PolarNone  Polar = ""
	PolarDay   Polar = "polar_day"
	PolarNight Polar = "polar_night"
)

const (
	// HorizonAltitude places the solar centre below the horizon at rise and set,
	// covering refraction plus the solar radius.
	HorizonAltitude = -0.833
	// CivilAltitude bounds civil dawn and dusk.
	CivilAltitude = -6.0

	noon = util.Clock(12 * 60)
)

// SunTimes holds the local clock times of the solar events on one date.
type SunTimes struct {
	Date             util.Date  `json:"date"`
	Sunrise          util.Clock `json:"sunrise"`
	Sunset           util.Clock `json:"sunset"`
	CivilDawn        util.Clock `json:"civilDawn"`
	CivilDusk        util.Clock `json:"civilDusk"`
	SolarNoon        util.Clock `json:"solarNoon"`
	DayLengthMinutes int        `json:"dayLengthMinutes"`
	UTCOffsetMinutes int        `json:"utcOffsetMinutes"`
	Polar            Polar      `json:"polar,omitempty"`
	// CivilTwilightAllNight is set when the sun never sinks 6° below the horizon.
	CivilTwilightAllNight bool `json:"civilTwilightAllNight,omitempty"`
}

// Degenerate reports continuous day or continuous night.
func (s SunTimes) Degenerate() bool {
	return s.Polar != PolarNone
}

// Sun computes SunTimes for date at loc.
//
// Continuous day yields sunrise 00:00, sunset 23:59 and a 1439 minute day.
// Continuous night yields sunrise = sunset = 12:00 and a zero length day.
// Events that fall outside the local day are pinned to its edges.
func Sun(date util.Date, loc Location) SunTimes {
	offset := loc.OffsetMinutesOn(date)
	midnight := util.Clock(0).On(date.Time(), time.FixedZone("", offset*60))
	solar, meanNoon := solarDay(date, loc.Longitude, offset)
	y, m, d := solar.Time().Date()

	out := SunTimes{Date: date, UTCOffsetMinutes: offset}

	rise, set := sunrise.TimeOfElevation(loc.Latitude, loc.Longitude, HorizonAltitude, y, m, d)
	dawn, dusk := sunrise.TimeOfElevation(loc.Latitude, loc.Longitude, CivilAltitude, y, m, d)

	// Transit sits halfway between any pair of symmetric events.
	transit := meanNoon
	switch {
	case !rise.IsZero() && !set.IsZero():
		transit = (minutesSince(midnight, rise) + minutesSince(midnight, set)) / 2
	case !dawn.IsZero() && !dusk.IsZero():
		transit = (minutesSince(midnight, dawn) + minutesSince(midnight, dusk)) / 2
	}
	out.SolarNoon = clampClock(transit)
	noonElevation := sunrise.Elevation(loc.Latitude, loc.Longitude, midnight.Add(minutesDuration(transit)))

	switch {
	case !rise.IsZero() && !set.IsZero():
		out.Sunrise = clampClock(minutesSince(midnight, rise))
		out.Sunset = clampClock(minutesSince(midnight, set))
	case noonElevation > HorizonAltitude:
		out.Polar = PolarDay
		out.Sunrise, out.Sunset = 0, util.MinutesPerDay-1
	default:
		out.Polar = PolarNight
		out.Sunrise, out.Sunset = noon, noon
	}
	out.DayLengthMinutes = int(out.Sunset - out.Sunrise)

	switch {
	case !dawn.IsZero() && !dusk.IsZero():
		out.CivilDawn = clampClock(minutesSince(midnight, dawn))
		out.CivilDusk = clampClock(minutesSince(midnight, dusk))
	case noonElevation < CivilAltitude:
		out.CivilDawn, out.CivilDusk = noon, noon
	default:
		out.CivilTwilightAllNight = true
		out.CivilDawn, out.CivilDusk = 0, util.MinutesPerDay-1
	}
	return out
}

// solarDay picks the calendar date whose solar transit falls on the local
// date. Zones far from their meridian (Pacific/Apia, Pacific/Kiritimati) see
// the transit of the neighbouring UTC date. It also returns the mean local
// noon in minutes after local midnight.
func solarDay(date util.Date, longitude float64, offset int) (util.Date, float64) {
	meanNoon := 720 - 4*longitude + float64(offset)
	shift := int(math.Floor(meanNoon / util.MinutesPerDay))
	return date.AddDays(-shift), meanNoon - float64(shift*util.MinutesPerDay)
}

func minutesSince(midnight, t time.Time) float64 {
	return t.Sub(midnight).Minutes()
}

func minutesDuration(minutes float64) time.Duration {
	return time.Duration(minutes * float64(time.Minute))
}

func clampClock(minutes float64) util.Clock {
	return util.Clock(int(math.Floor(minutes + 0.5))).Clamp()
}
