// Package regulation derives the legal activity window from the sun's times.
package regulation

import (
	"fmt"
	"time"

	"github.com/yanqian/huntcast/internal/domain/astro"
	"github.com/yanqian/huntcast/pkg/util"
)

// DefaultOffsetMinutes is the regulatory margin before sunrise and after sunset.
const DefaultOffsetMinutes = 30

// Rules carries the one offset shared by window derivation and the point check.
type Rules struct {
	OffsetMinutes int
}

// NewRules builds Rules, falling back to the regulatory default for negative offsets.
func NewRules(offsetMinutes int) Rules {
	if offsetMinutes < 0 {
		offsetMinutes = DefaultOffsetMinutes
	}
	return Rules{OffsetMinutes: offsetMinutes}
}

// Window is the permitted interval on one local date. It never spans midnight.
type Window struct {
	Date            util.Date      `json:"date"`
	Location        astro.Location `json:"location"`
	Start           util.Clock     `json:"start"`
	End             util.Clock     `json:"end"`
	DurationMinutes int            `json:"durationMinutes"`
	Sun             astro.SunTimes `json:"sunTimes"`
	// Clamped is set when the window was cut at a day boundary.
	Clamped bool `json:"clamped,omitempty"`
	// Empty is set during polar night; no minute of the day is legal.
	Empty bool `json:"empty,omitempty"`
}

// Derive applies the offset to sun.
func (r Rules) Derive(sun astro.SunTimes, loc astro.Location) Window {
	w := Window{Date: sun.Date, Location: loc, Sun: sun}
	switch sun.Polar {
	case astro.PolarNight:
		w.Start, w.End = sun.Sunrise, sun.Sunset
		w.Empty = true
		return w
	case astro.PolarDay:
		w.Start, w.End = 0, util.MinutesPerDay-1
		w.Clamped = true
	default:
		start := sun.Sunrise.Add(-r.OffsetMinutes)
		end := sun.Sunset.Add(r.OffsetMinutes)
		w.Start, w.End = start.Clamp(), end.Clamp()
		w.Clamped = w.Start != start || w.End != end
	}
	w.DurationMinutes = int(w.End - w.Start)
	return w
}

// For computes the sun times and the window for date at loc.
func (r Rules) For(date util.Date, loc astro.Location) Window {
	return r.Derive(astro.Sun(date, loc), loc)
}

// Contains reports whether c lies in [Start, End].
func (w Window) Contains(c util.Clock) bool {
	if w.Empty {
		return false
	}
	return w.Start <= c && c <= w.End
}

// Clip intersects [start, end] with the window.
func (w Window) Clip(start, end util.Clock) (util.Clock, util.Clock, bool) {
	if w.Empty {
		return 0, 0, false
	}
	if start < w.Start {
		start = w.Start
	}
	if end > w.End {
		end = w.End
	}
	if end <= start {
		return 0, 0, false
	}
	return start, end, true
}

// Check reports whether ts is inside the legal window of the local date it
// falls on at loc, with a human readable explanation.
func (r Rules) Check(ts time.Time, loc astro.Location) (bool, string, Window) {
	date, clock := loc.LocalDate(ts)
	w := r.For(date, loc)
	switch {
	case w.Empty:
		return false, fmt.Sprintf("No legal hours on %s: the sun does not rise", date), w
	case clock < w.Start:
		return false, fmt.Sprintf("Too early: legal hours start at %s (%d min from now)", w.Start, int(w.Start-clock)), w
	case clock > w.End:
		return false, fmt.Sprintf("Too late: legal hours ended at %s", w.End), w
	default:
		return true, fmt.Sprintf("Within legal hours (%s - %s), %d min remaining", w.Start, w.End, int(w.End-clock)), w
	}
}
