package astro

import (
	"fmt"
	"math"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/yanqian/huntcast/pkg/util"
)

// Location is a point on the globe plus the clock its residents use.
type Location struct {
	Latitude         float64 `json:"latitude" yaml:"latitude"`
	Longitude        float64 `json:"longitude" yaml:"longitude"`
	UTCOffsetMinutes int     `json:"utcOffsetMinutes" yaml:"utcOffsetMinutes"`
	// TimeZone is an optional IANA name. When set, the offset in effect at local
	// noon of the requested date replaces UTCOffsetMinutes for that whole day.
	TimeZone string `json:"timeZone,omitempty" yaml:"timeZone"`
}

// DefaultLocation is Québec City, used when a caller omits coordinates.
func DefaultLocation() Location {
	return Location{
		Latitude:         46.8139,
		Longitude:        -71.2080,
		UTCOffsetMinutes: -300,
		TimeZone:         "America/Toronto",
	}
}

// Validate rejects coordinates and zones the calculators cannot use.
func (l Location) Validate() error {
	if math.IsNaN(l.Latitude) || math.IsNaN(l.Longitude) {
		return fmt.Errorf("coordinates cannot be NaN")
	}
	if math.IsInf(l.Latitude, 0) || math.IsInf(l.Longitude, 0) {
		return fmt.Errorf("coordinates cannot be infinite")
	}
	if l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	if l.UTCOffsetMinutes < -14*60 || l.UTCOffsetMinutes > 14*60 {
		return fmt.Errorf("utc offset must be between -840 and 840 minutes")
	}
	if tz := strings.TrimSpace(l.TimeZone); tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return fmt.Errorf("unknown time zone %q", tz)
		}
	}
	return nil
}

// OffsetMinutesOn returns the single UTC offset applied to every event on date.
func (l Location) OffsetMinutesOn(date util.Date) int {
	tz := strings.TrimSpace(l.TimeZone)
	if tz == "" {
		return l.UTCOffsetMinutes
	}
	zone, err := time.LoadLocation(tz)
	if err != nil {
		return l.UTCOffsetMinutes
	}
	t := date.Time()
	_, seconds := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, zone).Zone()
	return seconds / 60
}

// ZoneOn returns a fixed zone carrying the offset used on date.
func (l Location) ZoneOn(date util.Date) *time.Location {
	return time.FixedZone("", l.OffsetMinutesOn(date)*60)
}

// LocalDate returns the civil date ts falls on at this location.
func (l Location) LocalDate(ts time.Time) (util.Date, util.Clock) {
	// The offset depends on the date, so resolve against the UTC date first and
	// settle on the date the shifted instant actually shows.
	guess := util.DateOf(ts.UTC())
	local := ts.In(l.ZoneOn(guess))
	date := util.DateOf(local)
	if !date.Equal(guess) {
		local = ts.In(l.ZoneOn(date))
		date = util.DateOf(local)
	}
	return date, util.Clock(local.Hour()*60 + local.Minute())
}

// SouthernHemisphere reports whether seasons run opposite to the calendar.
func (l Location) SouthernHemisphere() bool {
	return l.Latitude < 0
}
