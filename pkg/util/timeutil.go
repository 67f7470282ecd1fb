package util

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the calendar date format accepted on every boundary.
const DateLayout = "2006-01-02"

// MinutesPerDay bounds a Clock value.
const MinutesPerDay = 24 * 60

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses a YYYY-MM-DD string into midnight UTC of that civil date.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	return time.Parse(DateLayout, trimmed)
}

// CivilDate strips the clock and zone from t, keeping the calendar date it shows.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Clock is a local time of day expressed in minutes after midnight.
type Clock int

// ClockOf rounds a fractional minute count into a Clock inside the day.
func ClockOf(minutes float64) Clock {
	m := int(math.Floor(minutes + 0.5))
	m %= MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return Clock(m)
}

// Clamp pins c into [00:00, 23:59].
func (c Clock) Clamp() Clock {
	switch {
	case c < 0:
		return 0
	case c > MinutesPerDay-1:
		return MinutesPerDay - 1
	default:
		return c
	}
}

// Hour returns the hour component.
func (c Clock) Hour() int { return int(c) / 60 }

// Minute returns the minute component.
func (c Clock) Minute() int { return int(c) % 60 }

// Add shifts the clock without wrapping; callers clamp when needed.
func (c Clock) Add(minutes int) Clock { return c + Clock(minutes) }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// On anchors the clock on a civil date in the given zone.
func (c Clock) On(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), 0, 0, loc)
}

// MarshalText renders the clock as HH:MM.
func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses HH:MM.
func (c *Clock) UnmarshalText(text []byte) error {
	parsed, err := ParseClock(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseClock parses HH:MM into a Clock.
func ParseClock(value string) (Clock, error) {
	ts, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("clock must be formatted as HH:MM: %w", err)
	}
	return Clock(ts.Hour()*60 + ts.Minute()), nil
}

// Date is a civil calendar date with no clock or zone attached.
type Date struct {
	t time.Time
}

// NewDate builds a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf keeps the calendar date that t shows in its own zone.
func DateOf(t time.Time) Date {
	return Date{t: CivilDate(t)}
}

// ParseDateValue parses YYYY-MM-DD into a Date.
func ParseDateValue(value string) (Date, error) {
	t, err := ParseDate(value)
	if err != nil {
		return Date{}, err
	}
	return Date{t: t}, nil
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time { return d.t }

// IsZero reports whether the date was never set.
func (d Date) IsZero() bool { return d.t.IsZero() }

// AddDays steps the calendar, never skipping or repeating a date.
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Month returns the calendar month.
func (d Date) Month() time.Month { return d.t.Month() }

// YearDay returns the ordinal day in the year, 1..366.
func (d Date) YearDay() int { return d.t.YearDay() }

// DaysInYear returns 365 or 366.
func (d Date) DaysInYear() int {
	return time.Date(d.t.Year(), time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}

// Equal compares two dates.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

func (d Date) String() string { return d.t.Format(DateLayout) }

// MarshalText renders YYYY-MM-DD.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses YYYY-MM-DD.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDateValue(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
