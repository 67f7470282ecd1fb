package astro

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/huntcast/pkg/util"
)

func TestSunQuebecSummerSolstice(t *testing.T) {
	sun := Sun(util.NewDate(2026, time.June, 21), DefaultLocation())

	require.False(t, sun.Degenerate())
	require.Equal(t, -240, sun.UTCOffsetMinutes)
	require.Greater(t, sun.DayLengthMinutes, 15*60)
	require.Less(t, sun.Sunrise, util.Clock(5*60))
	require.Greater(t, sun.Sunset, util.Clock(20*60+30))
	require.Less(t, sun.CivilDawn, sun.Sunrise)
	require.Greater(t, sun.CivilDusk, sun.Sunset)
	require.Equal(t, int(sun.Sunset-sun.Sunrise), sun.DayLengthMinutes)
}

func TestSunQuebecWinterSolstice(t *testing.T) {
	loc := DefaultLocation()
	winter := Sun(util.NewDate(2026, time.December, 21), loc)
	summer := Sun(util.NewDate(2026, time.June, 21), loc)

	require.False(t, winter.Degenerate())
	require.Equal(t, -300, winter.UTCOffsetMinutes)
	require.Less(t, winter.DayLengthMinutes, 9*60)
	require.Less(t, winter.DayLengthMinutes, summer.DayLengthMinutes-6*60)
}

func TestSunMatchesClosedFormEphemeris(t *testing.T) {
	cases := []struct {
		name string
		loc  Location
		date util.Date
	}{
		{"london solstice", Location{Latitude: 51.5074, Longitude: -0.1278}, util.NewDate(2026, time.June, 21)},
		{"quebec equinox", Location{Latitude: 46.8139, Longitude: -71.2080, UTCOffsetMinutes: -240}, util.NewDate(2026, time.September, 22)},
		{"quebec winter", Location{Latitude: 46.8139, Longitude: -71.2080, UTCOffsetMinutes: -300}, util.NewDate(2026, time.January, 15)},
		{"nairobi", Location{Latitude: -1.2921, Longitude: 36.8219, UTCOffsetMinutes: 180}, util.NewDate(2026, time.March, 3)},
		{"sydney summer", Location{Latitude: -33.8688, Longitude: 151.2093, UTCOffsetMinutes: 660}, util.NewDate(2026, time.December, 21)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Sun(tc.date, tc.loc)
			rise, set, noon := closedFormSun(tc.date, tc.loc.Latitude, tc.loc.Longitude, tc.loc.UTCOffsetMinutes)

			require.False(t, got.Degenerate())
			require.InDelta(t, rise, float64(got.Sunrise), 5)
			require.InDelta(t, set, float64(got.Sunset), 5)
			require.InDelta(t, noon, float64(got.SolarNoon), 3)
		})
	}
}

func TestSunZonesFarFromTheirMeridian(t *testing.T) {
	cases := []struct {
		name string
		loc  Location
	}{
		{"apia", Location{Latitude: -13.8333, Longitude: -171.7667, TimeZone: "Pacific/Apia"}},
		{"kiritimati", Location{Latitude: 1.8721, Longitude: -157.4278, TimeZone: "Pacific/Kiritimati"}},
		{"tongatapu", Location{Latitude: -21.1394, Longitude: -175.2049, TimeZone: "Pacific/Tongatapu"}},
		{"chatham", Location{Latitude: -43.9535, Longitude: -176.5597, TimeZone: "Pacific/Chatham"}},
	}
	date := util.NewDate(2026, time.June, 21)

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Sun(date, tc.loc)
			rise, set, noon := closedFormSun(date, tc.loc.Latitude, tc.loc.Longitude, got.UTCOffsetMinutes)

			require.False(t, got.Degenerate())
			require.Greater(t, got.DayLengthMinutes, 8*60)
			require.Less(t, got.DayLengthMinutes, 13*60)
			require.InDelta(t, rise, float64(got.Sunrise), 5)
			require.InDelta(t, set, float64(got.Sunset), 5)
			require.InDelta(t, noon, float64(got.SolarNoon), 3)
			require.Less(t, got.CivilDawn, got.Sunrise)
			require.Greater(t, got.CivilDusk, got.Sunset)
		})
	}
}

func TestSunPolarDay(t *testing.T) {
	tromso := Location{Latitude: 69.6492, Longitude: 18.9553, UTCOffsetMinutes: 120}
	sun := Sun(util.NewDate(2026, time.June, 21), tromso)

	require.Equal(t, PolarDay, sun.Polar)
	require.True(t, sun.Degenerate())
	require.Equal(t, util.Clock(0), sun.Sunrise)
	require.Equal(t, util.Clock(23*60+59), sun.Sunset)
	require.Equal(t, 1439, sun.DayLengthMinutes)
	require.True(t, sun.CivilTwilightAllNight)
}

func TestSunPolarNight(t *testing.T) {
	tromso := Location{Latitude: 69.6492, Longitude: 18.9553, UTCOffsetMinutes: 60}
	sun := Sun(util.NewDate(2026, time.December, 21), tromso)

	require.Equal(t, PolarNight, sun.Polar)
	require.Equal(t, util.Clock(12*60), sun.Sunrise)
	require.Equal(t, util.Clock(12*60), sun.Sunset)
	require.Zero(t, sun.DayLengthMinutes)
	// The sun stays within 6° of the horizon around noon, so civil light exists.
	require.Less(t, sun.CivilDawn, sun.SolarNoon)
	require.Greater(t, sun.CivilDusk, sun.SolarNoon)
}

func TestSunDeepPolarNightHasNoTwilight(t *testing.T) {
	pole := Location{Latitude: 89.5, Longitude: 0}
	sun := Sun(util.NewDate(2026, time.December, 21), pole)

	require.Equal(t, PolarNight, sun.Polar)
	require.Equal(t, sun.CivilDawn, sun.CivilDusk)
}

func TestSunriseNeverAfterSunset(t *testing.T) {
	start := util.NewDate(2026, time.January, 1)
	for _, lat := range []float64{-89.9, -66, -45, 0, 30, 46.8, 60, 66.5, 72, 90} {
		loc := Location{Latitude: lat, Longitude: 10, UTCOffsetMinutes: 60}
		for i := 0; i < 366; i += 5 {
			sun := Sun(start.AddDays(i), loc)
			require.LessOrEqual(t, sun.Sunrise, sun.Sunset, "lat %v day %d", lat, i)
			if sun.Degenerate() {
				continue
			}
			require.LessOrEqual(t, sun.CivilDawn, sun.Sunrise, "lat %v day %d", lat, i)
			require.GreaterOrEqual(t, sun.CivilDusk, sun.Sunset, "lat %v day %d", lat, i)
		}
	}
}

func TestLocationValidate(t *testing.T) {
	require.NoError(t, DefaultLocation().Validate())
	require.Error(t, Location{Latitude: 91}.Validate())
	require.Error(t, Location{Longitude: -180.5}.Validate())
	require.Error(t, Location{UTCOffsetMinutes: 15 * 60}.Validate())
	require.Error(t, Location{TimeZone: "Mars/Olympus"}.Validate())
}

func TestLocalDateUsesLocationOffset(t *testing.T) {
	loc := DefaultLocation()
	ts := time.Date(2026, time.June, 22, 2, 30, 0, 0, time.UTC)
	date, clock := loc.LocalDate(ts)

	require.Equal(t, "2026-06-21", date.String())
	require.Equal(t, util.Clock(22*60+30), clock)
}

// closedFormSun evaluates the NOAA Fourier-series approximation for the
// local sunrise, sunset and solar noon in minutes after local midnight.
func closedFormSun(date util.Date, lat, lon float64, offset int) (rise, set, noon float64) {
	gamma := 2 * math.Pi / float64(date.DaysInYear()) * float64(date.YearDay()-1)
	decl := 0.006918 -
		0.399912*math.Cos(gamma) + 0.070257*math.Sin(gamma) -
		0.006758*math.Cos(2*gamma) + 0.000907*math.Sin(2*gamma) -
		0.002697*math.Cos(3*gamma) + 0.00148*math.Sin(3*gamma)
	eqTime := 229.18 * (0.000075 +
		0.001868*math.Cos(gamma) - 0.032077*math.Sin(gamma) -
		0.014615*math.Cos(2*gamma) - 0.040849*math.Sin(2*gamma))

	noon = math.Mod(720-4*lon-eqTime+float64(offset)+2*util.MinutesPerDay, util.MinutesPerDay)
	phi := lat * math.Pi / 180
	cosH := (math.Sin(HorizonAltitude*math.Pi/180) - math.Sin(phi)*math.Sin(decl)) / (math.Cos(phi) * math.Cos(decl))
	half := 4 * math.Acos(cosH) * 180 / math.Pi
	return noon - half, noon + half, noon
}
