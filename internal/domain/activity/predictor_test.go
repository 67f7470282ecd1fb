package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/huntcast/internal/domain/astro"
	"github.com/yanqian/huntcast/internal/domain/regulation"
	"github.com/yanqian/huntcast/internal/domain/schedule"
	"github.com/yanqian/huntcast/pkg/util"
)

func newTestPredictor() *Predictor {
	planner := schedule.NewPlanner(regulation.NewRules(regulation.DefaultOffsetMinutes), nil)
	return NewPredictor(DefaultConfig(), NewCatalog(DefaultProfiles()), planner)
}

func TestConfigKeepsWeatherConfidenceAboveBaseline(t *testing.T) {
	inverted := Config{ConfidenceWithWeather: 0.5, ConfidenceWithoutWeather: 0.7}.withDefaults()
	require.Equal(t, 0.85, inverted.ConfidenceWithWeather)
	require.Equal(t, 0.60, inverted.ConfidenceWithoutWeather)

	tied := Config{ConfidenceWithWeather: 0.6, ConfidenceWithoutWeather: 0.6}.withDefaults()
	require.Greater(t, tied.ConfidenceWithWeather, tied.ConfidenceWithoutWeather)

	custom := Config{ConfidenceWithWeather: 0.9, ConfidenceWithoutWeather: 0.4}.withDefaults()
	require.Equal(t, 0.9, custom.ConfidenceWithWeather)
	require.Equal(t, 0.4, custom.ConfidenceWithoutWeather)
}

func TestWeatherFactorNearIdealDeer(t *testing.T) {
	p := newTestPredictor()
	pred := p.Predict(Input{
		Species:  "deer",
		Date:     util.NewDate(2026, time.November, 10),
		Location: astro.DefaultLocation(),
		Weather:  &Weather{TemperatureC: 5, WindSpeedKmh: 5, PrecipitationMm: 0},
	})

	f, ok := pred.Factor(FactorWeather)
	require.True(t, ok)
	require.GreaterOrEqual(t, f.Score, 80.0)
	require.Equal(t, ImpactVeryPositive, f.Impact)
	require.Len(t, pred.Factors, 5)
}

func TestWeatherFactorPenalties(t *testing.T) {
	deer, _ := NewCatalog(DefaultProfiles()).Lookup("deer")

	hot := weatherFactor(deer, Weather{TemperatureC: 25, WindSpeedKmh: 5})
	require.Equal(t, 60.0, hot.Score)

	windy := weatherFactor(deer, Weather{TemperatureC: 0, WindSpeedKmh: 35})
	require.Equal(t, 68.0, windy.Score)

	storm := weatherFactor(deer, Weather{TemperatureC: 40, WindSpeedKmh: 120, PrecipitationMm: 30})
	require.Equal(t, 10.0, storm.Score)
	require.Equal(t, ImpactVeryNegative, storm.Impact)

	require.Greater(t,
		weatherFactor(deer, Weather{TemperatureC: 0, PrecipitationMm: 1}).Score,
		weatherFactor(deer, Weather{TemperatureC: 0, PrecipitationMm: 10}).Score)
}

func TestWeatherOmittedDropsFactorAndLowersConfidence(t *testing.T) {
	p := newTestPredictor()
	in := Input{Species: "deer", Date: util.NewDate(2026, time.October, 18), Location: astro.DefaultLocation()}

	without := p.Predict(in)
	_, ok := without.Factor(FactorWeather)
	require.False(t, ok)
	require.Len(t, without.Factors, 4)
	require.False(t, without.WeatherUsed)
	require.Equal(t, 0.60, without.Confidence)

	in.Weather = &Weather{TemperatureC: 3, WindSpeedKmh: 10}
	with := p.Predict(in)
	require.True(t, with.WeatherUsed)
	require.Equal(t, 0.85, with.Confidence)
	require.Greater(t, with.Confidence, without.Confidence)
}

func TestSuccessProbabilityIsMeanOfFactors(t *testing.T) {
	p := newTestPredictor()
	pred := p.Predict(Input{
		Species:  "moose",
		Date:     util.NewDate(2026, time.September, 28),
		Location: astro.DefaultLocation(),
		Weather:  &Weather{TemperatureC: 2, WindSpeedKmh: 12, PressureHpa: 1005},
	})

	var sum float64
	for _, f := range pred.Factors {
		require.GreaterOrEqual(t, f.Score, 0.0)
		require.LessOrEqual(t, f.Score, 100.0)
		sum += f.Score
	}
	require.InDelta(t, sum/float64(len(pred.Factors)), pred.SuccessProbability, 0.05)
	require.Equal(t, recommendationFor(pred.SuccessProbability), pred.Recommendation)
}

func TestOptimalTimesAreAlwaysLegal(t *testing.T) {
	p := newTestPredictor()
	locations := []astro.Location{
		astro.DefaultLocation(),
		{Latitude: -33.87, Longitude: 151.21, UTCOffsetMinutes: 600},
		{Latitude: 64.14, Longitude: -21.94},
		{Latitude: 78.22, Longitude: 15.65, UTCOffsetMinutes: 60},
	}
	start := util.NewDate(2026, time.January, 1)
	for _, loc := range locations {
		for i := 0; i < 365; i += 11 {
			for _, species := range []string{"deer", "turkey", "duck", "unicorn"} {
				pred := p.Predict(Input{Species: species, Date: start.AddDays(i), Location: loc})
				require.LessOrEqual(t, len(pred.OptimalTimes), 3)
				for _, slot := range pred.OptimalTimes {
					require.True(t, slot.Legal)
					require.True(t, pred.LegalWindow.Contains(slot.Start))
					require.True(t, pred.LegalWindow.Contains(slot.End))
				}
				if pred.LegalWindow.Empty {
					require.Empty(t, pred.OptimalTimes)
				}
			}
		}
	}
}

func TestOptimalTimesRankedByComposite(t *testing.T) {
	p := newTestPredictor()
	pred := p.Predict(Input{Species: "deer", Date: util.NewDate(2026, time.November, 10), Location: astro.DefaultLocation()})

	require.NotEmpty(t, pred.OptimalTimes)
	for i := 1; i < len(pred.OptimalTimes); i++ {
		require.GreaterOrEqual(t, pred.OptimalTimes[i-1].Score, pred.OptimalTimes[i].Score)
	}
	require.Contains(t, []schedule.Period{schedule.PeriodDawn, schedule.PeriodDusk}, pred.OptimalTimes[0].Period)
}

func TestUnknownSpeciesFallsBack(t *testing.T) {
	pred := newTestPredictor().Predict(Input{Species: "Unicorn", Date: util.NewDate(2026, time.October, 18), Location: astro.DefaultLocation()})
	require.True(t, pred.ProfileFallback)
	require.Equal(t, DefaultSpecies, pred.Species)
}

func TestSeasonFactorShiftsInSouthernHemisphere(t *testing.T) {
	p := newTestPredictor()
	deer, _ := NewCatalog(DefaultProfiles()).Lookup("deer")
	may := util.NewDate(2026, time.May, 15)

	north := p.seasonFactor(deer, may, astro.DefaultLocation())
	south := p.seasonFactor(deer, may, astro.Location{Latitude: -41.3, Longitude: 174.8})
	require.Equal(t, 50.0, north.Score)
	require.Equal(t, 100.0, south.Score)
}

func TestLunarFactorFavoursNewMoon(t *testing.T) {
	p := newTestPredictor()
	newMoon := p.lunarFactor(astro.LunarPhase{Name: astro.NewMoon, Illumination: 0})
	full := p.lunarFactor(astro.LunarPhase{Name: astro.FullMoon, Illumination: 1})
	half := p.lunarFactor(astro.LunarPhase{Name: astro.FirstQuarter, Illumination: 0.5})

	require.Equal(t, 80.0, newMoon.Score)
	require.Equal(t, 40.0, full.Score)
	require.Equal(t, 60.0, half.Score)
}

func TestPressureFactorBands(t *testing.T) {
	change := func(v float64) *float64 { return &v }

	require.Equal(t, 85.0, pressureFactor(&Weather{PressureChangeHpa: change(-2.5)}).Score)
	require.Equal(t, 65.0, pressureFactor(&Weather{PressureChangeHpa: change(0.3)}).Score)
	require.Equal(t, 45.0, pressureFactor(&Weather{PressureChangeHpa: change(1.8)}).Score)
	require.Equal(t, 75.0, pressureFactor(&Weather{PressureHpa: 1002}).Score)
	require.Equal(t, 55.0, pressureFactor(&Weather{PressureHpa: 1030}).Score)
	require.Equal(t, 65.0, pressureFactor(nil).Score)
}

func TestRecentActivityFactor(t *testing.T) {
	p := newTestPredictor()
	n := func(v int) *int { return &v }

	require.Equal(t, 50.0, p.recentActivityFactor(nil).Score)
	require.Contains(t, p.recentActivityFactor(nil).Description, "placeholder")
	require.Equal(t, 40.0, p.recentActivityFactor(n(0)).Score)
	require.Equal(t, 66.0, p.recentActivityFactor(n(2)).Score)
	require.Equal(t, 90.0, p.recentActivityFactor(n(30)).Score)
}

func TestCatalogOverridesDefault(t *testing.T) {
	catalog := NewCatalog([]Profile{{Species: " Default ", DisplayName: "Local game"}, {Species: "Elk", DisplayName: "Elk"}})

	p, ok := catalog.Lookup("elk")
	require.True(t, ok)
	require.Equal(t, "Elk", p.DisplayName)

	p, ok = catalog.Lookup("deer")
	require.False(t, ok)
	require.Equal(t, "Local game", p.DisplayName)
	require.Equal(t, []string{"elk"}, catalog.Species())
}

func TestHourRangeWrapsMidnight(t *testing.T) {
	roost := HourRange{Start: 19, End: 5}
	require.True(t, roost.Contains(22))
	require.True(t, roost.Contains(2))
	require.False(t, roost.Contains(5))
	require.False(t, roost.Contains(12))
}
