package astro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/huntcast/pkg/util"
)

func TestMoonKnownPhases(t *testing.T) {
	newMoon := Moon(util.NewDate(2024, time.January, 11))
	require.Equal(t, NewMoon, newMoon.Name)
	require.Less(t, newMoon.Illumination, 0.05)

	full := Moon(util.NewDate(2024, time.January, 25))
	require.Equal(t, FullMoon, full.Name)
	require.Greater(t, full.Illumination, 0.95)

	firstQuarter := Moon(util.NewDate(2024, time.January, 18))
	require.Equal(t, FirstQuarter, firstQuarter.Name)
	require.InDelta(t, 0.5, firstQuarter.Illumination, 0.15)
}

func TestMoonIlluminationBounded(t *testing.T) {
	start := util.NewDate(1950, time.January, 1)
	for i := 0; i < 365*100; i += 7 {
		phase := Moon(start.AddDays(i))
		require.GreaterOrEqual(t, phase.Illumination, 0.0)
		require.LessOrEqual(t, phase.Illumination, 1.0)
		require.GreaterOrEqual(t, phase.AgeDays, 0.0)
		require.Less(t, phase.AgeDays, SynodicMonth+0.01)
	}
}

func TestMoonRepeatsEverySynodicMonth(t *testing.T) {
	base := time.Date(2031, time.May, 3, 6, 0, 0, 0, time.UTC)
	later := base.Add(time.Duration(SynodicMonth * 24 * float64(time.Hour)))

	a, b := moonAt(base), moonAt(later)
	require.Equal(t, a.Name, b.Name)
	require.InDelta(t, a.Illumination, b.Illumination, 1e-6)

	// Two lunations are within a tenth of a day of 59 calendar days.
	d := util.NewDate(2026, time.March, 10)
	require.InDelta(t, Moon(d).Illumination, Moon(d.AddDays(59)).Illumination, 0.02)
}

func TestMoonBeforeReferenceEpoch(t *testing.T) {
	phase := Moon(util.NewDate(1969, time.July, 20))
	require.GreaterOrEqual(t, phase.AgeDays, 0.0)
	require.Contains(t, phaseNames, phase.Name)
}
