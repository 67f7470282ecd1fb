package astro

import (
	"math"
	"time"

	"github.com/yanqian/huntcast/pkg/util"
)

// SynodicMonth is the mean length of a lunation in days.
const SynodicMonth = 29.530588853

// referenceNewMoon is the new moon of 2000-01-06.
var referenceNewMoon = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

// PhaseName labels one eighth of the lunation.
type PhaseName string

const (
	NewMoon        PhaseName = "new_moon"
	WaxingCrescent PhaseName = "waxing_crescent"
	FirstQuarter   PhaseName = "first_quarter"
	WaxingGibbous  PhaseName = "waxing_gibbous"
	FullMoon       PhaseName = "full_moon"
	WaningGibbous  PhaseName = "waning_gibbous"
	LastQuarter    PhaseName = "last_quarter"
	WaningCrescent PhaseName = "waning_crescent"
)

var phaseNames = [8]PhaseName{
	NewMoon, WaxingCrescent, FirstQuarter, WaxingGibbous,
	FullMoon, WaningGibbous, LastQuarter, WaningCrescent,
}

// LunarPhase describes the moon on a date.
type LunarPhase struct {
	Date         util.Date `json:"date"`
	Name         PhaseName `json:"name"`
	AgeDays      float64   `json:"ageDays"`
	Illumination float64   `json:"illumination"`
}

// Moon returns the lunar phase at 12:00 UTC on date.
func Moon(date util.Date) LunarPhase {
	phase := moonAt(date.Time().Add(12 * time.Hour))
	phase.Date = date
	return phase
}

func moonAt(t time.Time) LunarPhase {
	days := t.Sub(referenceNewMoon).Hours() / 24
	age := math.Mod(days, SynodicMonth)
	if age < 0 {
		age += SynodicMonth
	}
	arc := SynodicMonth / 8
	// Each arc is centred on its principal phase.
	idx := int(math.Floor((age+arc/2)/arc)) % len(phaseNames)
	illum := (1 - math.Cos(2*math.Pi*age/SynodicMonth)) / 2
	return LunarPhase{
		Name:         phaseNames[idx],
		AgeDays:      math.Round(age*100) / 100,
		Illumination: math.Max(0, math.Min(1, illum)),
	}
}
