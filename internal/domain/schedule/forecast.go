package schedule

import (
	"golang.org/x/sync/errgroup"

	"github.com/yanqian/huntcast/internal/domain/astro"
	"github.com/yanqian/huntcast/internal/domain/regulation"
	apperrors "github.com/yanqian/huntcast/pkg/errors"
	"github.com/yanqian/huntcast/pkg/util"
)

const (
	MinForecastDays = 1
	MaxForecastDays = 14
)

// DailySchedule bundles everything planned for one date.
type DailySchedule struct {
	Date        util.Date         `json:"date"`
	LegalWindow regulation.Window `json:"legalWindow"`
	Lunar       astro.LunarPhase  `json:"lunarPhase"`
	Slots       []Slot            `json:"recommendedSlots"`
	BestSlot    *Slot             `json:"bestSlot,omitempty"`
}

// Sun returns the sun times the schedule was derived from.
func (d DailySchedule) Sun() astro.SunTimes { return d.LegalWindow.Sun }

// MultiDayForecast is a run of consecutive daily schedules.
type MultiDayForecast struct {
	Location  astro.Location  `json:"location"`
	StartDate util.Date       `json:"startDate"`
	Days      int             `json:"days"`
	Schedules []DailySchedule `json:"schedules"`
}

// Daily plans a single date.
func (p *Planner) Daily(date util.Date, loc astro.Location) DailySchedule {
	slots, w := p.Slots(date, loc)
	return DailySchedule{
		Date:        date,
		LegalWindow: w,
		Lunar:       astro.Moon(date),
		Slots:       slots,
		BestSlot:    Best(slots),
	}
}

// Forecast plans days consecutive dates starting at start. Days are computed
// independently and may run in parallel; the result is ordered by date.
func (p *Planner) Forecast(start util.Date, days int, loc astro.Location) (MultiDayForecast, error) {
	if days < MinForecastDays || days > MaxForecastDays {
		return MultiDayForecast{}, apperrors.Invalidf("days must be between %d and %d", MinForecastDays, MaxForecastDays)
	}

	schedules := make([]DailySchedule, days)
	var g errgroup.Group
	for i := 0; i < days; i++ {
		i := i
		g.Go(func() error {
			schedules[i] = p.Daily(start.AddDays(i), loc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return MultiDayForecast{}, err
	}

	return MultiDayForecast{
		Location:  loc,
		StartDate: start,
		Days:      days,
		Schedules: schedules,
	}, nil
}
