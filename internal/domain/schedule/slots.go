// Package schedule ranks the named periods of a day and aggregates them into
// daily schedules and multi-day forecasts.
package schedule

import (
	"sort"

	"github.com/yanqian/huntcast/internal/domain/astro"
	"github.com/yanqian/huntcast/internal/domain/regulation"
	"github.com/yanqian/huntcast/pkg/util"
)

// Period names a part of the day anchored on the sun, not on clock hours.
type Period string

const (
	PeriodDawn      Period = "dawn"
	PeriodMorning   Period = "morning"
	PeriodMidday    Period = "midday"
	PeriodAfternoon Period = "afternoon"
	PeriodDusk      Period = "dusk"
	PeriodNight     Period = "night"
)

// Periods lists the catalog in chronological order.
var Periods = []Period{PeriodDawn, PeriodMorning, PeriodMidday, PeriodAfternoon, PeriodDusk, PeriodNight}

// SlotEntry is the static score and advice for one period.
type SlotEntry struct {
	Score          float64 `yaml:"score" json:"score"`
	Recommendation string  `yaml:"recommendation" json:"recommendation"`
}

// SlotTable maps each period to its base score. It is reference data.
type SlotTable map[Period]SlotEntry

// DefaultSlotTable favours the crepuscular periods.
func DefaultSlotTable() SlotTable {
	return SlotTable{
		PeriodDawn:      {Score: 95, Recommendation: "Prime time: be set up before first light, game moves back toward bedding cover."},
		PeriodMorning:   {Score: 70, Recommendation: "Good movement continues for the first hours after sunrise; still-hunt edges."},
		PeriodMidday:    {Score: 40, Recommendation: "Slow period; most animals are bedded. Scout or glass thick cover."},
		PeriodAfternoon: {Score: 60, Recommendation: "Activity builds late in the day; move to stands near feeding areas."},
		PeriodDusk:      {Score: 90, Recommendation: "Excellent: animals leave cover to feed. Stay until legal light ends."},
		PeriodNight:     {Score: 10, Recommendation: "Outside legal hours."},
	}
}

// Slot is one ranked period of the day.
type Slot struct {
	Period         Period     `json:"period"`
	Start          util.Clock `json:"start"`
	End            util.Clock `json:"end"`
	Score          float64    `json:"score"`
	Legal          bool       `json:"isLegal"`
	Recommendation string     `json:"recommendation"`
}

// Minutes returns the slot length.
func (s Slot) Minutes() int { return int(s.End - s.Start) }

// Planner builds slots, schedules and forecasts from fixed reference data.
// It holds no mutable state and is safe for concurrent use.
type Planner struct {
	rules regulation.Rules
	table SlotTable
}

// NewPlanner fills any period missing from table with its default entry.
func NewPlanner(rules regulation.Rules, table SlotTable) *Planner {
	merged := DefaultSlotTable()
	for period, entry := range table {
		merged[period] = entry
	}
	return &Planner{rules: rules, table: merged}
}

// Rules exposes the legal rules the planner clips against.
func (p *Planner) Rules() regulation.Rules { return p.rules }

// Catalog returns every period with its raw sun-relative boundaries and a
// legality flag telling whether it overlaps the window. Periods that collapse
// to nothing on very short days are omitted.
func (p *Planner) Catalog(w regulation.Window) []Slot {
	sun := w.Sun
	noon := (sun.Sunrise + sun.Sunset) / 2
	bounds := map[Period][2]util.Clock{
		PeriodDawn:      {sun.Sunrise - 45, sun.Sunrise + 60},
		PeriodMorning:   {sun.Sunrise + 60, noon - 60},
		PeriodMidday:    {noon - 60, noon + 60},
		PeriodAfternoon: {noon + 60, sun.Sunset - 60},
		PeriodDusk:      {sun.Sunset - 60, sun.Sunset + 45},
		PeriodNight:     {sun.Sunset + 45, util.MinutesPerDay - 1},
	}

	slots := make([]Slot, 0, len(Periods))
	for _, period := range Periods {
		b := bounds[period]
		start, end := b[0].Clamp(), b[1].Clamp()
		if end <= start {
			continue
		}
		_, _, legal := w.Clip(start, end)
		entry := p.table[period]
		slots = append(slots, Slot{
			Period:         period,
			Start:          start,
			End:            end,
			Score:          entry.Score,
			Legal:          legal,
			Recommendation: entry.Recommendation,
		})
	}
	return slots
}

// Rank clips the catalog to the legal window, drops illegal periods and sorts
// by score, best first.
func (p *Planner) Rank(w regulation.Window) []Slot {
	catalog := p.Catalog(w)
	ranked := make([]Slot, 0, len(catalog))
	for _, slot := range catalog {
		if !slot.Legal {
			continue
		}
		start, end, ok := w.Clip(slot.Start, slot.End)
		if !ok {
			continue
		}
		slot.Start, slot.End = start, end
		ranked = append(ranked, slot)
	}
	SortByScore(ranked)
	return ranked
}

// Slots computes the window for date at loc and ranks the legal periods.
func (p *Planner) Slots(date util.Date, loc astro.Location) ([]Slot, regulation.Window) {
	w := p.rules.For(date, loc)
	return p.Rank(w), w
}

// Best returns the top slot or nil when nothing is legal.
func Best(slots []Slot) *Slot {
	if len(slots) == 0 {
		return nil
	}
	best := slots[0]
	return &best
}

// SortByScore orders slots best first, earliest first on ties.
func SortByScore(slots []Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Score == slots[j].Score {
			return slots[i].Start < slots[j].Start
		}
		return slots[i].Score > slots[j].Score
	})
}
