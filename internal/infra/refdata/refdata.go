// Package refdata loads the reference tables (season factors, slot scores and
// species profiles) from YAML.
package refdata

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yanqian/huntcast/internal/domain/activity"
	"github.com/yanqian/huntcast/internal/domain/schedule"
)

// Tables is the full reference data set. Missing sections keep the built-in
// values.
type Tables struct {
	SeasonFactors []float64          `yaml:"seasonFactors"`
	Slots         schedule.SlotTable `yaml:"slots"`
	Species       []activity.Profile `yaml:"species"`
}

// Default returns the built-in tables.
func Default() Tables {
	season := activity.DefaultConfig().SeasonFactors
	return Tables{
		SeasonFactors: season[:],
		Slots:         schedule.DefaultSlotTable(),
		Species:       activity.DefaultProfiles(),
	}
}

// Load reads path and overlays it on the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Tables, error) {
	tables := Default()
	if strings.TrimSpace(path) == "" {
		return tables, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("read reference data: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML document and overlays it on the defaults. Species
// profiles replace built-in entries of the same name and add new ones.
func Parse(data []byte) (Tables, error) {
	var overlay Tables
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return Tables{}, fmt.Errorf("parse reference data: %w", err)
	}
	tables := Default()
	if len(overlay.SeasonFactors) > 0 {
		tables.SeasonFactors = overlay.SeasonFactors
	}
	for period, entry := range overlay.Slots {
		tables.Slots[period] = entry
	}
	tables.Species = mergeProfiles(tables.Species, overlay.Species)
	if err := tables.Validate(); err != nil {
		return Tables{}, err
	}
	return tables, nil
}

func mergeProfiles(base, overlay []activity.Profile) []activity.Profile {
	index := make(map[string]int, len(base))
	out := append([]activity.Profile(nil), base...)
	for i, p := range out {
		index[strings.ToLower(p.Species)] = i
	}
	for _, p := range overlay {
		key := strings.ToLower(strings.TrimSpace(p.Species))
		if i, ok := index[key]; ok {
			out[i] = p
			continue
		}
		index[key] = len(out)
		out = append(out, p)
	}
	return out
}

// Validate rejects tables the model cannot use.
func (t Tables) Validate() error {
	if len(t.SeasonFactors) != 12 {
		return fmt.Errorf("seasonFactors must have 12 entries, got %d", len(t.SeasonFactors))
	}
	for i, f := range t.SeasonFactors {
		if f < 0 || f > 1 {
			return fmt.Errorf("seasonFactors[%d] must be within [0, 1]", i)
		}
	}
	known := make(map[schedule.Period]bool, len(schedule.Periods))
	for _, p := range schedule.Periods {
		known[p] = true
	}
	for period, entry := range t.Slots {
		if !known[period] {
			return fmt.Errorf("slots: unknown period %q", period)
		}
		if entry.Score < 0 || entry.Score > 100 {
			return fmt.Errorf("slots.%s.score must be within [0, 100]", period)
		}
	}
	for _, p := range t.Species {
		if err := validateProfile(p); err != nil {
			return fmt.Errorf("species %q: %w", p.Species, err)
		}
	}
	return nil
}

func validateProfile(p activity.Profile) error {
	if strings.TrimSpace(p.Species) == "" {
		return errors.New("species name cannot be empty")
	}
	for _, ranges := range [][]activity.HourRange{p.ActiveHours, p.FeedingHours, p.BeddingHours} {
		for _, r := range ranges {
			if r.Start < 0 || r.Start > 23 || r.End < 0 || r.End > 24 {
				return fmt.Errorf("hour range %d-%d out of bounds", r.Start, r.End)
			}
		}
	}
	if p.TempMinC > p.TempMaxC {
		return errors.New("tempMinC cannot exceed tempMaxC")
	}
	if p.WindSensitivity < 0 || p.PrecipSensitivity < 0 {
		return errors.New("sensitivities cannot be negative")
	}
	if n := len(p.SeasonFactors); n != 0 && n != 12 {
		return fmt.Errorf("seasonFactors must have 12 entries, got %d", n)
	}
	return nil
}

// SeasonTable returns the season factors as the fixed-size model table.
func (t Tables) SeasonTable() [12]float64 {
	var out [12]float64
	copy(out[:], t.SeasonFactors)
	return out
}
