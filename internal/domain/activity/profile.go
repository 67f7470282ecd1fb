package activity

import (
	"sort"
	"strings"
)

// DefaultSpecies names the generic profile used for unknown species.
const DefaultSpecies = "default"

// HourRange is the half-open local hour interval [Start, End). End may be
// smaller than Start for ranges that wrap past midnight.
type HourRange struct {
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end" json:"end"`
}

// Contains reports whether hour falls inside the range.
func (r HourRange) Contains(hour int) bool {
	if r.Start <= r.End {
		return hour >= r.Start && hour < r.End
	}
	return hour >= r.Start || hour < r.End
}

func anyContains(ranges []HourRange, hour int) bool {
	for _, r := range ranges {
		if r.Contains(hour) {
			return true
		}
	}
	return false
}

// Profile is the static behavior reference for one species.
type Profile struct {
	Species           string      `yaml:"species" json:"species"`
	DisplayName       string      `yaml:"displayName" json:"displayName"`
	ActiveHours       []HourRange `yaml:"activeHours" json:"activeHours"`
	FeedingHours      []HourRange `yaml:"feedingHours" json:"feedingHours"`
	BeddingHours      []HourRange `yaml:"beddingHours" json:"beddingHours"`
	TempMinC          float64     `yaml:"tempMinC" json:"tempMinC"`
	TempMaxC          float64     `yaml:"tempMaxC" json:"tempMaxC"`
	CalmWindKmh       float64     `yaml:"calmWindKmh" json:"calmWindKmh"`
	WindSensitivity   float64     `yaml:"windSensitivity" json:"windSensitivity"`
	PrecipSensitivity float64     `yaml:"precipSensitivity" json:"precipSensitivity"`
	ApproachDistanceM int         `yaml:"approachDistanceM" json:"approachDistanceM"`
	// SeasonFactors overrides the global month table when set.
	SeasonFactors []float64 `yaml:"seasonFactors,omitempty" json:"seasonFactors,omitempty"`
}

// ProfileLookup resolves a species identifier. The boolean is false when the
// returned profile is the generic fallback.
type ProfileLookup interface {
	Lookup(species string) (Profile, bool)
}

// Catalog is a read-only species table.
type Catalog struct {
	profiles map[string]Profile
	fallback Profile
}

// NewCatalog indexes profiles by normalized species name. A profile named
// "default" replaces the built-in fallback.
func NewCatalog(profiles []Profile) *Catalog {
	c := &Catalog{profiles: make(map[string]Profile, len(profiles)), fallback: defaultProfile()}
	for _, p := range profiles {
		key := normalizeSpecies(p.Species)
		if key == "" {
			continue
		}
		p.Species = key
		if key == DefaultSpecies {
			c.fallback = p
			continue
		}
		c.profiles[key] = p
	}
	return c
}

// Lookup implements ProfileLookup.
func (c *Catalog) Lookup(species string) (Profile, bool) {
	if p, ok := c.profiles[normalizeSpecies(species)]; ok {
		return p, true
	}
	return c.fallback, false
}

// Species lists the known identifiers in order.
func (c *Catalog) Species() []string {
	out := make([]string, 0, len(c.profiles))
	for key := range c.profiles {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func normalizeSpecies(species string) string {
	return strings.ToLower(strings.TrimSpace(species))
}

// DefaultProfiles is the built-in species table.
func DefaultProfiles() []Profile {
	return []Profile{
		{
			Species:           "deer",
			DisplayName:       "White-tailed deer",
			ActiveHours:       []HourRange{{5, 9}, {16, 20}},
			FeedingHours:      []HourRange{{6, 8}, {17, 19}},
			BeddingHours:      []HourRange{{10, 15}},
			TempMinC:          -10,
			TempMaxC:          10,
			CalmWindKmh:       15,
			WindSensitivity:   0.8,
			PrecipSensitivity: 0.5,
			ApproachDistanceM: 100,
			SeasonFactors:     []float64{0.4, 0.3, 0.3, 0.4, 0.5, 0.5, 0.5, 0.6, 0.7, 0.9, 1.0, 0.6},
		},
		{
			Species:           "moose",
			DisplayName:       "Moose",
			ActiveHours:       []HourRange{{4, 9}, {17, 21}},
			FeedingHours:      []HourRange{{5, 8}, {18, 20}},
			BeddingHours:      []HourRange{{11, 16}},
			TempMinC:          -20,
			TempMaxC:          5,
			CalmWindKmh:       20,
			WindSensitivity:   0.5,
			PrecipSensitivity: 0.3,
			ApproachDistanceM: 150,
			SeasonFactors:     []float64{0.3, 0.3, 0.3, 0.3, 0.4, 0.4, 0.5, 0.6, 0.9, 1.0, 0.7, 0.4},
		},
		{
			Species:           "turkey",
			DisplayName:       "Wild turkey",
			ActiveHours:       []HourRange{{6, 10}, {15, 18}},
			FeedingHours:      []HourRange{{7, 9}, {15, 17}},
			BeddingHours:      []HourRange{{19, 5}},
			TempMinC:          5,
			TempMaxC:          20,
			CalmWindKmh:       15,
			WindSensitivity:   0.9,
			PrecipSensitivity: 0.8,
			ApproachDistanceM: 50,
			SeasonFactors:     []float64{0.2, 0.2, 0.5, 0.9, 1.0, 0.6, 0.4, 0.4, 0.5, 0.7, 0.6, 0.3},
		},
		{
			Species:           "bear",
			DisplayName:       "Black bear",
			ActiveHours:       []HourRange{{5, 10}, {17, 21}},
			FeedingHours:      []HourRange{{6, 9}, {18, 21}},
			BeddingHours:      []HourRange{{12, 16}},
			TempMinC:          5,
			TempMaxC:          20,
			CalmWindKmh:       20,
			WindSensitivity:   0.6,
			PrecipSensitivity: 0.4,
			ApproachDistanceM: 80,
			SeasonFactors:     []float64{0.1, 0.1, 0.2, 0.5, 0.9, 1.0, 0.7, 0.8, 0.9, 0.6, 0.2, 0.1},
		},
		{
			Species:           "duck",
			DisplayName:       "Waterfowl",
			ActiveHours:       []HourRange{{5, 9}, {16, 19}},
			FeedingHours:      []HourRange{{6, 8}, {16, 18}},
			BeddingHours:      []HourRange{{11, 14}},
			TempMinC:          -5,
			TempMaxC:          10,
			CalmWindKmh:       30,
			WindSensitivity:   0.2,
			PrecipSensitivity: 0.1,
			ApproachDistanceM: 40,
			SeasonFactors:     []float64{0.3, 0.2, 0.3, 0.3, 0.2, 0.2, 0.2, 0.3, 0.7, 1.0, 0.9, 0.5},
		},
	}
}

func defaultProfile() Profile {
	return Profile{
		Species:           DefaultSpecies,
		DisplayName:       "Generic game",
		ActiveHours:       []HourRange{{5, 9}, {16, 20}},
		FeedingHours:      []HourRange{{6, 8}, {17, 19}},
		BeddingHours:      []HourRange{{11, 15}},
		TempMinC:          0,
		TempMaxC:          15,
		CalmWindKmh:       15,
		WindSensitivity:   0.7,
		PrecipSensitivity: 0.5,
		ApproachDistanceM: 75,
	}
}
