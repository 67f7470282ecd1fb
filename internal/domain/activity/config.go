package activity

// Config holds the reference tables and constants of the scoring model.
type Config struct {
	// SeasonFactors is indexed by month-1, values in [0,1].
	SeasonFactors [12]float64
	// Exactly two confidence tiers exist; they are fixed values, not estimates.
	ConfidenceWithWeather    float64
	ConfidenceWithoutWeather float64
	NewMoonScore             float64
	FullMoonScore            float64
	// PlaceholderRecentScore stands in for recent activity without history.
	PlaceholderRecentScore float64
	MaxOptimalTimes        int
}

// DefaultConfig returns the stock model.
func DefaultConfig() Config {
	return Config{
		SeasonFactors:            [12]float64{0.4, 0.3, 0.3, 0.4, 0.5, 0.5, 0.5, 0.6, 0.7, 0.9, 1.0, 0.6},
		ConfidenceWithWeather:    0.85,
		ConfidenceWithoutWeather: 0.60,
		NewMoonScore:             80,
		FullMoonScore:            40,
		PlaceholderRecentScore:   50,
		MaxOptimalTimes:          3,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SeasonFactors == ([12]float64{}) {
		c.SeasonFactors = d.SeasonFactors
	}
	if c.ConfidenceWithWeather <= 0 {
		c.ConfidenceWithWeather = d.ConfidenceWithWeather
	}
	if c.ConfidenceWithoutWeather <= 0 {
		c.ConfidenceWithoutWeather = d.ConfidenceWithoutWeather
	}
	if c.ConfidenceWithWeather <= c.ConfidenceWithoutWeather {
		c.ConfidenceWithWeather, c.ConfidenceWithoutWeather = d.ConfidenceWithWeather, d.ConfidenceWithoutWeather
	}
	if c.NewMoonScore <= 0 && c.FullMoonScore <= 0 {
		c.NewMoonScore, c.FullMoonScore = d.NewMoonScore, d.FullMoonScore
	}
	if c.PlaceholderRecentScore <= 0 {
		c.PlaceholderRecentScore = d.PlaceholderRecentScore
	}
	if c.MaxOptimalTimes <= 0 {
		c.MaxOptimalTimes = d.MaxOptimalTimes
	}
	return c
}
