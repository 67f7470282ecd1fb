package hunting

import (
	"time"

	"github.com/yanqian/huntcast/internal/domain/astro"
)

// Config wires runtime knobs for the hunting facade.
type Config struct {
	DefaultLocation     astro.Location
	DefaultForecastDays int
	ObservationRadiusKm float64
	ObservationLookback time.Duration
}
