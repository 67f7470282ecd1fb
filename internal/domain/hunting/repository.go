package hunting

import (
	"context"
	"math"
	"time"
)

// SightingQuery selects observations of one species near a point since a time.
type SightingQuery struct {
	Species string
	Box     BoundingBox
	Since   time.Time
}

// ObservationRepository stores field sightings.
type ObservationRepository interface {
	Insert(ctx context.Context, obs Observation) (Observation, error)
	// RecentSightings sums the counts matching q. hasHistory is false when the
	// repository holds no record of the species at all.
	RecentSightings(ctx context.Context, q SightingQuery) (total int, hasHistory bool, err error)
}

// ResultStore caches serialized responses.
type ResultStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// BoundingBox is a latitude/longitude rectangle in degrees.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// Contains reports whether the point lies inside the box.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// BoxAround approximates a radius in kilometres by a box, ignoring wrap at
// the antimeridian.
func BoxAround(lat, lon, radiusKm float64) BoundingBox {
	const kmPerDegree = 111.32
	dLat := radiusKm / kmPerDegree
	cos := math.Cos(lat * math.Pi / 180)
	dLon := 180.0
	if cos > 1e-6 {
		dLon = math.Min(180, radiusKm/(kmPerDegree*cos))
	}
	return BoundingBox{
		MinLat: math.Max(-90, lat-dLat),
		MaxLat: math.Min(90, lat+dLat),
		MinLon: math.Max(-180, lon-dLon),
		MaxLon: math.Min(180, lon+dLon),
	}
}
