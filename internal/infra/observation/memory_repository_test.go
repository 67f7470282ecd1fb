package observation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/huntcast/internal/domain/hunting"
)

func TestMemoryRepositoryRecentSightings(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	now := time.Date(2026, time.November, 10, 12, 0, 0, 0, time.UTC)

	insert := func(species string, lat, lon float64, count int, at time.Time) {
		_, err := repo.Insert(ctx, hunting.Observation{
			ID: uuid.New(), Species: species, Latitude: lat, Longitude: lon, Count: count, ObservedAt: at, CreatedAt: now,
		})
		require.NoError(t, err)
	}
	insert("deer", 46.81, -71.21, 2, now.Add(-24*time.Hour))
	insert("deer", 46.90, -71.10, 1, now.Add(-48*time.Hour))
	insert("deer", 46.81, -71.21, 5, now.Add(-30*24*time.Hour))
	insert("deer", 48.50, -68.50, 4, now.Add(-time.Hour))
	insert("moose", 46.81, -71.21, 9, now.Add(-time.Hour))

	q := hunting.SightingQuery{
		Species: "deer",
		Box:     hunting.BoxAround(46.8139, -71.2080, 25),
		Since:   now.Add(-7 * 24 * time.Hour),
	}
	total, hasHistory, err := repo.RecentSightings(ctx, q)
	require.NoError(t, err)
	require.True(t, hasHistory)
	require.Equal(t, 3, total)

	q.Species = "turkey"
	total, hasHistory, err = repo.RecentSightings(ctx, q)
	require.NoError(t, err)
	require.False(t, hasHistory)
	require.Zero(t, total)
}

func TestMemoryRepositoryHistoryWithoutRecentSightings(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	now := time.Now().UTC()
	_, err := repo.Insert(ctx, hunting.Observation{ID: uuid.New(), Species: "bear", Latitude: 46.8, Longitude: -71.2, Count: 1, ObservedAt: now.Add(-60 * 24 * time.Hour)})
	require.NoError(t, err)

	total, hasHistory, err := repo.RecentSightings(ctx, hunting.SightingQuery{
		Species: "bear",
		Box:     hunting.BoxAround(46.8, -71.2, 10),
		Since:   now.Add(-7 * 24 * time.Hour),
	})
	require.NoError(t, err)
	require.True(t, hasHistory)
	require.Zero(t, total)
}
