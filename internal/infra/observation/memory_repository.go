package observation

import (
	"context"
	"sync"

	"github.com/yanqian/huntcast/internal/domain/hunting"
)

// MemoryRepository is an in-memory ObservationRepository used for tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []hunting.Observation
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Insert implements hunting.ObservationRepository.
func (r *MemoryRepository) Insert(_ context.Context, obs hunting.Observation) (hunting.Observation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, obs)
	return obs, nil
}

// RecentSightings implements hunting.ObservationRepository.
func (r *MemoryRepository) RecentSightings(_ context.Context, q hunting.SightingQuery) (int, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var (
		total      int
		hasHistory bool
	)
	for _, rec := range r.records {
		if rec.Species != q.Species {
			continue
		}
		hasHistory = true
		if rec.ObservedAt.Before(q.Since) || !q.Box.Contains(rec.Latitude, rec.Longitude) {
			continue
		}
		total += rec.Count
	}
	return total, hasHistory, nil
}

var _ hunting.ObservationRepository = (*MemoryRepository)(nil)
