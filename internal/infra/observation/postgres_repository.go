package observation

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/huntcast/internal/domain/hunting"
)

// Schema creates the observations table when missing.
const Schema = `
CREATE TABLE IF NOT EXISTS observations (
	id          UUID PRIMARY KEY,
	species     TEXT NOT NULL,
	latitude    DOUBLE PRECISION NOT NULL,
	longitude   DOUBLE PRECISION NOT NULL,
	count       INTEGER NOT NULL CHECK (count > 0),
	observed_at TIMESTAMPTZ NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS observations_species_observed_at_idx
	ON observations (species, observed_at);
`

// PostgresRepository implements hunting.ObservationRepository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema applies Schema.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, Schema)
	return err
}

// Insert stores a sighting.
func (r *PostgresRepository) Insert(ctx context.Context, obs hunting.Observation) (hunting.Observation, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO observations (id, species, latitude, longitude, count, observed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, species, latitude, longitude, count, observed_at, created_at
	`, obs.ID, obs.Species, obs.Latitude, obs.Longitude, obs.Count, obs.ObservedAt, obs.CreatedAt)
	return scanObservation(row)
}

// RecentSightings sums counts inside the box since q.Since and reports
// whether the species has any row at all.
func (r *PostgresRepository) RecentSightings(ctx context.Context, q hunting.SightingQuery) (int, bool, error) {
	var (
		total      int64
		hasHistory bool
	)
	err := r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(count) FILTER (
				WHERE observed_at >= $2
				  AND latitude BETWEEN $3 AND $4
				  AND longitude BETWEEN $5 AND $6
			), 0),
			COUNT(*) > 0
		FROM observations
		WHERE species = $1
	`, q.Species, q.Since, q.Box.MinLat, q.Box.MaxLat, q.Box.MinLon, q.Box.MaxLon).Scan(&total, &hasHistory)
	if err != nil {
		return 0, false, err
	}
	return int(total), hasHistory, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanObservation(row rowScanner) (hunting.Observation, error) {
	var obs hunting.Observation
	if err := row.Scan(&obs.ID, &obs.Species, &obs.Latitude, &obs.Longitude, &obs.Count, &obs.ObservedAt, &obs.CreatedAt); err != nil {
		return hunting.Observation{}, err
	}
	return obs, nil
}

var _ hunting.ObservationRepository = (*PostgresRepository)(nil)
