package repository

import (
	"context"

	"github.com/atl08-heightmap/internal/domain"
)

// ObservationQuery selects the observations of one granule and the
// columns to load next to lat/lon.
type ObservationQuery struct {
	Granule string
	Columns []string
}

// ObservationRepository loads observation tables from a store.
type ObservationRepository interface {
	// Load returns lat, lon and the requested columns for a granule
	Load(ctx context.Context, q ObservationQuery) (*domain.Table, error)

	// Granules lists the granules available in the store
	Granules(ctx context.Context) ([]string, error)
}
