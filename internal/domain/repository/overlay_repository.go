package repository

import (
	"context"

	"github.com/paulmach/orb/geojson"
)

// OverlayRepository reads vector footprint layers.
type OverlayRepository interface {
	// Read loads every path and merges the features into one collection
	Read(ctx context.Context, paths ...string) (*geojson.FeatureCollection, error)
}
