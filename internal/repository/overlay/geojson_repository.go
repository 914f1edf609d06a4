// Package overlay reads vector footprint layers drawn above the basemaps.
package overlay

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/atl08-heightmap/internal/domain/repository"
	"github.com/atl08-heightmap/internal/pkg/errors"
)

var supportedExt = map[string]bool{
	".geojson": true,
	".json":    true,
}

type geoJSONRepository struct {
	baseDir string
	logger  *zap.Logger
}

// NewGeoJSONRepository reads GeoJSON overlays. When baseDir is set, paths
// are resolved inside it and cannot escape it.
func NewGeoJSONRepository(baseDir string, logger *zap.Logger) repository.OverlayRepository {
	return &geoJSONRepository{
		baseDir: baseDir,
		logger:  logger,
	}
}

func (r *geoJSONRepository) Read(ctx context.Context, paths ...string) (*geojson.FeatureCollection, error) {
	merged := geojson.NewFeatureCollection()

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fc, err := r.readOne(p)
		if err != nil {
			r.logger.Error("Failed to read overlay", zap.String("path", p), zap.Error(err))
			return nil, errors.OverlayUnreadable(p, err)
		}
		merged.Features = append(merged.Features, fc.Features...)
	}

	r.logger.Debug("Overlay loaded",
		zap.Strings("paths", paths),
		zap.Int("features", len(merged.Features)))

	return merged, nil
}

func (r *geoJSONRepository) resolve(p string) string {
	if r.baseDir == "" {
		return p
	}
	return filepath.Join(r.baseDir, filepath.Clean(string(filepath.Separator)+p))
}

func (r *geoJSONRepository) readOne(p string) (*geojson.FeatureCollection, error) {
	ext := strings.ToLower(filepath.Ext(p))
	if !supportedExt[ext] {
		return nil, fmt.Errorf("unsupported overlay format %q", ext)
	}

	data, err := os.ReadFile(r.resolve(p))
	if err != nil {
		return nil, err
	}
	return normalize(data)
}

// normalize turns a FeatureCollection, a single Feature or a bare geometry
// into a FeatureCollection.
func normalize(data []byte) (*geojson.FeatureCollection, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}

	switch head.Type {
	case "FeatureCollection":
		return geojson.UnmarshalFeatureCollection(data)

	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, err
		}
		return geojson.NewFeatureCollection().Append(f), nil

	case "Point", "MultiPoint", "LineString", "MultiLineString",
		"Polygon", "MultiPolygon", "GeometryCollection":
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, err
		}
		return geojson.NewFeatureCollection().Append(geojson.NewFeature(g.Geometry())), nil

	default:
		return nil, fmt.Errorf("unknown geojson type %q", head.Type)
	}
}
