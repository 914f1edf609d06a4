package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/atl08-heightmap/internal/basemap"
	"github.com/atl08-heightmap/internal/domain"
	"github.com/atl08-heightmap/internal/domain/repository"
	"github.com/atl08-heightmap/internal/pkg/errors"
)

// Map defaults.
const (
	DefaultWidth  = 1000
	DefaultHeight = 400
	DefaultZoom   = 8

	OverlayName = "HRSI CHM footprints"
)

// Overlay style: grey footprints, half transparent.
var overlayStyle = domain.PathStyle{
	FillColor:   "gray",
	Color:       "gray",
	Weight:      0.75,
	Opacity:     1,
	FillOpacity: 0.5,
}

// ComposeOptions configures a single map.
type ComposeOptions struct {
	Markers MarkerOptions

	// OverlayPaths are vector footprint files. The overlay is drawn only
	// when at least one path is given and DisableOverlay is false.
	OverlayPaths   []string
	DisableOverlay bool

	Width  int
	Height int

	// ExtraBasemaps are registry keys added after the defaults. Unknown keys
	// are skipped.
	ExtraBasemaps []string
}

// DefaultComposeOptions returns the options of a plain night h_can map.
func DefaultComposeOptions() ComposeOptions {
	return ComposeOptions{
		Markers: DefaultMarkerOptions(),
		Width:   DefaultWidth,
		Height:  DefaultHeight,
	}
}

// MapComposer builds the full interactive map: basemaps, footprints,
// observations and controls.
type MapComposer struct {
	overlayRepo repository.OverlayRepository
	markers     *MarkerRenderer
	logger      *zap.Logger
}

func NewMapComposer(overlayRepo repository.OverlayRepository, markers *MarkerRenderer, logger *zap.Logger) *MapComposer {
	return &MapComposer{
		overlayRepo: overlayRepo,
		markers:     markers,
		logger:      logger,
	}
}

// Compose builds a map of table. The map is centred on the mean position of
// every row, night or not.
func (c *MapComposer) Compose(ctx context.Context, table *domain.Table, opts ComposeOptions) (*domain.Map, error) {
	if table == nil || table.Len() == 0 {
		return nil, errors.ErrEmptyTable
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	addOverlay := !opts.DisableOverlay && len(opts.OverlayPaths) > 0

	center, err := table.Center()
	if err != nil {
		return nil, err
	}

	m := domain.NewMap(domain.Figure{Width: opts.Width, Height: opts.Height}, center, DefaultZoom)

	registry := basemap.Registry()
	for _, key := range basemapKeys(opts.ExtraBasemaps) {
		bm, ok := registry[key]
		if !ok {
			c.logger.Debug("Unknown basemap skipped", zap.String("basemap", key))
			continue
		}
		m.Add(bm)
	}

	if addOverlay {
		fc, err := c.overlayRepo.Read(ctx, opts.OverlayPaths...)
		if err != nil {
			return nil, err
		}
		m.Add(domain.GeoJSONOverlay{
			Name:  OverlayName,
			Data:  fc,
			Style: overlayStyle,
		})
	}

	if _, err := c.markers.AddObservations(table, opts.Markers, m); err != nil {
		return nil, err
	}

	m.Add(domain.LayerSwitcher{Position: "topright", Collapsed: true}).
		Add(domain.Fullscreen{
			Position:    "topleft",
			Title:       "Full Screen",
			TitleCancel: "Exit Full Screen",
		}).
		Add(domain.MousePosition{
			Position:    "bottomright",
			Separator:   " : ",
			EmptyString: "Unavailable",
			NumDigits:   5,
		}).
		Add(domain.MiniMap{
			Tiles:           "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
			Attribution:     "&copy; OpenStreetMap contributors",
			Position:        "bottomright",
			Width:           150,
			Height:          150,
			ZoomLevelOffset: -5,
		})

	c.logger.Debug("Map composed",
		zap.Float64("center_lat", center.Lat),
		zap.Float64("center_lon", center.Lon),
		zap.Int("layers", len(m.Layers)),
		zap.Bool("overlay", addOverlay))

	return m, nil
}

// basemapKeys returns the default keys followed by extra ones, without
// duplicates.
func basemapKeys(extra []string) []string {
	keys := basemap.Defaults()
	seen := make(map[string]bool, len(keys)+len(extra))
	for _, k := range keys {
		seen[k] = true
	}
	for _, k := range extra {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}
