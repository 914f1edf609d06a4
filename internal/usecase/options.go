package usecase

import (
	"fmt"

	"github.com/atl08-heightmap/internal/config"
	"github.com/atl08-heightmap/internal/domain"
)

// ComposeOptionsFromConfig turns the MAP_* settings into compose defaults.
// The sentinel is read like a CSV cell: "1" is numeric, "night" is text.
func ComposeOptionsFromConfig(cfg *config.MapConfig) (ComposeOptions, error) {
	opts := DefaultComposeOptions()

	if cfg.MetricColumn != "" {
		opts.Markers.MetricColumn = cfg.MetricColumn
	}
	opts.Markers.NightOnly = cfg.NightOnly
	if cfg.NightFlagColumn != "" {
		opts.Markers.NightFlagColumn = cfg.NightFlagColumn
	}
	if cfg.NightSentinel != "" {
		v := domain.ParseValue(cfg.NightSentinel)
		opts.Markers.NightSentinel = &v
	}
	if cfg.MarkerRadius < 0 {
		return ComposeOptions{}, fmt.Errorf("marker radius must be positive, got %g", cfg.MarkerRadius)
	}
	if cfg.MarkerRadius > 0 {
		opts.Markers.Radius = cfg.MarkerRadius
	}
	if cfg.Width > 0 {
		opts.Width = cfg.Width
	}
	if cfg.Height > 0 {
		opts.Height = cfg.Height
	}
	return opts, nil
}
