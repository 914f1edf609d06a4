package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atl08-heightmap/internal/config"
	"github.com/atl08-heightmap/internal/domain"
	"github.com/atl08-heightmap/internal/usecase"
)

func TestComposeOptionsFromConfig(t *testing.T) {
	opts, err := usecase.ComposeOptionsFromConfig(&config.MapConfig{
		MetricColumn:    "h_te_best",
		NightOnly:       true,
		NightFlagColumn: "night_flag",
		NightSentinel:   "night",
		Width:           800,
		MarkerRadius:    6,
	})
	require.NoError(t, err)

	assert.Equal(t, "h_te_best", opts.Markers.MetricColumn)
	assert.Equal(t, "night_flag", opts.Markers.NightFlagColumn)
	assert.True(t, opts.Markers.NightSentinel.Equal(domain.Text("night")))
	assert.Equal(t, 800, opts.Width)
	assert.Equal(t, 400, opts.Height)
	assert.Equal(t, 6.0, opts.Markers.Radius)

	opts, err = usecase.ComposeOptionsFromConfig(&config.MapConfig{NightSentinel: "1"})
	require.NoError(t, err)
	assert.True(t, opts.Markers.NightSentinel.Equal(domain.Number(1)))
	assert.False(t, opts.Markers.NightOnly)

	_, err = usecase.ComposeOptionsFromConfig(&config.MapConfig{MarkerRadius: -2})
	assert.Error(t, err)
}
