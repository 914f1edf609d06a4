package csvfile

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atl08-heightmap/internal/domain"
	"github.com/atl08-heightmap/internal/domain/repository"
	"github.com/atl08-heightmap/internal/pkg/errors"
)

const granuleCSV = `lat,lon,h_can,h_te_best_fit,night_flg
64.10,-147.20,12.5,310.2,1
64.11,-147.21,3.25,311.0,0
64.12,-147.22,27.0,309.9,1
`

func TestReadTable_SelectedColumns(t *testing.T) {
	table, err := ReadTable(context.Background(), strings.NewReader(granuleCSV),
		[]string{"h_can", "night_flg"})
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"lat", "lon", "h_can", "night_flg"}, table.Columns())

	heights, err := table.Floats("h_can")
	require.NoError(t, err)
	assert.Equal(t, []float64{12.5, 3.25, 27.0}, heights)
}

func TestReadTable_AllColumns(t *testing.T) {
	table, err := ReadTable(context.Background(), strings.NewReader(granuleCSV), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"lat", "lon", "h_can", "h_te_best_fit", "night_flg"}, table.Columns())
}

func TestReadTable_Errors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		columns []string
		target  error
	}{
		{
			name:    "missing metric column",
			csv:     granuleCSV,
			columns: []string{"h_max_can"},
			target:  errors.ErrMissingColumn,
		},
		{
			name:   "missing lat",
			csv:    "latitude,lon,h_can\n1,2,3\n",
			target: errors.ErrMissingColumn,
		},
		{
			name:   "non numeric longitude",
			csv:    "lat,lon,h_can\n64.1,east,3\n",
			target: errors.ErrInvalidObservation,
		},
		{
			name:   "latitude off the globe",
			csv:    "lat,lon,h_can\n95,10,3\n",
			target: errors.ErrInvalidObservation,
		},
		{
			name:   "ragged row",
			csv:    "lat,lon,h_can\n64.1,10\n",
			target: errors.ErrInvalidObservation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTable(context.Background(), strings.NewReader(tt.csv), tt.columns)
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, tt.target), err.Error())
		})
	}
}

func TestObservationRepository_LoadAndList(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ATL08_20190801.csv"), []byte(granuleCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ATL08_20190702.csv"), []byte(granuleCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	repo := NewObservationRepository(dir, zap.NewNop())
	ctx := context.Background()

	granules, err := repo.Granules(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ATL08_20190702", "ATL08_20190801"}, granules)

	table, err := repo.Load(ctx, repository.ObservationQuery{
		Granule: "ATL08_20190801",
		Columns: []string{"h_can", "night_flg"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())

	night, err := table.Where("night_flg", domain.Number(1))
	require.NoError(t, err)
	assert.Equal(t, 2, night.Len())

	_, err = repo.Load(ctx, repository.ObservationQuery{Granule: "ATL08_missing"})
	assert.Error(t, err)
}

func TestObservationRepository_StaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	secret := filepath.Join(outside, "secret.csv")
	require.NoError(t, os.WriteFile(secret, []byte(granuleCSV), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "ATL08_a.csv"), []byte(granuleCSV), 0o644))

	repo := NewObservationRepository(dir, zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name    string
		granule string
	}{
		{"absolute path", secret},
		{"parent traversal", "../" + filepath.Base(outside) + "/secret.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := repo.Load(ctx, repository.ObservationQuery{Granule: tt.granule})
			assert.Error(t, err)
			assert.Nil(t, table)
		})
	}

	table, err := repo.Load(ctx, repository.ObservationQuery{Granule: "sub/ATL08_a.csv"})
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
}
