// Package csvfile loads observation tables exported as CSV files.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/atl08-heightmap/internal/domain"
	"github.com/atl08-heightmap/internal/domain/repository"
	"github.com/atl08-heightmap/internal/pkg/errors"
)

const ext = ".csv"

type observationRepository struct {
	dir    string
	logger *zap.Logger
}

// NewObservationRepository serves one CSV file per granule from dir. A
// granule given with a .csv suffix is read as a path relative to dir; it
// never leaves dir. An empty dir means the working directory.
func NewObservationRepository(dir string, logger *zap.Logger) repository.ObservationRepository {
	if dir == "" {
		dir = "."
	}
	return &observationRepository{
		dir:    dir,
		logger: logger,
	}
}

func (r *observationRepository) path(granule string) string {
	if strings.EqualFold(filepath.Ext(granule), ext) {
		return filepath.Join(r.dir, filepath.Clean(string(filepath.Separator)+granule))
	}
	return filepath.Join(r.dir, filepath.Base(granule)+ext)
}

func (r *observationRepository) Load(ctx context.Context, q repository.ObservationQuery) (*domain.Table, error) {
	p := r.path(q.Granule)

	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open observations %s: %w", p, err)
	}
	defer f.Close()

	table, err := ReadTable(ctx, f, q.Columns)
	if err != nil {
		return nil, fmt.Errorf("read observations %s: %w", p, err)
	}

	r.logger.Debug("Observations loaded from CSV",
		zap.String("path", p),
		zap.Int("rows", table.Len()))

	return table, nil
}

func (r *observationRepository) Granules(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("list granules: %w", err)
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	sort.Strings(out)
	return out, nil
}

// ReadTable parses a CSV stream with a header row. lat and lon are always
// loaded; columns selects the others, nil meaning all of them.
func ReadTable(ctx context.Context, src io.Reader, columns []string) (*domain.Table, error) {
	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	wanted := []string{domain.ColumnLat, domain.ColumnLon}
	if columns == nil {
		for _, h := range header {
			wanted = append(wanted, strings.TrimSpace(h))
		}
	} else {
		wanted = append(wanted, columns...)
	}

	table := domain.NewTable(wanted...)
	names := table.Columns()
	pos := make([]int, len(names))
	for i, name := range names {
		at, ok := index[name]
		if !ok {
			return nil, errors.MissingColumn(name)
		}
		pos[i] = at
	}

	row := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.InvalidObservation(row, "").Wrap(err)
		}

		values := make([]domain.Value, len(names))
		for i, at := range pos {
			values[i] = domain.ParseValue(record[at])
		}
		if err := checkCoordinate(row, values[0], values[1]); err != nil {
			return nil, err
		}
		if err := table.Append(values...); err != nil {
			return nil, err
		}
		row++
	}

	return table, nil
}

func checkCoordinate(row int, lat, lon domain.Value) error {
	la, ok := lat.Float()
	if !ok {
		return errors.InvalidObservation(row, domain.ColumnLat)
	}
	lo, ok := lon.Float()
	if !ok {
		return errors.InvalidObservation(row, domain.ColumnLon)
	}
	if !domain.ValidCoordinate(la, lo) {
		return errors.InvalidObservation(row, domain.ColumnLat+","+domain.ColumnLon)
	}
	return nil
}
