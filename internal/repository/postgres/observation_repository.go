package postgres

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/atl08-heightmap/internal/domain"
	"github.com/atl08-heightmap/internal/domain/repository"
	"github.com/atl08-heightmap/internal/pkg/errors"
)

// DefaultObservationsTable хранит точки ATL08, одна строка на наблюдение
const DefaultObservationsTable = "atl08_observations"

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

type observationRepository struct {
	db     *sqlx.DB
	table  string
	logger *zap.Logger
}

// NewObservationRepository создает репозиторий наблюдений поверх таблицы table
func NewObservationRepository(db *DB, table string) (repository.ObservationRepository, error) {
	if table == "" {
		table = DefaultObservationsTable
	}
	if !identRe.MatchString(table) {
		return nil, fmt.Errorf("invalid observations table name %q", table)
	}
	return &observationRepository{
		db:     db.DB,
		table:  table,
		logger: db.logger,
	}, nil
}

// Load возвращает lat, lon и запрошенные колонки для гранулы
func (r *observationRepository) Load(ctx context.Context, q repository.ObservationQuery) (*domain.Table, error) {
	columns := append([]string{domain.ColumnLat, domain.ColumnLon}, q.Columns...)
	table := domain.NewTable(columns...)
	columns = table.Columns()

	existing, err := r.tableColumns(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range columns {
		if !identRe.MatchString(c) || !existing[c] {
			return nil, errors.MissingColumn(c)
		}
	}

	// Имена колонок проверены по information_schema, подставлять их безопасно
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE granule = $1`,
		strings.Join(columns, ", "), r.table,
	)

	rows, err := r.db.QueryxContext(ctx, query, q.Granule)
	if err != nil {
		r.logger.Error("Failed to query observations",
			zap.String("granule", q.Granule),
			zap.Error(err))
		return nil, errors.ErrDatabaseError.Wrap(err)
	}
	defer rows.Close()

	row := 0
	for rows.Next() {
		cells, err := rows.SliceScan()
		if err != nil {
			return nil, errors.ErrDatabaseError.Wrap(err)
		}

		values := make([]domain.Value, len(cells))
		for i, c := range cells {
			values[i] = toValue(c)
		}
		if _, ok := values[0].Float(); !ok {
			return nil, errors.InvalidObservation(row, domain.ColumnLat)
		}
		if _, ok := values[1].Float(); !ok {
			return nil, errors.InvalidObservation(row, domain.ColumnLon)
		}
		if err := table.Append(values...); err != nil {
			return nil, err
		}
		row++
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ErrDatabaseError.Wrap(err)
	}

	r.logger.Debug("Observations loaded from PostgreSQL",
		zap.String("granule", q.Granule),
		zap.Int("rows", table.Len()))

	return table, nil
}

// Granules возвращает список гранул в таблице
func (r *observationRepository) Granules(ctx context.Context) ([]string, error) {
	var granules []string
	query := fmt.Sprintf(`SELECT DISTINCT granule FROM %s ORDER BY granule`, r.table)
	if err := r.db.SelectContext(ctx, &granules, query); err != nil {
		r.logger.Error("Failed to list granules", zap.Error(err))
		return nil, errors.ErrDatabaseError.Wrap(err)
	}
	return granules, nil
}

func (r *observationRepository) tableColumns(ctx context.Context) (map[string]bool, error) {
	var names []string
	err := r.db.SelectContext(ctx, &names, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1
	`, r.table)
	if err != nil {
		return nil, errors.ErrDatabaseError.Wrap(err)
	}
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out, nil
}

func toValue(cell interface{}) domain.Value {
	switch v := cell.(type) {
	case float64:
		return domain.Number(v)
	case float32:
		return domain.Number(float64(v))
	case int64:
		return domain.Number(float64(v))
	case int32:
		return domain.Number(float64(v))
	case int16:
		return domain.Number(float64(v))
	case bool:
		if v {
			return domain.Number(1)
		}
		return domain.Number(0)
	case []byte:
		return domain.ParseValue(string(v))
	case string:
		return domain.ParseValue(v)
	case nil:
		return domain.Text("")
	default:
		return domain.Text(fmt.Sprint(v))
	}
}
