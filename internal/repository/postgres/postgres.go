package postgres

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/atl08-heightmap/internal/config"
)

const pingTimeout = 5 * time.Second

// DB wraps the observation database pool.
type DB struct {
	*sqlx.DB
	logger *zap.Logger
}

// New opens a pgx backed pool and checks it answers
func New(cfg *config.Config, logger *zap.Logger) (*DB, error) {
	db, err := sqlx.Open("pgx", cfg.GetDatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	dbCfg := cfg.Database
	db.SetMaxOpenConns(dbCfg.MaxConns)
	db.SetMaxIdleConns(dbCfg.MaxIdleConns)
	db.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(dbCfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database %s:%d: %w", dbCfg.Host, dbCfg.Port, err)
	}

	logger.Info("Observation database connected",
		zap.String("host", dbCfg.Host),
		zap.String("database", dbCfg.DBName),
		zap.String("table", cfg.Data.ObservationsTable))

	return &DB{DB: db, logger: logger}, nil
}

func (db *DB) Close() error {
	db.logger.Info("Closing observation database")
	return db.DB.Close()
}

// Health используется в /api/v1/health
func (db *DB) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return db.PingContext(ctx)
}

// NewDBForTest оборачивает готовое соединение
func NewDBForTest(sqlxDB *sqlx.DB, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{DB: sqlxDB, logger: logger}
}
