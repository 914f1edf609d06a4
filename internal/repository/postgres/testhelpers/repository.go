package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/atl08-heightmap/internal/domain/repository"
	"github.com/atl08-heightmap/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewObservationRepositoryForTest creates an observation repository over the default table
func NewObservationRepositoryForTest(db *sqlx.DB, logger *zap.Logger) (repository.ObservationRepository, error) {
	return postgres.NewObservationRepository(NewDBForTest(db, logger), postgres.DefaultObservationsTable)
}
