package postgres_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/atl08-heightmap/internal/domain"
	"github.com/atl08-heightmap/internal/domain/repository"
	"github.com/atl08-heightmap/internal/pkg/errors"
	"github.com/atl08-heightmap/internal/repository/postgres/testhelpers"
)

// ObservationRepositoryTestSuite tests ObservationRepository against a live database
type ObservationRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.ObservationRepository
	ctx    context.Context
}

func (s *ObservationRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	err := testhelpers.ApplyMigrations(s.testDB.DB, "../../../migrations", s.testDB.Logger)
	s.Require().NoError(err, "Failed to apply migrations")

	err = s.testDB.Cleanup(context.Background())
	s.Require().NoError(err, "Failed to cleanup test database")

	err = testhelpers.LoadFixtures(s.testDB.DB.DB, "testdata/fixtures", []string{
		"atl08_observations.sql",
	})
	s.Require().NoError(err, "Failed to load fixtures")

	s.repo, err = testhelpers.NewObservationRepositoryForTest(s.testDB.DB, s.testDB.Logger)
	s.Require().NoError(err)
}

func (s *ObservationRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *ObservationRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *ObservationRepositoryTestSuite) TestLoad_Granule() {
	table, err := s.repo.Load(s.ctx, repository.ObservationQuery{
		Granule: "ATL08_20190801",
		Columns: []string{"h_can", "night_flg"},
	})

	s.Require().NoError(err)
	expected, err := testhelpers.CountObservations(s.testDB.DB.DB, "ATL08_20190801")
	s.Require().NoError(err)
	s.Equal(expected, table.Len())
	s.Equal([]string{"lat", "lon", "h_can", "night_flg"}, table.Columns())

	night, err := table.Where("night_flg", domain.Number(1))
	s.Require().NoError(err)
	s.Equal(2, night.Len(), "flag value 2 is not a night observation")
}

func (s *ObservationRepositoryTestSuite) TestLoad_UnknownColumn() {
	_, err := s.repo.Load(s.ctx, repository.ObservationQuery{
		Granule: "ATL08_20190801",
		Columns: []string{"h_canopy_uncertainty"},
	})

	s.Require().Error(err)
	s.True(stderrors.Is(err, errors.ErrMissingColumn))
}

func (s *ObservationRepositoryTestSuite) TestLoad_RejectsInjectedColumn() {
	_, err := s.repo.Load(s.ctx, repository.ObservationQuery{
		Granule: "ATL08_20190801",
		Columns: []string{"h_can; DROP TABLE atl08_observations"},
	})

	s.True(stderrors.Is(err, errors.ErrMissingColumn))
}

func (s *ObservationRepositoryTestSuite) TestLoad_UnknownGranuleIsEmpty() {
	table, err := s.repo.Load(s.ctx, repository.ObservationQuery{
		Granule: "ATL08_19700101",
		Columns: []string{"h_can"},
	})

	s.Require().NoError(err)
	s.Equal(0, table.Len())
}

func (s *ObservationRepositoryTestSuite) TestGranules() {
	granules, err := s.repo.Granules(s.ctx)

	s.Require().NoError(err)
	s.Equal([]string{"ATL08_20190702", "ATL08_20190801"}, granules)
}

func TestObservationRepositorySuite(t *testing.T) {
	suite.Run(t, new(ObservationRepositoryTestSuite))
}
