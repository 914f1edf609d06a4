package testhelpers

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// TestDB is a connection to the integration database.
type TestDB struct {
	DB     *sqlx.DB
	Logger *zap.Logger
}

// SetupTestDB connects to the TEST_DB_* database or skips the test when it
// never comes up.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		env("TEST_DB_HOST", "localhost"),
		env("TEST_DB_PORT", "5433"),
		env("TEST_DB_USER", "postgres"),
		env("TEST_DB_PASSWORD", "postgres"),
		env("TEST_DB_NAME", "atl08_test"),
		env("TEST_DB_SSLMODE", "disable"),
	)

	attempts := envInt("TEST_DB_CONNECT_RETRIES", 3)
	delay := 500 * time.Millisecond

	var (
		db  *sqlx.DB
		err error
	)
	for i := 1; i <= attempts; i++ {
		if db, err = sqlx.Connect("postgres", dsn); err == nil {
			break
		}
		if i < attempts {
			t.Logf("observation db not ready (%d/%d), retry in %v", i, attempts, delay)
			time.Sleep(delay)
			delay *= 2
		}
	}
	if err != nil {
		t.Skipf("PostgreSQL not available for integration tests: %v", err)
	}

	return &TestDB{DB: db, Logger: zaptest.NewLogger(t)}
}

func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		_ = tdb.DB.Close()
	}
}

// Cleanup empties the observation table; a missing table is not an error.
func (tdb *TestDB) Cleanup(ctx context.Context) error {
	_, _ = tdb.DB.ExecContext(ctx, "TRUNCATE TABLE atl08_observations")
	return nil
}

func envInt(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return def
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
