package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
)

// LoadFixtures loads SQL fixture files into the database
func LoadFixtures(db *sql.DB, fixturesPath string, files []string) error {
	for _, file := range files {
		path := filepath.Join(fixturesPath, file)
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read fixture %s: %w", file, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("load fixture %s: %w", file, err)
		}
	}

	return nil
}

// CountObservations returns the number of rows stored for a granule
func CountObservations(db *sql.DB, granule string) (int, error) {
	var n int
	err := db.QueryRowContext(context.Background(),
		"SELECT count(*) FROM atl08_observations WHERE granule = $1", granule).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count observations of %s: %w", granule, err)
	}
	return n, nil
}
