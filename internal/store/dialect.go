// Package store provides the SQL dialect switch shared by the feedback
// memory and query store: sqlite by default (embedded, zero-ops), with an
// optional postgres driver for operators who already run a Postgres fleet.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/nyaya-engine/core/internal/config"
)

// Open returns a *sql.DB for the configured driver. driver must be one of
// config.DatabaseDriverSQLite or config.DatabaseDriverPostgres; dsn is the
// sqlite file path or the postgres connection string, respectively.
func Open(driver config.DatabaseDriver, dsn string) (*sql.DB, error) {
	switch driver {
	case config.DatabaseDriverSQLite:
		db, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return db, nil
	case config.DatabaseDriverPostgres:
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// Placeholder returns the positional-parameter placeholder for index i
// (1-based) under driver — sqlite and postgres disagree on bind syntax, and
// callers that build dialect-aware SQL need this to stay portable.
func Placeholder(driver config.DatabaseDriver, i int) string {
	if driver == config.DatabaseDriverPostgres {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}
