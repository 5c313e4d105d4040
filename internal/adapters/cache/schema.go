package cache

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema initializes the route-cache schema. The statement is plain
// enough to run unchanged on both SQLite and Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS route_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        mode TEXT NOT NULL,
        minutes INTEGER NOT NULL,
        pessimistic_minutes INTEGER NOT NULL,
        PRIMARY KEY (origin, destination, mode)
    );
	`

	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init schema: create route_cache: %w", err)
	}

	return nil
}
