package cache

import (
	"calendar-transit-service/internal/domain"
	"calendar-transit-service/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLite-backed cache for (origin, destination, mode) routing results.
// Keys are expected to be consistent (e.g., already normalized) by the
// caller.
type SqliteRouteCache struct {
	DB *sql.DB
}

func NewSqliteRouteCache(db *sql.DB) *SqliteRouteCache {
	return &SqliteRouteCache{DB: db}
}

func (s *SqliteRouteCache) Get(
	ctx context.Context,
	origin string,
	destination string,
	mode domain.TravelMode,
) (ports.CachedRoute, bool, error) {
	if s.DB == nil {
		return ports.CachedRoute{}, false, errors.New("route cache: db is nil")
	}
	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return ports.CachedRoute{}, false, errors.New("get route cache: origin and destination must be non-empty")
	}

	q := `
	SELECT minutes, pessimistic_minutes
	FROM route_cache
	WHERE origin = ? AND destination = ? AND mode = ?;
	`

	var out ports.CachedRoute
	err := s.DB.QueryRowContext(ctx, q, origin, destination, string(mode)).
		Scan(&out.Minutes, &out.PessimisticMinutes)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.CachedRoute{}, false, nil
	}
	if err != nil {
		return ports.CachedRoute{}, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	return out, true, nil
}

func (s *SqliteRouteCache) Put(
	ctx context.Context,
	origin string,
	destination string,
	mode domain.TravelMode,
	r ports.CachedRoute,
) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return errors.New("insert route cache: origin and destination must be non-empty")
	}

	q := `
	INSERT OR REPLACE INTO route_cache (
		origin,
		destination,
		mode,
		minutes,
		pessimistic_minutes
	)
	VALUES (?, ?, ?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, origin, destination, string(mode), r.Minutes, r.PessimisticMinutes); err != nil {
		return fmt.Errorf("insert route cache %q -> %q: %w", origin, destination, err)
	}

	return nil
}
