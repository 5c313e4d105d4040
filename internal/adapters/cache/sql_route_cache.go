package cache

import (
	"calendar-transit-service/internal/domain"
	"calendar-transit-service/internal/platform/obs"
	"calendar-transit-service/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLRouteCache is a Postgres-backed cache for (origin, destination,
// mode) routing results, shared between machines running against the
// same database.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

func (s *SQLRouteCache) Get(
	ctx context.Context,
	origin string,
	destination string,
	mode domain.TravelMode,
) (_ ports.CachedRoute, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return ports.CachedRoute{}, false, errors.New("route cache: db is nil")
	}
	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return ports.CachedRoute{}, false, errors.New("get route cache: origin and destination must be non-empty")
	}

	q := `
	SELECT minutes, pessimistic_minutes
	FROM route_cache
	WHERE origin = $1 AND destination = $2 AND mode = $3;
	`

	var out ports.CachedRoute
	scanErr := s.DB.QueryRowContext(ctx, q, origin, destination, string(mode)).
		Scan(&out.Minutes, &out.PessimisticMinutes)
	if errors.Is(scanErr, sql.ErrNoRows) {
		return ports.CachedRoute{}, false, nil
	}
	if scanErr != nil {
		err = fmt.Errorf("get route cache: query route_cache table: %w", scanErr)
		return ports.CachedRoute{}, false, err
	}

	return out, true, nil
}

func (s *SQLRouteCache) Put(
	ctx context.Context,
	origin string,
	destination string,
	mode domain.TravelMode,
	r ports.CachedRoute,
) (err error) {
	defer obs.Time(ctx, "route.cache.Put")(&err)

	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return errors.New("insert route cache: origin and destination must be non-empty")
	}

	q := `
	INSERT INTO route_cache (origin, destination, mode, minutes, pessimistic_minutes)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (origin, destination, mode) DO UPDATE
	SET minutes = EXCLUDED.minutes,
		pessimistic_minutes = EXCLUDED.pessimistic_minutes;
	`

	if _, execErr := s.DB.ExecContext(ctx, q, origin, destination, string(mode), r.Minutes, r.PessimisticMinutes); execErr != nil {
		err = fmt.Errorf("insert route cache %q -> %q: %w", origin, destination, execErr)
		return err
	}

	return nil
}
