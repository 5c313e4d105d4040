package ports

import (
	"calendar-transit-service/internal/domain"
	"context"
)

// CachedRoute is a stored routing result for one (origin, destination,
// mode) triple. Keys are expected to be consistent (e.g., already
// normalized) by the caller.
type CachedRoute struct {
	Minutes            int `json:"minutes"`
	PessimisticMinutes int `json:"pessimistic_minutes"`
}

// Contract for persistent caching of routing results across runs.
type RouteCache interface {
	// Get returns the cached result and whether one was present.
	Get(ctx context.Context, origin, destination string, mode domain.TravelMode) (CachedRoute, bool, error)
	// Put stores or replaces the cached result.
	Put(ctx context.Context, origin, destination string, mode domain.TravelMode, r CachedRoute) error
}
