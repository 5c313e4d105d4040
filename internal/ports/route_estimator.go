package ports

import (
	"calendar-transit-service/internal/domain"
	"context"
	"errors"
	"time"
)

// ErrNoRoute reports that the routing backend found no itinerary between
// two addresses. Callers skip the affected leg and continue.
var ErrNoRoute = errors.New("no route found")

// RouteEstimate is the outcome of a single origin->destination routing query.
type RouteEstimate struct {
	// Minutes is the duration to use for the leg, after mode selection
	// and any traffic blending.
	Minutes int
	Mode    domain.TravelMode
	// BestGuessMinutes and PessimisticMinutes are the raw traffic-aware
	// estimates when available (driving only); zero otherwise.
	BestGuessMinutes   int
	PessimisticMinutes int
	// IsBlended is true when Minutes was blended toward the pessimistic
	// estimate.
	IsBlended bool
	// IsStub is true when the estimate came from the fixed-duration fake.
	IsStub bool
}

// Contract for obtaining a travel duration and mode between two locations.
type RouteEstimator interface {
	// Estimate returns the travel estimate from origin to destination,
	// departing at departAt (nil means "no traffic awareness"). When
	// forceDriving is set the backend must not consider transit.
	Estimate(ctx context.Context, origin, destination string, departAt *time.Time, forceDriving bool) (RouteEstimate, error)
}
