package routes

import (
	"calendar-transit-service/internal/domain"
	"calendar-transit-service/internal/ports"
	"context"
	"fmt"
	"time"
)

// MockRoute is one fixed origin->destination answer for tests.
type MockRoute struct {
	From, To string
	Minutes  int
	NoRoute  bool
}

// MockRouteProvider answers from a fixed table of routes. It fails for
// pairs it does not know, which keeps tests honest about every routing
// query the synthesizer issues.
type MockRouteProvider struct {
	m map[string]MockRoute
}

func NewMockRouteProvider(mockRoutes []MockRoute) *MockRouteProvider {
	m := make(map[string]MockRoute, len(mockRoutes))
	for _, r := range mockRoutes {
		m[r.From+"|"+r.To] = r
	}
	return &MockRouteProvider{m: m}
}

func (p *MockRouteProvider) Estimate(
	_ context.Context,
	origin string,
	destination string,
	_ *time.Time,
	forceDriving bool,
) (ports.RouteEstimate, error) {
	r, ok := p.m[origin+"|"+destination]
	if !ok {
		return ports.RouteEstimate{}, fmt.Errorf("missing route %q -> %q", origin, destination)
	}
	if r.NoRoute {
		return ports.RouteEstimate{}, ports.ErrNoRoute
	}

	mode := domain.ModeTransit
	if forceDriving {
		mode = domain.ModeDriving
	}

	return ports.RouteEstimate{Minutes: r.Minutes, Mode: mode}, nil
}
