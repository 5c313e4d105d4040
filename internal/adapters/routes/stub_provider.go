package routes

import (
	"calendar-transit-service/internal/domain"
	"calendar-transit-service/internal/ports"
	"context"
	"time"
)

// StubRouteProvider is the deterministic fixed-duration routing backend.
// Every query succeeds with the same duration, which makes dry runs and
// tests reproducible without network access or credentials.
type StubRouteProvider struct {
	// Minutes is the fixed duration; 30 when zero.
	Minutes int
}

func (p StubRouteProvider) Estimate(
	_ context.Context,
	_ string,
	_ string,
	_ *time.Time,
	forceDriving bool,
) (ports.RouteEstimate, error) {
	minutes := p.Minutes
	if minutes == 0 {
		minutes = 30
	}

	mode := domain.ModeTransit
	if forceDriving {
		mode = domain.ModeDriving
	}

	return ports.RouteEstimate{
		Minutes: minutes,
		Mode:    mode,
		IsStub:  true,
	}, nil
}
