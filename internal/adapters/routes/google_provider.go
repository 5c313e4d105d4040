package routes

import (
	"bytes"
	"calendar-transit-service/internal/domain"
	"calendar-transit-service/internal/platform/obs"
	"calendar-transit-service/internal/ports"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Transit durations above this threshold trigger a driving comparison.
const highTransitMinutes = 80

// Pessimistic driving estimates more than 25% above the best guess are
// blended toward the pessimistic value at 75% weight.
const (
	blendTriggerRatio = 1.25
	blendWeight       = 0.75
)

// GoogleRoutesProvider implements RouteEstimator against the Google Maps
// Routes API (directions/v2:computeRoutes).
//
// It coordinates:
//   - Address normalization
//   - Persistent route caching
//   - Mode selection (transit first, driving fallback above 80 minutes)
//   - Traffic-aware duration blending for driving legs
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type GoogleRoutesProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	cache   ports.RouteCache
}

// NewGoogleRoutesProvider fails when the API key is absent; that is a
// configuration error and must abort the run before any synthesis.
func NewGoogleRoutesProvider(apiKey string, cache ports.RouteCache) (*GoogleRoutesProvider, error) {
	if apiKey == "" {
		return nil, errors.New("google routes api key is empty")
	}

	return &GoogleRoutesProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://routes.googleapis.com",
		cache:   cache,
	}, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (g *GoogleRoutesProvider) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Estimate returns the travel estimate from origin to destination,
// applying the mode selection policy: transit by default, driving when
// forced or when it beats a long transit itinerary.
func (g *GoogleRoutesProvider) Estimate(
	ctx context.Context,
	origin string,
	destination string,
	departAt *time.Time,
	forceDriving bool,
) (_ ports.RouteEstimate, err error) {
	defer obs.Time(ctx, "routes.Estimate")(&err)

	normOrigin := g.normalize(origin)
	if normOrigin == "" {
		return ports.RouteEstimate{}, errors.New("estimate route: origin must be non-empty")
	}
	normDestination := g.normalize(destination)
	if normDestination == "" {
		return ports.RouteEstimate{}, errors.New("estimate route: destination must be non-empty")
	}

	if forceDriving {
		return g.drivingEstimate(ctx, normOrigin, normDestination, departAt)
	}

	transit, err := g.routeMinutes(ctx, normOrigin, normDestination, domain.ModeTransit, departAt)
	if errors.Is(err, ports.ErrNoRoute) {
		// No transit itinerary between these addresses. A driving route
		// may still exist; only fail when both modes come up empty.
		return g.drivingEstimate(ctx, normOrigin, normDestination, departAt)
	}
	if err != nil {
		return ports.RouteEstimate{}, fmt.Errorf("estimate route %q -> %q: %w", normOrigin, normDestination, err)
	}

	est := ports.RouteEstimate{
		Minutes: transit.Minutes,
		Mode:    domain.ModeTransit,
	}

	if transit.Minutes > highTransitMinutes {
		drive, derr := g.drivingEstimate(ctx, normOrigin, normDestination, departAt)
		if derr == nil && drive.Minutes < transit.Minutes {
			return drive, nil
		}
		if derr != nil && !errors.Is(derr, ports.ErrNoRoute) {
			log.Printf("driving fallback failed origin=%q dest=%q err=%v", normOrigin, normDestination, derr)
		}
	}

	return est, nil
}

// drivingEstimate fetches a traffic-aware driving duration and applies
// the pessimistic blending rule.
func (g *GoogleRoutesProvider) drivingEstimate(
	ctx context.Context,
	origin string,
	destination string,
	departAt *time.Time,
) (ports.RouteEstimate, error) {
	r, err := g.routeMinutes(ctx, origin, destination, domain.ModeDriving, departAt)
	if err != nil {
		if errors.Is(err, ports.ErrNoRoute) {
			return ports.RouteEstimate{}, err
		}
		return ports.RouteEstimate{}, fmt.Errorf("estimate driving %q -> %q: %w", origin, destination, err)
	}

	est := ports.RouteEstimate{
		Minutes:            r.Minutes,
		Mode:               domain.ModeDriving,
		BestGuessMinutes:   r.Minutes,
		PessimisticMinutes: r.PessimisticMinutes,
	}

	best := r.Minutes
	pess := r.PessimisticMinutes
	if pess > 0 && float64(pess) > float64(best)*blendTriggerRatio {
		est.Minutes = best + int(math.Round(blendWeight*float64(pess-best)))
		est.IsBlended = true
	}

	return est, nil
}

// routeMinutes resolves one (origin, destination, mode) triple, checking
// the persistent cache before issuing an external API call and writing
// through afterwards. Cache failures degrade to the network path.
func (g *GoogleRoutesProvider) routeMinutes(
	ctx context.Context,
	origin string,
	destination string,
	mode domain.TravelMode,
	departAt *time.Time,
) (ports.CachedRoute, error) {
	if g.cache != nil {
		hit, ok, err := g.cache.Get(ctx, origin, destination, mode)
		if err != nil {
			log.Printf("route cache read failed: %v", err)
		} else if ok {
			return hit, nil
		}
	}

	fetched, err := g.fetchRoute(ctx, origin, destination, mode, departAt)
	if err != nil {
		return ports.CachedRoute{}, err
	}

	if g.cache != nil {
		if err := g.cache.Put(ctx, origin, destination, mode, fetched); err != nil {
			log.Printf("route cache write failed: %v", err)
		}
	}

	return fetched, nil
}

type waypoint struct {
	Address string `json:"address"`
}

type computeRoutesRequest struct {
	Origin            waypoint `json:"origin"`
	Destination       waypoint `json:"destination"`
	TravelMode        string   `json:"travelMode"`
	RoutingPreference string   `json:"routingPreference,omitempty"`
	DepartureTime     string   `json:"departureTime,omitempty"`
}

type computeRoutesResponse struct {
	Routes []struct {
		Duration       string `json:"duration"`
		StaticDuration string `json:"staticDuration"`
	} `json:"routes"`
}

// fetchRoute calls the computeRoutes endpoint for a single pair.
//
// For driving the static duration is the best-guess estimate and the
// traffic-aware duration the pessimistic one; transit itineraries carry
// a single duration.
func (g *GoogleRoutesProvider) fetchRoute(
	ctx context.Context,
	origin string,
	destination string,
	mode domain.TravelMode,
	departAt *time.Time,
) (ports.CachedRoute, error) {
	endpoint := g.baseURL + "/directions/v2:computeRoutes"

	body := computeRoutesRequest{
		Origin:      waypoint{Address: origin},
		Destination: waypoint{Address: destination},
		TravelMode:  "TRANSIT",
	}
	if mode == domain.ModeDriving {
		body.TravelMode = "DRIVE"
		body.RoutingPreference = "TRAFFIC_AWARE_OPTIMAL"
	}
	if departAt != nil && departAt.After(time.Now()) {
		body.DepartureTime = departAt.UTC().Format(time.RFC3339)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return ports.CachedRoute{}, fmt.Errorf("marshal routes request: %w", err)
	}

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		return g.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return ports.CachedRoute{}, fmt.Errorf("routes request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded computeRoutesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.CachedRoute{}, fmt.Errorf("decode routes response: %w", err)
	}

	if len(decoded.Routes) == 0 {
		return ports.CachedRoute{}, ports.ErrNoRoute
	}

	route := decoded.Routes[0]
	durationMin, err := parseDurationMinutes(route.Duration)
	if err != nil {
		return ports.CachedRoute{}, fmt.Errorf("parse duration %q: %w", route.Duration, err)
	}

	out := ports.CachedRoute{Minutes: durationMin}
	if mode == domain.ModeDriving {
		// The traffic-aware duration is the pessimistic estimate; the
		// static duration (when present) is the best guess.
		out.PessimisticMinutes = durationMin
		if route.StaticDuration != "" {
			staticMin, err := parseDurationMinutes(route.StaticDuration)
			if err != nil {
				return ports.CachedRoute{}, fmt.Errorf("parse static duration %q: %w", route.StaticDuration, err)
			}
			out.Minutes = staticMin
		}
	}

	return out, nil
}

// parseDurationMinutes converts the API's duration strings to whole
// minutes, rounded. Durations arrive as seconds with an "s" suffix and
// may carry a fractional part ("1234s", "93.5s").
func parseDurationMinutes(s string) (int, error) {
	seconds, err := strconv.ParseFloat(strings.TrimSuffix(s, "s"), 64)
	if err != nil {
		return 0, err
	}
	return int(math.Round(seconds / 60)), nil
}
