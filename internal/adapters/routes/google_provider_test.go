package routes

import (
	"calendar-transit-service/internal/domain"
	"calendar-transit-service/internal/ports"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type routeAnswer struct {
	duration       string
	staticDuration string
	noRoute        bool
}

// fakeRoutesServer answers computeRoutes calls per travel mode and
// counts the requests it served.
func fakeRoutesServer(t *testing.T, answers map[string]routeAnswer, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		if r.Header.Get("X-Goog-Api-Key") == "" {
			t.Error("missing X-Goog-Api-Key header")
		}
		if r.Header.Get("X-Goog-FieldMask") == "" {
			t.Error("missing X-Goog-FieldMask header")
		}

		var req computeRoutesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}

		a, ok := answers[req.TravelMode]
		if !ok {
			t.Fatalf("unexpected travel mode %q", req.TravelMode)
		}

		var resp computeRoutesResponse
		if !a.noRoute {
			resp.Routes = append(resp.Routes, struct {
				Duration       string `json:"duration"`
				StaticDuration string `json:"staticDuration"`
			}{Duration: a.duration, StaticDuration: a.staticDuration})
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
}

func newTestProvider(t *testing.T, baseURL string, cache ports.RouteCache) *GoogleRoutesProvider {
	t.Helper()
	p, err := NewGoogleRoutesProvider("test-key", cache)
	if err != nil {
		t.Fatalf("NewGoogleRoutesProvider: %v", err)
	}
	p.baseURL = baseURL
	return p
}

func TestEstimateTransitDefault(t *testing.T) {
	var calls int
	srv := fakeRoutesServer(t, map[string]routeAnswer{
		"TRANSIT": {duration: "1800s"},
	}, &calls)
	defer srv.Close()

	p := newTestProvider(t, srv.URL, nil)
	est, err := p.Estimate(context.Background(), "A", "B", nil, false)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if est.Mode != domain.ModeTransit || est.Minutes != 30 {
		t.Errorf("got %+v, want 30 minutes by transit", est)
	}
	if calls != 1 {
		t.Errorf("server saw %d calls, want 1", calls)
	}
}

func TestEstimateLongTransitPrefersShorterDrive(t *testing.T) {
	var calls int
	srv := fakeRoutesServer(t, map[string]routeAnswer{
		"TRANSIT": {duration: "5400s"},                          // 90 min
		"DRIVE":   {duration: "3900s", staticDuration: "3600s"}, // 65 pessimistic, 60 best
	}, &calls)
	defer srv.Close()

	p := newTestProvider(t, srv.URL, nil)
	est, err := p.Estimate(context.Background(), "A", "B", nil, false)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if est.Mode != domain.ModeDriving {
		t.Errorf("mode = %q, want driving when it beats a long transit itinerary", est.Mode)
	}
	if est.Minutes != 60 {
		t.Errorf("minutes = %d, want 60 (65/60 stays under the blend trigger)", est.Minutes)
	}
	if est.IsBlended {
		t.Error("IsBlended set without crossing the trigger ratio")
	}
}

func TestEstimateLongTransitKeptWhenDriveNotShorter(t *testing.T) {
	var calls int
	srv := fakeRoutesServer(t, map[string]routeAnswer{
		"TRANSIT": {duration: "5400s"},                          // 90 min
		"DRIVE":   {duration: "5400s", staticDuration: "5400s"}, // also 90
	}, &calls)
	defer srv.Close()

	p := newTestProvider(t, srv.URL, nil)
	est, err := p.Estimate(context.Background(), "A", "B", nil, false)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if est.Mode != domain.ModeTransit || est.Minutes != 90 {
		t.Errorf("got %+v, want transit at 90 minutes (driving must be strictly shorter)", est)
	}
}

func TestEstimateForcedDrivingBlendsTraffic(t *testing.T) {
	var calls int
	srv := fakeRoutesServer(t, map[string]routeAnswer{
		"DRIVE": {duration: "3600s", staticDuration: "2400s"}, // 60 pessimistic, 40 best
	}, &calls)
	defer srv.Close()

	p := newTestProvider(t, srv.URL, nil)
	est, err := p.Estimate(context.Background(), "A", "B", nil, true)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if est.Mode != domain.ModeDriving {
		t.Errorf("mode = %q, want driving", est.Mode)
	}
	// 60 > 40*1.25, so blend: 40 + round(0.75 * 20) = 55.
	if est.Minutes != 55 || !est.IsBlended {
		t.Errorf("got minutes=%d blended=%v, want 55 blended", est.Minutes, est.IsBlended)
	}
	if est.BestGuessMinutes != 40 || est.PessimisticMinutes != 60 {
		t.Errorf("got best=%d pessimistic=%d, want 40/60", est.BestGuessMinutes, est.PessimisticMinutes)
	}
	if calls != 1 {
		t.Errorf("server saw %d calls, want 1 (no transit query when driving is forced)", calls)
	}
}

func TestEstimateTransitNoRouteFallsBackToDriving(t *testing.T) {
	var calls int
	srv := fakeRoutesServer(t, map[string]routeAnswer{
		"TRANSIT": {noRoute: true},
		"DRIVE":   {duration: "1200s", staticDuration: "1200s"},
	}, &calls)
	defer srv.Close()

	p := newTestProvider(t, srv.URL, nil)
	est, err := p.Estimate(context.Background(), "A", "B", nil, false)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if est.Mode != domain.ModeDriving || est.Minutes != 20 {
		t.Errorf("got %+v, want 20 minutes by driving", est)
	}
}

func TestEstimateNoRouteEitherMode(t *testing.T) {
	var calls int
	srv := fakeRoutesServer(t, map[string]routeAnswer{
		"TRANSIT": {noRoute: true},
		"DRIVE":   {noRoute: true},
	}, &calls)
	defer srv.Close()

	p := newTestProvider(t, srv.URL, nil)
	_, err := p.Estimate(context.Background(), "A", "B", nil, false)
	if !errors.Is(err, ports.ErrNoRoute) {
		t.Fatalf("err = %v, want ErrNoRoute", err)
	}
}

type memRouteCache struct {
	m    map[string]ports.CachedRoute
	puts int
}

func (c *memRouteCache) Get(_ context.Context, origin, destination string, mode domain.TravelMode) (ports.CachedRoute, bool, error) {
	r, ok := c.m[origin+"|"+destination+"|"+string(mode)]
	return r, ok, nil
}

func (c *memRouteCache) Put(_ context.Context, origin, destination string, mode domain.TravelMode, r ports.CachedRoute) error {
	c.m[origin+"|"+destination+"|"+string(mode)] = r
	c.puts++
	return nil
}

func TestEstimateCacheHitSkipsNetwork(t *testing.T) {
	var calls int
	srv := fakeRoutesServer(t, nil, &calls)
	defer srv.Close()

	cache := &memRouteCache{m: map[string]ports.CachedRoute{
		"A|B|transit": {Minutes: 30},
	}}
	p := newTestProvider(t, srv.URL, cache)

	est, err := p.Estimate(context.Background(), "A", "B", nil, false)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if est.Minutes != 30 || est.Mode != domain.ModeTransit {
		t.Errorf("got %+v, want cached 30-minute transit estimate", est)
	}
	if calls != 0 {
		t.Errorf("server saw %d calls, want 0 on a cache hit", calls)
	}
}

func TestEstimateWritesThroughToCache(t *testing.T) {
	var calls int
	srv := fakeRoutesServer(t, map[string]routeAnswer{
		"TRANSIT": {duration: "1800s"},
	}, &calls)
	defer srv.Close()

	cache := &memRouteCache{m: map[string]ports.CachedRoute{}}
	p := newTestProvider(t, srv.URL, cache)

	if _, err := p.Estimate(context.Background(), "A", "B", nil, false); err != nil {
		t.Fatalf("first Estimate: %v", err)
	}
	if cache.puts != 1 {
		t.Fatalf("cache saw %d writes, want 1", cache.puts)
	}

	if _, err := p.Estimate(context.Background(), "A", "B", nil, false); err != nil {
		t.Fatalf("second Estimate: %v", err)
	}
	if calls != 1 {
		t.Errorf("server saw %d calls, want 1 (second lookup served from cache)", calls)
	}
}

func TestEstimateNormalizesAddresses(t *testing.T) {
	var calls int
	srv := fakeRoutesServer(t, map[string]routeAnswer{
		"TRANSIT": {duration: "1800s"},
	}, &calls)
	defer srv.Close()

	cache := &memRouteCache{m: map[string]ports.CachedRoute{}}
	p := newTestProvider(t, srv.URL, cache)

	if _, err := p.Estimate(context.Background(), "  100 Main   St ", "B", nil, false); err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if _, ok := cache.m["100 Main St|B|transit"]; !ok {
		t.Errorf("cache keys = %v, want whitespace-normalized origin", keys(cache.m))
	}
}

func TestParseDurationMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"1800s", 30},
		{"1830s", 31}, // 30.5 rounds up
		{"93.5s", 2},
		{"5401.2s", 90},
		{"0s", 0},
	}
	for _, tc := range cases {
		got, err := parseDurationMinutes(tc.in)
		if err != nil {
			t.Errorf("parseDurationMinutes(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseDurationMinutes(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}

	if _, err := parseDurationMinutes("soon"); err == nil {
		t.Error("expected an error for a malformed duration")
	}
}

func keys(m map[string]ports.CachedRoute) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
