package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"calendar-transit-service/internal/adapters/cache"
	gc "calendar-transit-service/internal/adapters/calendar"
	"calendar-transit-service/internal/adapters/output"
	"calendar-transit-service/internal/adapters/routes"
	"calendar-transit-service/internal/config"
	"calendar-transit-service/internal/platform/db"
	"calendar-transit-service/internal/platform/obs"
	"calendar-transit-service/internal/ports"
	"calendar-transit-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

type flags struct {
	configPath string
	days       int
	execute    bool
	drive      bool
	noTrips    bool
	stub       bool
	icsPath    string
	outPath    string
}

func parseFlags() flags {
	var f flags

	flag.StringVar(&f.configPath, "config", "config.yaml", "Path to YAML config file")
	flag.IntVar(&f.days, "days", 7, "Number of days forward to process")
	flag.BoolVar(&f.execute, "execute", false, "Actually create calendar events (default is dry-run)")
	flag.BoolVar(&f.drive, "drive", false, "Force driving mode for every leg")
	flag.BoolVar(&f.noTrips, "no-trips", false, "Disable trip-date detection")
	flag.BoolVar(&f.stub, "stub", false, "Use the fixed-duration routing stub instead of the live backend")
	flag.StringVar(&f.icsPath, "ics", "", "Read appointments from an ICS file instead of Google Calendar")
	flag.StringVar(&f.outPath, "out", "dry_run_output.json", "Dry-run output file")

	flag.Parse()
	return f
}

// main is the application composition root.
// It wires concrete adapters (Google Calendar, Routes API, route caches)
// behind ports and runs one synthesis pass.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	f := parseFlags()
	if f.days < 1 {
		log.Fatal("-days must be at least 1")
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		log.Fatal(err)
	}

	runID := time.Now().UTC().Format("20060102T150405Z")
	ctx := context.WithValue(context.Background(), obs.RunIDKey, runID)

	routeCache, closeCache, err := openRouteCache()
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()

	estimator, err := newEstimator(f.stub, routeCache)
	if err != nil {
		log.Fatal(err)
	}

	source, sink, err := newCalendar(ctx, cfg, f)
	if err != nil {
		log.Fatal(err)
	}

	now := time.Now()
	appts, err := source.ListAppointments(ctx, now, now.AddDate(0, 0, f.days))
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("fetched appointments count=%d days=%d run_id=%s", len(appts), f.days, runID)
	if len(appts) == 0 {
		log.Println("No appointments found. Nothing to do.")
		return
	}

	synth := services.Synthesizer{Estimator: estimator, Config: cfg}
	legs, err := synth.Synthesize(ctx, services.SynthesizeRequest{
		Appointments: appts,
		DetectTrips:  !f.noTrips,
		ForceDriving: f.drive,
	})
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("synthesis complete legs=%d", len(legs))
	if len(legs) == 0 {
		log.Println("No travel legs needed.")
		return
	}

	if !f.execute {
		if err := output.WriteDryRun(f.outPath, legs); err != nil {
			log.Fatal(err)
		}
		log.Printf("dry run written path=%q legs=%d", f.outPath, len(legs))
		fmt.Printf("Review %s, then run with -execute to create events.\n", f.outPath)
		return
	}

	inserted := 0
	for _, leg := range legs {
		if err := sink.InsertLeg(ctx, leg); err != nil {
			log.Printf("insert failed summary=%q err=%v", leg.Title(), err)
			continue
		}
		inserted++
	}
	log.Printf("run complete inserted=%d skipped=%d", inserted, len(legs)-inserted)
}

// openRouteCache picks the cache backend from the environment: Postgres
// when DATABASE_URL is set, Redis when REDIS_ADDR is set, otherwise a
// local SQLite file.
func openRouteCache() (ports.RouteCache, func(), error) {
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		return cache.NewSQLRouteCache(pg), func() { pg.Close() }, nil
	}

	if addr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(addr) != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		return cache.NewRedisRouteCache(client), func() { client.Close() }, nil
	}

	path := config.Get("CACHE_PATH", "data/routes.db")
	sqlite, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, fmt.Errorf("open route cache %q: %w", path, err)
	}
	if err := cache.InitSchema(sqlite); err != nil {
		sqlite.Close()
		return nil, nil, err
	}
	return cache.NewSqliteRouteCache(sqlite), func() { sqlite.Close() }, nil
}

func newEstimator(stub bool, routeCache ports.RouteCache) (ports.RouteEstimator, error) {
	if stub {
		return routes.StubRouteProvider{}, nil
	}

	apiKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GOOGLE_MAPS_API_KEY is required (or pass -stub)")
	}
	return routes.NewGoogleRoutesProvider(apiKey, routeCache)
}

func newCalendar(ctx context.Context, cfg *config.Config, f flags) (ports.AppointmentSource, ports.AppointmentSink, error) {
	if f.icsPath != "" {
		if f.execute {
			return nil, nil, fmt.Errorf("-execute requires the Google Calendar source, not -ics")
		}
		return gc.NewICSSource(f.icsPath, cfg), nil, nil
	}

	credentialsPath := config.Get("CREDENTIALS_FILE", "credentials.json")
	tokenPath := config.Get("TOKEN_FILE", "token.json")

	client, err := gc.NewOAuthClient(ctx, credentialsPath, tokenPath)
	if err != nil {
		return nil, nil, err
	}
	svc, err := gc.NewService(ctx, client)
	if err != nil {
		return nil, nil, err
	}

	cal := gc.NewGoogleCalendar(svc, cfg)
	return cal, cal, nil
}
