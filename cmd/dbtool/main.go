package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"calendar-transit-service/internal/adapters/cache"
	"calendar-transit-service/internal/platform/db"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// dbtool manages the shared Postgres route cache: schema creation and an
// optional reset when cached routing results should be discarded.
func main() {
	reset := flag.Bool("reset", false, "Drop cached routing results after ensuring the schema")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	log.Println("Initializing route cache schema...")
	if err := cache.InitSchema(pg); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if *reset {
		log.Println("Clearing cached routes...")
		if _, err := pg.Exec("TRUNCATE route_cache;"); err != nil {
			log.Fatalf("reset failed: %v", err)
		}
		log.Println("Route cache cleared.")
	}
}
