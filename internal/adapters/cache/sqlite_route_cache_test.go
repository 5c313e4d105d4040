package cache

import (
	"calendar-transit-service/internal/domain"
	"calendar-transit-service/internal/ports"
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func TestSqliteRouteCacheRoundTrip(t *testing.T) {
	c := NewSqliteRouteCache(openTestDB(t))
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "A", "B", domain.ModeTransit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected miss on empty cache")
	}

	want := ports.CachedRoute{Minutes: 25, PessimisticMinutes: 40}
	if err := c.Put(ctx, "A", "B", domain.ModeDriving, want); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(ctx, "A", "B", domain.ModeDriving)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || got != want {
		t.Fatalf("got %+v ok=%v, want %+v", got, ok, want)
	}

	// Same pair, different mode: still a miss.
	if _, ok, _ := c.Get(ctx, "A", "B", domain.ModeTransit); ok {
		t.Fatal("transit entry should not exist")
	}

	// Replacement keeps a single row per key.
	updated := ports.CachedRoute{Minutes: 30, PessimisticMinutes: 45}
	if err := c.Put(ctx, "A", "B", domain.ModeDriving, updated); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, _, _ = c.Get(ctx, "A", "B", domain.ModeDriving)
	if got != updated {
		t.Fatalf("after replace got %+v, want %+v", got, updated)
	}
}

func TestSqliteRouteCacheRejectsEmptyKeys(t *testing.T) {
	c := NewSqliteRouteCache(openTestDB(t))
	ctx := context.Background()

	if _, _, err := c.Get(ctx, "", "B", domain.ModeTransit); err == nil {
		t.Error("expected error for empty origin")
	}
	if err := c.Put(ctx, "A", " ", domain.ModeTransit, ports.CachedRoute{Minutes: 10}); err == nil {
		t.Error("expected error for empty destination")
	}
}
