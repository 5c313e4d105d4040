package cache

import (
	"calendar-transit-service/internal/domain"
	"calendar-transit-service/internal/ports"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Routing results change slowly; a week keeps the cache useful across
// daily runs without letting stale estimates live forever.
const redisRouteTTL = 7 * 24 * time.Hour

// RedisRouteCache stores routing results in Redis, for setups where the
// planner runs on several machines against one cache.
type RedisRouteCache struct {
	Client *redis.Client
}

func NewRedisRouteCache(client *redis.Client) *RedisRouteCache {
	return &RedisRouteCache{Client: client}
}

func routeKey(origin, destination string, mode domain.TravelMode) string {
	return "route:" + origin + "|" + destination + "|" + string(mode)
}

func (c *RedisRouteCache) Get(
	ctx context.Context,
	origin string,
	destination string,
	mode domain.TravelMode,
) (ports.CachedRoute, bool, error) {
	if c.Client == nil {
		return ports.CachedRoute{}, false, errors.New("route cache: redis client is nil")
	}
	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return ports.CachedRoute{}, false, errors.New("get route cache: origin and destination must be non-empty")
	}

	raw, err := c.Client.Get(ctx, routeKey(origin, destination, mode)).Result()
	if errors.Is(err, redis.Nil) {
		return ports.CachedRoute{}, false, nil
	}
	if err != nil {
		return ports.CachedRoute{}, false, fmt.Errorf("get route cache: %w", err)
	}

	var out ports.CachedRoute
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return ports.CachedRoute{}, false, fmt.Errorf("get route cache: decode value: %w", err)
	}

	return out, true, nil
}

func (c *RedisRouteCache) Put(
	ctx context.Context,
	origin string,
	destination string,
	mode domain.TravelMode,
	r ports.CachedRoute,
) error {
	if c.Client == nil {
		return errors.New("route cache: redis client is nil")
	}
	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return errors.New("insert route cache: origin and destination must be non-empty")
	}

	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("insert route cache: encode value: %w", err)
	}

	if err := c.Client.Set(ctx, routeKey(origin, destination, mode), raw, redisRouteTTL).Err(); err != nil {
		return fmt.Errorf("insert route cache %q -> %q: %w", origin, destination, err)
	}

	return nil
}
