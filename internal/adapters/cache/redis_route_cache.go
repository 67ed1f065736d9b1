package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hub-routing-service/internal/domain"
	"hub-routing-service/internal/ports"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "osrm:route:"

// RedisRouteCache stores provider responses in Redis as JSON with a TTL.
type RedisRouteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRouteCache(rdb *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{rdb: rdb, ttl: ttl}
}

type redisRoute struct {
	DistanceMeters  float64      `json:"distance_m"`
	DurationSeconds float64      `json:"duration_s"`
	Coordinates     [][2]float64 `json:"coordinates"`
}

func (c *RedisRouteCache) Get(ctx context.Context, key string) (ports.RoadRoute, bool, error) {
	b, err := c.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.RoadRoute{}, false, nil
	}
	if err != nil {
		return ports.RoadRoute{}, false, fmt.Errorf("redis route cache get %q: %w", key, err)
	}

	var v redisRoute
	if err := json.Unmarshal(b, &v); err != nil {
		return ports.RoadRoute{}, false, fmt.Errorf("redis route cache decode %q: %w", key, err)
	}

	geometry := make([]domain.Coordinates, 0, len(v.Coordinates))
	for _, p := range v.Coordinates {
		geometry = append(geometry, domain.Coordinates{Lon: p[0], Lat: p[1]})
	}
	return ports.RoadRoute{
		DistanceMeters:  v.DistanceMeters,
		DurationSeconds: v.DurationSeconds,
		Geometry:        geometry,
	}, true, nil
}

func (c *RedisRouteCache) Put(ctx context.Context, key string, r ports.RoadRoute) error {
	v := redisRoute{
		DistanceMeters:  r.DistanceMeters,
		DurationSeconds: r.DurationSeconds,
		Coordinates:     make([][2]float64, 0, len(r.Geometry)),
	}
	for _, p := range r.Geometry {
		v.Coordinates = append(v.Coordinates, [2]float64{p.Lon, p.Lat})
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("redis route cache encode %q: %w", key, err)
	}
	if err := c.rdb.Set(ctx, redisKeyPrefix+key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis route cache set %q: %w", key, err)
	}
	return nil
}
