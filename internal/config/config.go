// Package config reads service settings from the environment.
package config

import (
	"fmt"
	"hub-routing-service/internal/platform/db"
	"os"
	"strconv"
	"strings"
	"time"
)

// Route cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheSQL    = "sql"
	CacheNone   = "none"
)

const (
	DefaultOSRMBaseURL = "http://router.project-osrm.org/route/v1/driving"
	DefaultOSRMTimeout = 10 * time.Second
)

type Config struct {
	Port     string
	Env      string
	DBDriver string
	// DatabaseURL is a postgres DSN for pgx or a file path / URI for sqlite.
	DatabaseURL string
	SeedPath    string

	OSRMBaseURL string
	OSRMTimeout time.Duration

	RouteCache     string
	RouteCacheSize int
	RouteCacheTTL  time.Duration
	RedisAddr      string

	MaxSnapshotHubs int
}

// Get returns the trimmed value of key, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads every setting, applying defaults. Malformed numbers, durations
// or enum values are reported with the offending key.
func Load() (Config, error) {
	c := Config{
		Port:        Get("PORT", "8080"),
		Env:         Get("APP_ENV", "production"),
		DBDriver:    strings.ToLower(Get("DB_DRIVER", db.DriverSQLite)),
		DatabaseURL: Get("DATABASE_URL", "file:data/routes.db"),
		SeedPath:    Get("SEED_PATH", ""),
		OSRMBaseURL: Get("OSRM_BASE_URL", DefaultOSRMBaseURL),
		RouteCache:  strings.ToLower(Get("ROUTE_CACHE", CacheMemory)),
		RedisAddr:   Get("REDIS_ADDR", "localhost:6379"),
	}

	var err error
	if c.OSRMTimeout, err = duration("OSRM_TIMEOUT", DefaultOSRMTimeout); err != nil {
		return Config{}, err
	}
	if c.RouteCacheTTL, err = duration("ROUTE_CACHE_TTL", time.Hour); err != nil {
		return Config{}, err
	}
	if c.RouteCacheSize, err = positiveInt("ROUTE_CACHE_SIZE", 1024); err != nil {
		return Config{}, err
	}
	if c.MaxSnapshotHubs, err = positiveInt("MAX_SNAPSHOT_HUBS", 10000); err != nil {
		return Config{}, err
	}

	switch c.DBDriver {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return Config{}, fmt.Errorf("config: DB_DRIVER %q: want %q or %q", c.DBDriver, db.DriverPostgres, db.DriverSQLite)
	}
	switch c.RouteCache {
	case CacheMemory, CacheRedis, CacheSQL, CacheNone:
	default:
		return Config{}, fmt.Errorf("config: ROUTE_CACHE %q: want memory, redis, sql or none", c.RouteCache)
	}
	return c, nil
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s: must be positive, got %s", key, raw)
	}
	return d, nil
}

func positiveInt(key string, fallback int) (int, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("config: %s: must be positive, got %d", key, n)
	}
	return n, nil
}
