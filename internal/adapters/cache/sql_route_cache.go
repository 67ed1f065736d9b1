package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hub-routing-service/internal/geo"
	"hub-routing-service/internal/platform/db"
	"hub-routing-service/internal/platform/obs"
	"hub-routing-service/internal/ports"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SQLRouteCache is a SQL-backed RoadRouteCache over the road_route_cache
// table. Geometry is stored as WKT. Entries older than ttl are treated as
// misses; ttl <= 0 keeps entries forever.
type SQLRouteCache struct {
	DB      *sql.DB
	dialect db.Dialect
	ttl     time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

func NewSQLRouteCache(conn *sql.DB, driver string, ttl time.Duration, logger *zap.Logger) *SQLRouteCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLRouteCache{DB: conn, dialect: db.DialectFor(driver), ttl: ttl, logger: logger, now: time.Now}
}

func (s *SQLRouteCache) Get(ctx context.Context, key string) (_ ports.RoadRoute, _ bool, err error) {
	defer obs.Time(ctx, s.logger, "route.cache.Get")(&err)

	if s.DB == nil {
		return ports.RoadRoute{}, false, errors.New("route cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return ports.RoadRoute{}, false, errors.New("get route cache: key must not be empty")
	}

	q := s.dialect.Rebind(`
	SELECT distance_meters, duration_seconds, geometry, created_at
	FROM road_route_cache
	WHERE cache_key = ?;
	`)

	var (
		meters, seconds float64
		wkt, createdAt  string
	)
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&meters, &seconds, &wkt, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.RoadRoute{}, false, nil
	}
	if err != nil {
		return ports.RoadRoute{}, false, fmt.Errorf("get route cache: query road_route_cache table: %w", err)
	}

	if s.ttl > 0 {
		at, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return ports.RoadRoute{}, false, fmt.Errorf("get route cache: parse created_at %q: %w", createdAt, err)
		}
		if s.now().Sub(at) > s.ttl {
			return ports.RoadRoute{}, false, nil
		}
	}

	r := ports.RoadRoute{DistanceMeters: meters, DurationSeconds: seconds}
	if wkt != "" {
		r.Geometry, err = geo.ParseLineString(wkt)
		if err != nil {
			return ports.RoadRoute{}, false, fmt.Errorf("get route cache: %w", err)
		}
	}
	return r, true, nil
}

func (s *SQLRouteCache) Put(ctx context.Context, key string, r ports.RoadRoute) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert route cache: key must not be empty")
	}

	// single points are not valid linestrings; the caller falls back to the
	// straight line for those anyway
	wkt := ""
	if len(r.Geometry) >= 2 {
		wkt = geo.FormatLineString(r.Geometry)
	}

	q := s.dialect.Rebind(`
	INSERT INTO road_route_cache (cache_key, distance_meters, duration_seconds, geometry, created_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (cache_key) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds,
		geometry = EXCLUDED.geometry,
		created_at = EXCLUDED.created_at;
	`)
	createdAt := s.now().UTC().Format(time.RFC3339Nano)
	if _, err := s.DB.ExecContext(ctx, q, key, r.DistanceMeters, r.DurationSeconds, wkt, createdAt); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}
	return nil
}
