package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hub-routing-service/internal/domain"
	"hub-routing-service/internal/geo"
	"hub-routing-service/internal/platform/db"
	"hub-routing-service/internal/platform/obs"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SQL-backed implementation of the RouteRepository port. Geometry is stored
// as WKT LINESTRING text.
type SQLRouteRepository struct {
	DB      *sql.DB
	dialect db.Dialect
	logger  *zap.Logger
	now     func() time.Time
}

func NewSQLRouteRepository(conn *sql.DB, driver string, logger *zap.Logger) *SQLRouteRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLRouteRepository{DB: conn, dialect: db.DialectFor(driver), logger: logger, now: time.Now}
}

// Save upserts r by id, assigning an id and creation time on first save.
func (s *SQLRouteRepository) Save(ctx context.Context, r *domain.Route) (_ *domain.Route, err error) {
	defer obs.Time(ctx, s.logger, "routes.Save")(&err)

	if s.DB == nil {
		return nil, errors.New("sql route repository: DB is nil")
	}
	if r == nil {
		return nil, errors.New("save route: route is nil")
	}
	if len(r.Geometry) < 2 {
		return nil, fmt.Errorf("save route: %w: geometry has %d points", domain.ErrInvalidGeometry, len(r.Geometry))
	}

	stored := r.Clone()
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.now().UTC()
	}
	if stored.Waypoints == "" {
		stored.Waypoints = "[]"
	}

	query := s.dialect.Rebind(`
	INSERT INTO routes (
		id, parcel_id, driver_id, start_hub_id, end_hub_id,
		route_geometry, total_distance_km, estimated_duration_minutes, routing_service,
		waypoints, traffic_factor, active, created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE
	SET route_geometry = EXCLUDED.route_geometry,
		total_distance_km = EXCLUDED.total_distance_km,
		estimated_duration_minutes = EXCLUDED.estimated_duration_minutes,
		routing_service = EXCLUDED.routing_service,
		waypoints = EXCLUDED.waypoints,
		traffic_factor = EXCLUDED.traffic_factor,
		active = EXCLUDED.active;
	`)

	_, err = s.DB.ExecContext(ctx, query,
		stored.ID.String(),
		stored.ParcelID.String(),
		stored.DriverID,
		stored.StartHubID,
		stored.EndHubID,
		geo.FormatLineString(stored.Geometry),
		stored.TotalDistance,
		stored.EstimatedDurationMinutes,
		stored.ServiceTag,
		stored.Waypoints,
		stored.TrafficFactor,
		stored.Active,
		stored.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("save route id=%s: %w", stored.ID, err)
	}
	return stored, nil
}

func (s *SQLRouteRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Route, error) {
	if s.DB == nil {
		return nil, errors.New("sql route repository: DB is nil")
	}

	query := s.dialect.Rebind(`
	SELECT
		id, parcel_id, driver_id, start_hub_id, end_hub_id,
		route_geometry, total_distance_km, estimated_duration_minutes, routing_service,
		waypoints, traffic_factor, active, created_at
	FROM routes
	WHERE id = ?;
	`)

	var (
		r              domain.Route
		wkt, createdAt string
	)
	err := s.DB.QueryRowContext(ctx, query, id.String()).Scan(
		&r.ID, &r.ParcelID, &r.DriverID, &r.StartHubID, &r.EndHubID,
		&wkt, &r.TotalDistance, &r.EstimatedDurationMinutes, &r.ServiceTag,
		&r.Waypoints, &r.TrafficFactor, &r.Active, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find route %s: %w", id, domain.ErrRouteNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find route %s: %w", id, err)
	}

	if r.Geometry, err = geo.ParseLineString(wkt); err != nil {
		return nil, fmt.Errorf("find route %s: %w", id, err)
	}
	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("find route %s: parse created_at %q: %w", id, createdAt, err)
	}
	return &r, nil
}
