package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the hub network, route and provider cache tables.
// The DDL is valid for both postgres and sqlite.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createHubsQuery := `
	CREATE TABLE IF NOT EXISTS hubs (
		id TEXT PRIMARY KEY,
		address TEXT NOT NULL,
		type TEXT NOT NULL,
		location TEXT NOT NULL
	);
	`

	createConnectionsQuery := `
	CREATE TABLE IF NOT EXISTS hub_connections (
		id TEXT PRIMARY KEY,
		from_hub_id TEXT NOT NULL REFERENCES hubs(id) ON DELETE CASCADE,
		to_hub_id TEXT NOT NULL REFERENCES hubs(id) ON DELETE CASCADE,
		weight DOUBLE PRECISION
	);
	`

	createConnectionsIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_hub_connections_from
	ON hub_connections(from_hub_id);
	`

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS routes (
		id TEXT PRIMARY KEY,
		parcel_id TEXT NOT NULL,
		driver_id TEXT,
		start_hub_id TEXT,
		end_hub_id TEXT,
		route_geometry TEXT NOT NULL,
		total_distance_km DOUBLE PRECISION NOT NULL,
		estimated_duration_minutes INTEGER NOT NULL,
		routing_service TEXT NOT NULL,
		waypoints TEXT NOT NULL DEFAULT '[]',
		traffic_factor DOUBLE PRECISION NOT NULL DEFAULT 1.0,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TEXT NOT NULL
	);
	`

	createRoutesIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_routes_parcel
	ON routes(parcel_id);
	`

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS road_route_cache (
		cache_key TEXT PRIMARY KEY,
		distance_meters DOUBLE PRECISION NOT NULL,
		duration_seconds DOUBLE PRECISION NOT NULL,
		geometry TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	statements := []string{
		createHubsQuery,
		createConnectionsQuery,
		createConnectionsIndexQuery,
		createRoutesQuery,
		createRoutesIndexQuery,
		createRouteCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
