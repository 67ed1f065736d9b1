package ports

import (
	"context"

	"hub-routing-service/internal/domain"
)

// Road geometry and metrics returned by an external routing provider.
type RoadRoute struct {
	DistanceMeters  float64
	DurationSeconds float64
	Geometry        []domain.Coordinates
}

// Contract for an external road-routing service.
type RoadRouter interface {
	// Route through the ordered waypoints (at least two). Failures wrap
	// domain.ErrProviderUnavailable; an empty result wraps domain.ErrNoPathFound.
	Route(ctx context.Context, waypoints []domain.Coordinates) (RoadRoute, error)
}

// Cache for provider responses keyed by the ordered waypoint list.
type RoadRouteCache interface {
	Get(ctx context.Context, key string) (RoadRoute, bool, error)
	Put(ctx context.Context, key string, r RoadRoute) error
}
