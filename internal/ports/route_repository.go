package ports

import (
	"context"
	"hub-routing-service/internal/domain"

	"github.com/google/uuid"
)

// Port: persistence sink for computed routes.
type RouteRepository interface {
	// Insert or update r. A route with a nil ID gets a fresh one and a
	// CreatedAt timestamp on first save.
	Save(ctx context.Context, r *domain.Route) (*domain.Route, error)
	// Wraps domain.ErrRouteNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Route, error)
}
