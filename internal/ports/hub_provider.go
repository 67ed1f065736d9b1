package ports

import (
	"context"
	"hub-routing-service/internal/domain"

	"github.com/google/uuid"
)

// Port: read access to the hub network used to build graph snapshots.
type HubProvider interface {
	// Return every hub.
	ListHubs(ctx context.Context) ([]domain.Hub, error)
	// Return one hub; wraps domain.ErrHubNotFound when absent.
	GetHub(ctx context.Context, id uuid.UUID) (domain.Hub, error)
	// Return every stored hub connection.
	ListEdges(ctx context.Context) ([]domain.Edge, error)
	// Return connections whose FromHubID is id.
	ListEdgesFrom(ctx context.Context, id uuid.UUID) ([]domain.Edge, error)
}
