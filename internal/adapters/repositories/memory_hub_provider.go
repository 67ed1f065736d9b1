package repositories

import (
	"context"
	"fmt"
	"hub-routing-service/internal/domain"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// In-memory implementation of the HubProvider port, used by tests and
// local runs without a database.
type MemoryHubProvider struct {
	mu    sync.RWMutex
	hubs  []domain.Hub
	edges []domain.Edge
}

func NewMemoryHubProvider(hubs []domain.Hub, edges []domain.Edge) *MemoryHubProvider {
	return &MemoryHubProvider{hubs: slices.Clone(hubs), edges: slices.Clone(edges)}
}

// AddHub appends a hub.
func (m *MemoryHubProvider) AddHub(h domain.Hub) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hubs = append(m.hubs, h)
}

// Connect adds an edge from -> to and returns it.
func (m *MemoryHubProvider) Connect(from, to uuid.UUID, weight float64) domain.Edge {
	e := domain.Edge{ID: uuid.New(), FromHubID: from, ToHubID: to, Weight: domain.Weight(weight)}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edges = append(m.edges, e)
	return e
}

func (m *MemoryHubProvider) ListHubs(_ context.Context) ([]domain.Hub, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.hubs), nil
}

func (m *MemoryHubProvider) GetHub(_ context.Context, id uuid.UUID) (domain.Hub, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, h := range m.hubs {
		if h.ID == id {
			return h, nil
		}
	}
	return domain.Hub{}, fmt.Errorf("get hub %s: %w", id, domain.ErrHubNotFound)
}

func (m *MemoryHubProvider) ListEdges(_ context.Context) ([]domain.Edge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.edges), nil
}

func (m *MemoryHubProvider) ListEdgesFrom(_ context.Context, id uuid.UUID) ([]domain.Edge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Edge
	for _, e := range m.edges {
		if e.FromHubID == id {
			out = append(out, e)
		}
	}
	return out, nil
}
