package repositories

import (
	"context"
	"errors"
	"fmt"
	"hub-routing-service/internal/domain"
	"sync"
	"time"

	"github.com/google/uuid"
)

// In-memory implementation of the RouteRepository port.
type MemoryRouteRepository struct {
	mu     sync.RWMutex
	routes map[uuid.UUID]*domain.Route
	now    func() time.Time
}

func NewMemoryRouteRepository() *MemoryRouteRepository {
	return &MemoryRouteRepository{
		routes: make(map[uuid.UUID]*domain.Route),
		now:    time.Now,
	}
}

func (m *MemoryRouteRepository) Save(_ context.Context, r *domain.Route) (*domain.Route, error) {
	if r == nil {
		return nil, errors.New("save route: route is nil")
	}
	stored := r.Clone()
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = m.now().UTC()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[stored.ID] = stored
	return stored.Clone(), nil
}

func (m *MemoryRouteRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.Route, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.routes[id]
	if !ok {
		return nil, fmt.Errorf("find route %s: %w", id, domain.ErrRouteNotFound)
	}
	return r.Clone(), nil
}

// Len is the number of stored routes.
func (m *MemoryRouteRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.routes)
}
