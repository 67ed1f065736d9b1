// Package graph assembles the per-request hub network used by the graph
// search strategies. A Snapshot is immutable once built and is never shared
// between requests.
package graph

import (
	"context"
	"fmt"
	"hub-routing-service/internal/domain"
	"hub-routing-service/internal/ports"
	"math"

	"github.com/google/uuid"
)

// Arc is a traversable step from one hub to another.
type Arc struct {
	To     uuid.UUID
	Weight float64
	EdgeID uuid.UUID
}

// Snapshot is an arena of hubs and edges with adjacency indexes.
//
// Out follows the stored direction only (from -> to); Undirected holds both
// directions for every edge. Edges whose endpoints are not in the snapshot
// are dropped at build time.
type Snapshot struct {
	hubs       []domain.Hub
	byID       map[uuid.UUID]int
	edges      []domain.Edge
	out        map[uuid.UUID][]Arc
	undirected map[uuid.UUID][]Arc
}

// New builds a snapshot. Negative edge weights are rejected.
func New(hubs []domain.Hub, edges []domain.Edge) (*Snapshot, error) {
	s := &Snapshot{
		hubs:       make([]domain.Hub, 0, len(hubs)),
		byID:       make(map[uuid.UUID]int, len(hubs)),
		out:        make(map[uuid.UUID][]Arc),
		undirected: make(map[uuid.UUID][]Arc),
	}
	for _, h := range hubs {
		if _, dup := s.byID[h.ID]; dup {
			continue
		}
		s.byID[h.ID] = len(s.hubs)
		s.hubs = append(s.hubs, h)
	}

	for _, e := range edges {
		w := e.Cost()
		if w < 0 || math.IsNaN(w) {
			return nil, fmt.Errorf("build snapshot: edge %s weight %v: %w", e.ID, w, domain.ErrNegativeWeight)
		}
		if !s.Has(e.FromHubID) || !s.Has(e.ToHubID) {
			continue
		}
		s.edges = append(s.edges, e)
		s.out[e.FromHubID] = append(s.out[e.FromHubID], Arc{To: e.ToHubID, Weight: w, EdgeID: e.ID})
		s.undirected[e.FromHubID] = append(s.undirected[e.FromHubID], Arc{To: e.ToHubID, Weight: w, EdgeID: e.ID})
		s.undirected[e.ToHubID] = append(s.undirected[e.ToHubID], Arc{To: e.FromHubID, Weight: w, EdgeID: e.ID})
	}
	return s, nil
}

// Load reads the full hub and edge lists from p. maxHubs <= 0 disables the
// size bound.
func Load(ctx context.Context, p ports.HubProvider, maxHubs int) (*Snapshot, error) {
	hubs, err := p.ListHubs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: list hubs: %w", err)
	}
	if maxHubs > 0 && len(hubs) > maxHubs {
		return nil, fmt.Errorf("load snapshot: %d hubs exceeds limit %d: %w", len(hubs), maxHubs, domain.ErrSnapshotTooLarge)
	}

	edges, err := p.ListEdges(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: list edges: %w", err)
	}

	s, err := New(hubs, edges)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return s, nil
}

func (s *Snapshot) Has(id uuid.UUID) bool {
	_, ok := s.byID[id]
	return ok
}

func (s *Snapshot) Hub(id uuid.UUID) (domain.Hub, bool) {
	i, ok := s.byID[id]
	if !ok {
		return domain.Hub{}, false
	}
	return s.hubs[i], true
}

// Hubs returns the hubs in load order. The slice must not be modified.
func (s *Snapshot) Hubs() []domain.Hub { return s.hubs }

// Edges returns the retained edges. The slice must not be modified.
func (s *Snapshot) Edges() []domain.Edge { return s.edges }

// Out returns the arcs leaving id in the stored direction.
func (s *Snapshot) Out(id uuid.UUID) []Arc { return s.out[id] }

// Neighbors returns the arcs touching id in either direction.
func (s *Snapshot) Neighbors(id uuid.UUID) []Arc { return s.undirected[id] }

func (s *Snapshot) Len() int { return len(s.hubs) }
