package graph

import (
	"fmt"
	"hub-routing-service/internal/domain"
	"hub-routing-service/internal/geo"

	"github.com/google/uuid"
)

// FilterForIncident returns a new snapshot without the hubs inside the
// incident buffer and without edges that touch them or whose straight segment
// intersects the incident. The start and end hubs are always kept, even when
// they lie inside the buffer.
//
// An incident without a line returns s unchanged.
func (s *Snapshot) FilterForIncident(inc *domain.Incident, startID, endID uuid.UUID) (*Snapshot, error) {
	if !inc.HasLine() {
		return s, nil
	}
	a, b := *inc.LineStart, *inc.LineEnd

	blocked, err := geo.NewHubIndex(s.hubs).WithinLineBuffer(a, b, inc.BufferMeters)
	if err != nil {
		return nil, fmt.Errorf("filter snapshot: %w", err)
	}
	excluded := make(map[uuid.UUID]struct{}, len(blocked))
	for _, id := range blocked {
		if id == startID || id == endID {
			continue
		}
		excluded[id] = struct{}{}
	}

	hubs := make([]domain.Hub, 0, len(s.hubs)-len(excluded))
	for _, h := range s.hubs {
		if _, ok := excluded[h.ID]; !ok {
			hubs = append(hubs, h)
		}
	}

	edges := make([]domain.Edge, 0, len(s.edges))
	for _, e := range s.edges {
		if _, ok := excluded[e.FromHubID]; ok {
			continue
		}
		if _, ok := excluded[e.ToHubID]; ok {
			continue
		}
		from, _ := s.Hub(e.FromHubID)
		to, _ := s.Hub(e.ToHubID)
		if geo.RouteIntersectsIncident(from.Location, to.Location, inc) {
			continue
		}
		edges = append(edges, e)
	}

	return New(hubs, edges)
}
