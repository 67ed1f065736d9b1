package routing

import (
	"fmt"
	"hub-routing-service/internal/domain"
	"hub-routing-service/internal/geo"
	"hub-routing-service/internal/graph"
	"math"

	"github.com/google/uuid"
)

type neighborFunc func(s *graph.Snapshot, id uuid.UUID) []graph.Arc
type heuristicFunc func(id uuid.UUID) float64

// searchResult is a hub sequence from start to end and its total weight.
type searchResult struct {
	hubs     []uuid.UUID
	distance float64
}

// Dijkstra finds the minimum-weight path treating every edge as traversable
// in both directions.
func Dijkstra(s *graph.Snapshot, from, to uuid.UUID) ([]uuid.UUID, float64, error) {
	r, err := bestFirst(s, from, to, (*graph.Snapshot).Neighbors, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("dijkstra: %w", err)
	}
	return r.hubs, r.distance, nil
}

// AStar finds the minimum-weight path following edges in their stored
// direction only, guided by the great-circle distance to the target.
// The heuristic is only admissible when edge weights are not below the
// kilometer distance between their hubs.
func AStar(s *graph.Snapshot, from, to uuid.UUID) ([]uuid.UUID, float64, error) {
	target, ok := s.Hub(to)
	if !ok {
		return nil, 0, fmt.Errorf("astar: end hub %s: %w", to, domain.ErrHubNotFound)
	}
	h := func(id uuid.UUID) float64 {
		hub, _ := s.Hub(id)
		return geo.HaversineDistanceKm(hub.Location, target.Location)
	}
	r, err := bestFirst(s, from, to, (*graph.Snapshot).Out, h)
	if err != nil {
		return nil, 0, fmt.Errorf("astar: %w", err)
	}
	return r.hubs, r.distance, nil
}

// bestFirst is the shared Dijkstra/A* loop. Entries are pushed on every
// improvement and stale ones are skipped on pop.
func bestFirst(s *graph.Snapshot, from, to uuid.UUID, next neighborFunc, h heuristicFunc) (searchResult, error) {
	if !s.Has(from) {
		return searchResult{}, fmt.Errorf("start hub %s: %w", from, domain.ErrHubNotFound)
	}
	if !s.Has(to) {
		return searchResult{}, fmt.Errorf("end hub %s: %w", to, domain.ErrHubNotFound)
	}
	if from == to {
		return searchResult{hubs: []uuid.UUID{from}}, nil
	}
	if h == nil {
		h = func(uuid.UUID) float64 { return 0 }
	}

	dist := make(map[uuid.UUID]float64, s.Len())
	prev := make(map[uuid.UUID]uuid.UUID, s.Len())
	dist[from] = 0

	var f frontier
	f.push(from, 0, h(from))

	for !f.empty() {
		cur := f.pop()
		if cur.g > distance(dist, cur.node) {
			continue
		}
		if cur.node == to {
			break
		}
		for _, arc := range next(s, cur.node) {
			alt := cur.g + arc.Weight
			if alt < distance(dist, arc.To) {
				dist[arc.To] = alt
				prev[arc.To] = cur.node
				f.push(arc.To, alt, alt+h(arc.To))
			}
		}
	}

	if _, ok := prev[to]; !ok {
		return searchResult{}, fmt.Errorf("from %s to %s: %w", from, to, domain.ErrNoPathFound)
	}

	hubs := []uuid.UUID{to}
	for at := to; at != from; {
		at = prev[at]
		hubs = append(hubs, at)
	}
	for i, j := 0, len(hubs)-1; i < j; i, j = i+1, j-1 {
		hubs[i], hubs[j] = hubs[j], hubs[i]
	}
	return searchResult{hubs: hubs, distance: dist[to]}, nil
}

func distance(dist map[uuid.UUID]float64, id uuid.UUID) float64 {
	if d, ok := dist[id]; ok {
		return d
	}
	return math.Inf(1)
}
