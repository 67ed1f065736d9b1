// Package routing implements the interchangeable path computation strategies:
// a straight-line Basic strategy, Dijkstra and A* over the hub graph, and an
// external road-routing provider. Each strategy also knows how to reroute
// around an incident.
package routing

import (
	"context"
	"hub-routing-service/internal/domain"
	"strings"
)

// Algorithm selects a strategy. The values double as service tags.
type Algorithm string

const (
	AlgorithmBasic    Algorithm = domain.TagBasic
	AlgorithmDijkstra Algorithm = domain.TagDijkstra
	AlgorithmAStar    Algorithm = domain.TagAStar
	AlgorithmOSRM     Algorithm = domain.TagOSRM
)

// ParseAlgorithm maps a requested name to an algorithm, case-insensitively.
// An empty name is BASIC; any unrecognised name is the provider.
func ParseAlgorithm(name string) Algorithm {
	switch Algorithm(strings.ToUpper(strings.TrimSpace(name))) {
	case "", AlgorithmBasic:
		return AlgorithmBasic
	case AlgorithmDijkstra:
		return AlgorithmDijkstra
	case AlgorithmAStar:
		return AlgorithmAStar
	default:
		return AlgorithmOSRM
	}
}

// AlgorithmForTag recovers the algorithm that produced a stored service tag,
// ignoring any recalculation or detour suffix.
func AlgorithmForTag(tag string) Algorithm {
	return ParseAlgorithm(domain.BaseServiceTag(tag))
}

// GraphSearch reports whether the algorithm searches the hub graph.
func (a Algorithm) GraphSearch() bool {
	return a == AlgorithmDijkstra || a == AlgorithmAStar
}

func (a Algorithm) String() string { return string(a) }

// Strategy computes paths between hubs.
type Strategy interface {
	Algorithm() Algorithm

	// ComputePath returns a path of at least two points from start to end.
	// Unreachable destinations wrap domain.ErrNoPathFound.
	ComputePath(ctx context.Context, start, end domain.Hub, c domain.Constraints) (*domain.Path, error)

	// Reroute returns a replacement path avoiding inc. current is the
	// driver's position, i.e. the first point of the stored geometry.
	// Callers have already established that the route intersects inc.
	Reroute(ctx context.Context, start, end domain.Hub, current domain.Coordinates, inc *domain.Incident) (*domain.Path, error)
}
