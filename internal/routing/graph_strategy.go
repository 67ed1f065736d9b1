package routing

import (
	"context"
	"fmt"
	"hub-routing-service/internal/domain"
	"hub-routing-service/internal/graph"
	"hub-routing-service/internal/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type searchFunc func(s *graph.Snapshot, from, to uuid.UUID) ([]uuid.UUID, float64, error)

// GraphStrategy runs a search over a snapshot loaded fresh for every call.
// Rerouting loads the snapshot, removes what the incident blocks, and runs
// the same search between the stored start and end hubs.
type GraphStrategy struct {
	algorithm Algorithm
	search    searchFunc
	hubs      ports.HubProvider
	maxHubs   int
	logger    *zap.Logger
}

// NewDijkstra returns the undirected shortest-path strategy.
func NewDijkstra(hubs ports.HubProvider, maxHubs int, logger *zap.Logger) *GraphStrategy {
	return newGraphStrategy(AlgorithmDijkstra, Dijkstra, hubs, maxHubs, logger)
}

// NewAStar returns the directed heuristic strategy.
func NewAStar(hubs ports.HubProvider, maxHubs int, logger *zap.Logger) *GraphStrategy {
	return newGraphStrategy(AlgorithmAStar, AStar, hubs, maxHubs, logger)
}

func newGraphStrategy(a Algorithm, fn searchFunc, hubs ports.HubProvider, maxHubs int, logger *zap.Logger) *GraphStrategy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GraphStrategy{
		algorithm: a,
		search:    fn,
		hubs:      hubs,
		maxHubs:   maxHubs,
		logger:    logger.With(zap.String("strategy", string(a))),
	}
}

func (g *GraphStrategy) Algorithm() Algorithm { return g.algorithm }

func (g *GraphStrategy) ComputePath(ctx context.Context, start, end domain.Hub, _ domain.Constraints) (*domain.Path, error) {
	s, err := graph.Load(ctx, g.hubs, g.maxHubs)
	if err != nil {
		return nil, fmt.Errorf("%s compute path: %w", g.algorithm, err)
	}
	return g.run(s, start, end, string(g.algorithm))
}

func (g *GraphStrategy) Reroute(ctx context.Context, start, end domain.Hub, _ domain.Coordinates, inc *domain.Incident) (*domain.Path, error) {
	s, err := graph.Load(ctx, g.hubs, g.maxHubs)
	if err != nil {
		return nil, fmt.Errorf("%s reroute: %w", g.algorithm, err)
	}
	filtered, err := s.FilterForIncident(inc, start.ID, end.ID)
	if err != nil {
		return nil, fmt.Errorf("%s reroute: %w", g.algorithm, err)
	}
	g.logger.Info("snapshot filtered for incident",
		zap.Int("hubs_before", s.Len()),
		zap.Int("hubs_after", filtered.Len()),
		zap.Int("edges_before", len(s.Edges())),
		zap.Int("edges_after", len(filtered.Edges())),
	)
	return g.run(filtered, start, end, string(g.algorithm)+domain.SuffixRecalc)
}

func (g *GraphStrategy) run(s *graph.Snapshot, start, end domain.Hub, tag string) (*domain.Path, error) {
	ids, total, err := g.search(s, start.ID, end.ID)
	if err != nil {
		return nil, err
	}

	geometry := make([]domain.Coordinates, 0, len(ids))
	for _, id := range ids {
		h, _ := s.Hub(id)
		geometry = append(geometry, h.Location)
	}
	return domain.NewPath(geometry, total, tag), nil
}
