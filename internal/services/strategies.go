package services

import (
	"hub-routing-service/internal/ports"
	"hub-routing-service/internal/routing"

	"go.uber.org/zap"
)

// Strategies holds one instance of each routing strategy.
type Strategies struct {
	Basic    routing.Strategy
	Dijkstra routing.Strategy
	AStar    routing.Strategy
	Provider routing.Strategy
}

// NewStrategies builds the standard set over a hub provider and road router.
func NewStrategies(hubs ports.HubProvider, router ports.RoadRouter, maxHubs int, logger *zap.Logger) Strategies {
	return Strategies{
		Basic:    routing.NewBasic(logger),
		Dijkstra: routing.NewDijkstra(hubs, maxHubs, logger),
		AStar:    routing.NewAStar(hubs, maxHubs, logger),
		Provider: routing.NewProvider(router, logger),
	}
}

// For selects the strategy for a. Unknown algorithms map to the provider.
func (s Strategies) For(a routing.Algorithm) routing.Strategy {
	switch a {
	case routing.AlgorithmBasic:
		return s.Basic
	case routing.AlgorithmDijkstra:
		return s.Dijkstra
	case routing.AlgorithmAStar:
		return s.AStar
	default:
		return s.Provider
	}
}
