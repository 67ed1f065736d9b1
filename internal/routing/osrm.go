package routing

import (
	"context"
	"fmt"
	"hub-routing-service/internal/domain"
	"hub-routing-service/internal/ports"
	"slices"

	"go.uber.org/zap"
)

// Provider delegates to an external road router.
type Provider struct {
	router ports.RoadRouter
	logger *zap.Logger
}

func NewProvider(router ports.RoadRouter, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{router: router, logger: logger.With(zap.String("strategy", string(AlgorithmOSRM)))}
}

func (p *Provider) Algorithm() Algorithm { return AlgorithmOSRM }

func (p *Provider) ComputePath(ctx context.Context, start, end domain.Hub, _ domain.Constraints) (*domain.Path, error) {
	rr, err := p.router.Route(ctx, []domain.Coordinates{start.Location, end.Location})
	if err != nil {
		return nil, fmt.Errorf("provider compute path: %w", err)
	}
	return PathFromRoadRoute(rr, start.Location, end.Location, domain.TagOSRM), nil
}

// Reroute asks the provider for current -> detour waypoint -> end.
func (p *Provider) Reroute(ctx context.Context, _, end domain.Hub, current domain.Coordinates, inc *domain.Incident) (*domain.Path, error) {
	waypoint := DetourWaypoint(current, end.Location, inc, OSRMSafetyMarginDeg)
	p.logger.Info("detour waypoint", zap.Stringer("waypoint", waypoint))

	rr, err := p.router.Route(ctx, []domain.Coordinates{current, waypoint, end.Location})
	if err != nil {
		return nil, fmt.Errorf("provider reroute: %w", err)
	}
	return PathFromRoadRoute(rr, current, end.Location, domain.TagOSRM+domain.SuffixDetour), nil
}

// PathFromRoadRoute converts provider units: meters to kilometers and seconds
// to whole minutes (truncated). Geometry with fewer than two points is
// replaced by the straight from -> to line.
func PathFromRoadRoute(rr ports.RoadRoute, from, to domain.Coordinates, tag string) *domain.Path {
	geometry := slices.Clone(rr.Geometry)
	if len(geometry) < 2 {
		geometry = []domain.Coordinates{from, to}
	}
	return &domain.Path{
		Geometry:                 geometry,
		TotalDistance:            rr.DistanceMeters / 1000,
		EstimatedDurationMinutes: int(rr.DurationSeconds / 60),
		ServiceTag:               tag,
		Active:                   true,
	}
}
