package routing

import (
	"context"
	"hub-routing-service/internal/domain"
	"hub-routing-service/internal/geo"

	"go.uber.org/zap"
)

// Basic draws a straight line between hubs. Distances are planar in degree
// space.
type Basic struct {
	logger *zap.Logger
}

func NewBasic(logger *zap.Logger) *Basic {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Basic{logger: logger.With(zap.String("strategy", string(AlgorithmBasic)))}
}

func (b *Basic) Algorithm() Algorithm { return AlgorithmBasic }

func (b *Basic) ComputePath(_ context.Context, start, end domain.Hub, _ domain.Constraints) (*domain.Path, error) {
	if err := start.Location.Validate(); err != nil {
		return nil, err
	}
	if err := end.Location.Validate(); err != nil {
		return nil, err
	}
	geometry := []domain.Coordinates{start.Location, end.Location}
	return domain.NewPath(geometry, geo.PlanarDistance(start.Location, end.Location), domain.TagBasic), nil
}

// Reroute goes current -> detour waypoint -> [rejoin point] -> end, all
// straight segments.
func (b *Basic) Reroute(_ context.Context, _, end domain.Hub, current domain.Coordinates, inc *domain.Incident) (*domain.Path, error) {
	to := end.Location
	waypoint := DetourWaypoint(current, to, inc, BasicSafetyMarginDeg)

	geometry := []domain.Coordinates{current, waypoint}
	if rejoin, ok := RejoinPoint(current, to, inc, BasicSafetyMarginDeg); ok {
		geometry = append(geometry, rejoin)
	}
	geometry = append(geometry, to)

	b.logger.Info("detour planned",
		zap.Stringer("waypoint", waypoint),
		zap.Int("points", len(geometry)),
	)

	var total float64
	for i := 1; i < len(geometry); i++ {
		total += geo.PlanarDistance(geometry[i-1], geometry[i])
	}
	return domain.NewPath(geometry, total, domain.TagBasic+domain.SuffixDetour), nil
}
