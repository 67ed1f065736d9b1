package services

import (
	"context"
	"errors"
	"fmt"
	"hub-routing-service/internal/domain"
	"hub-routing-service/internal/geo"
	"hub-routing-service/internal/platform/obs"
	"hub-routing-service/internal/ports"
	"hub-routing-service/internal/routing"

	"go.uber.org/zap"
)

// Recalculator revises a stored route around an incident.
//
// The route is left untouched when it has no stored hub endpoints, when the
// incident has no line, when the straight line from the driver's current
// position to the end hub does not meet the incident, or when the road
// provider is unavailable for a detour. Otherwise the strategy that produced
// the route reroutes it and only the path fields change.
type Recalculator struct {
	hubs       ports.HubProvider
	strategies Strategies
	logger     *zap.Logger
}

func NewRecalculator(hubs ports.HubProvider, strategies Strategies, logger *zap.Logger) *Recalculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recalculator{hubs: hubs, strategies: strategies, logger: logger}
}

// Recalculate returns the revised route and whether anything changed. The
// input route is never modified.
func (r *Recalculator) Recalculate(ctx context.Context, route *domain.Route, inc *domain.Incident) (_ *domain.Route, changed bool, err error) {
	defer obs.Time(ctx, r.logger, "routes.Recalculate")(&err)

	if route == nil {
		return nil, false, errors.New("recalculate: route is nil")
	}
	if err := inc.Validate(); err != nil {
		return nil, false, fmt.Errorf("recalculate route %s: %w", route.ID, err)
	}

	log := r.logger.With(
		zap.String("req_id", obs.RequestID(ctx)),
		zap.Stringer("route_id", route.ID),
		zap.String("routing_service", route.ServiceTag),
	)

	if !route.HasEndpoints() {
		log.Info("recalculation skipped", zap.Error(domain.ErrInsufficientRouteContext))
		return route, false, nil
	}
	if !inc.HasLine() {
		log.Info("recalculation skipped: incident has no line")
		return route, false, nil
	}
	current, ok := route.CurrentPosition()
	if !ok {
		log.Info("recalculation skipped: route has no geometry")
		return route, false, nil
	}

	start, err := r.hubs.GetHub(ctx, route.StartHubID.UUID)
	if err != nil {
		return nil, false, fmt.Errorf("recalculate route %s: start hub: %w", route.ID, err)
	}
	end, err := r.hubs.GetHub(ctx, route.EndHubID.UUID)
	if err != nil {
		return nil, false, fmt.Errorf("recalculate route %s: end hub: %w", route.ID, err)
	}

	if !geo.RouteIntersectsIncident(current, end.Location, inc) {
		log.Info("route clear of incident, no recalculation needed")
		return route, false, nil
	}

	algo := routing.AlgorithmForTag(route.ServiceTag)
	log.Info("route intersects incident, rerouting", zap.Stringer("algorithm", algo))

	path, err := r.strategies.For(algo).Reroute(ctx, start, end, current, inc)
	if errors.Is(err, domain.ErrProviderUnavailable) {
		log.Warn("provider unavailable, keeping current route", zap.Error(err))
		return route, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("recalculate route %s: %w", route.ID, err)
	}

	updated := route.Clone()
	updated.ApplyPath(path)
	return updated, true, nil
}
