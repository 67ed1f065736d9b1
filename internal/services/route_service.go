package services

import (
	"context"
	"errors"
	"fmt"
	"hub-routing-service/internal/domain"
	"hub-routing-service/internal/platform/obs"
	"hub-routing-service/internal/ports"
	"hub-routing-service/internal/routing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CalculateRouteRequest asks for a new route. DriverID is optional; the
// other ids are required.
type CalculateRouteRequest struct {
	ParcelID    uuid.UUID
	DriverID    uuid.UUID
	StartHubID  uuid.UUID
	EndHubID    uuid.UUID
	Constraints domain.Constraints
}

func (r CalculateRouteRequest) validate() error {
	switch {
	case r.ParcelID == uuid.Nil:
		return errors.New("parcel id is required")
	case r.StartHubID == uuid.Nil:
		return errors.New("start hub id is required")
	case r.EndHubID == uuid.Nil:
		return errors.New("end hub id is required")
	}
	return nil
}

// ErrInvalidRequest marks caller input errors.
var ErrInvalidRequest = errors.New("invalid request")

// RouteService selects and runs routing strategies, persists their results
// and revises stored routes around incidents.
type RouteService struct {
	hubs       ports.HubProvider
	routes     ports.RouteRepository
	strategies Strategies
	recalc     *Recalculator
	logger     *zap.Logger
}

func NewRouteService(hubs ports.HubProvider, routes ports.RouteRepository, strategies Strategies, logger *zap.Logger) *RouteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RouteService{
		hubs:       hubs,
		routes:     routes,
		strategies: strategies,
		recalc:     NewRecalculator(hubs, strategies, logger),
		logger:     logger,
	}
}

// CalculateRoute computes, stores and returns a new route between two hubs.
func (s *RouteService) CalculateRoute(ctx context.Context, req CalculateRouteRequest) (_ *domain.Route, err error) {
	defer obs.Time(ctx, s.logger, "routes.Calculate")(&err)

	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("calculate route: %w: %v", ErrInvalidRequest, err)
	}

	start, err := s.hubs.GetHub(ctx, req.StartHubID)
	if err != nil {
		return nil, fmt.Errorf("calculate route: start hub: %w", err)
	}
	end, err := s.hubs.GetHub(ctx, req.EndHubID)
	if err != nil {
		return nil, fmt.Errorf("calculate route: end hub: %w", err)
	}

	path, err := s.ComputePath(ctx, start, end, req.Constraints)
	if err != nil {
		return nil, fmt.Errorf("calculate route: %w", err)
	}

	route := domain.NewRoute(path, req.ParcelID, uuid.NullUUID{UUID: req.DriverID, Valid: req.DriverID != uuid.Nil}, start.ID, end.ID)
	saved, err := s.routes.Save(ctx, route)
	if err != nil {
		return nil, fmt.Errorf("calculate route: save: %w", err)
	}
	return saved, nil
}

// ComputePath runs the requested strategy and, if it fails, the provider
// strategy once with the same hubs. When both fail the errors are joined.
func (s *RouteService) ComputePath(ctx context.Context, start, end domain.Hub, c domain.Constraints) (*domain.Path, error) {
	algo := routing.ParseAlgorithm(c.Algorithm)
	primary := s.strategies.For(algo)

	path, err := primary.ComputePath(ctx, start, end, c)
	if err == nil {
		return path, nil
	}
	if primary.Algorithm() == routing.AlgorithmOSRM {
		return nil, err
	}

	s.logger.Warn("strategy failed, falling back to provider",
		zap.String("req_id", obs.RequestID(ctx)),
		zap.Stringer("algorithm", algo),
		zap.Stringer("start_hub_id", start.ID),
		zap.Stringer("end_hub_id", end.ID),
		zap.Error(err),
	)

	fallback, ferr := s.strategies.Provider.ComputePath(ctx, start, end, c)
	if ferr != nil {
		return nil, errors.Join(err, fmt.Errorf("fallback: %w", ferr))
	}
	return fallback, nil
}

// RecalculateRoute revises the stored route around inc and saves it when the
// path changed.
func (s *RouteService) RecalculateRoute(ctx context.Context, id uuid.UUID, inc *domain.Incident) (_ *domain.Route, err error) {
	defer obs.Time(ctx, s.logger, "routes.RecalculateRoute")(&err)

	route, err := s.routes.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("recalculate route: %w", err)
	}

	updated, changed, err := s.recalc.Recalculate(ctx, route, inc)
	if err != nil {
		return nil, err
	}
	if !changed {
		return route, nil
	}

	saved, err := s.routes.Save(ctx, updated)
	if err != nil {
		return nil, fmt.Errorf("recalculate route: save: %w", err)
	}
	return saved, nil
}

func (s *RouteService) GetRoute(ctx context.Context, id uuid.UUID) (*domain.Route, error) {
	route, err := s.routes.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get route: %w", err)
	}
	return route, nil
}

func (s *RouteService) ListHubs(ctx context.Context) ([]domain.Hub, error) {
	hubs, err := s.hubs.ListHubs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hubs: %w", err)
	}
	return hubs, nil
}
