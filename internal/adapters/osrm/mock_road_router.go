package osrm

import (
	"context"
	"fmt"
	"hub-routing-service/internal/domain"
	"hub-routing-service/internal/ports"
	"math"
	"slices"
	"sync"
)

// MockRoadRouter answers with a straight line through the waypoints, or
// with a fixed error. It records every call.
type MockRoadRouter struct {
	mu sync.Mutex

	// MetersPerDegree scales the planar length into the reported distance.
	MetersPerDegree float64
	// SecondsPerMeter derives the reported duration.
	SecondsPerMeter float64
	Err             error

	calls [][]domain.Coordinates
}

func NewMockRoadRouter() *MockRoadRouter {
	return &MockRoadRouter{MetersPerDegree: 111000, SecondsPerMeter: 0.1}
}

func (m *MockRoadRouter) Route(_ context.Context, waypoints []domain.Coordinates) (ports.RoadRoute, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, slices.Clone(waypoints))

	if m.Err != nil {
		return ports.RoadRoute{}, m.Err
	}
	if len(waypoints) < 2 {
		return ports.RoadRoute{}, fmt.Errorf("mock route: need at least 2 waypoints, got %d", len(waypoints))
	}

	var deg float64
	for i := 1; i < len(waypoints); i++ {
		a, b := waypoints[i-1], waypoints[i]
		deg += math.Hypot(b.Lon-a.Lon, b.Lat-a.Lat)
	}
	meters := deg * m.MetersPerDegree
	return ports.RoadRoute{
		DistanceMeters:  meters,
		DurationSeconds: meters * m.SecondsPerMeter,
		Geometry:        slices.Clone(waypoints),
	}, nil
}

// Calls returns the waypoint lists received so far.
func (m *MockRoadRouter) Calls() [][]domain.Coordinates {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}
