package routing

import (
	"hub-routing-service/internal/domain"
	"hub-routing-service/internal/geo"
	"hub-routing-service/internal/ports"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func portsRoute(meters, seconds float64, geometry []domain.Coordinates) ports.RoadRoute {
	return ports.RoadRoute{DistanceMeters: meters, DurationSeconds: seconds, Geometry: geometry}
}

func TestDetourWaypointSide(t *testing.T) {
	inc := incidentLine(coords(0, 0), coords(0.02, 0), 111) // 0.001 deg buffer

	below := DetourWaypoint(coords(0.01, -0.05), coords(0.01, 0.05), inc, 0.002)
	assert.InDelta(t, 0.01, below.Lon, 1e-12)
	assert.InDelta(t, -0.003, below.Lat, 1e-12)

	above := DetourWaypoint(coords(0.01, 0.05), coords(0.01, -0.05), inc, 0.002)
	assert.InDelta(t, 0.003, above.Lat, 1e-12)
}

func TestDetourWaypointOnAxisGoesPositive(t *testing.T) {
	// current exactly on the incident line: dot product is zero
	inc := incidentLine(coords(0, 0), coords(0.02, 0), 0)
	wp := DetourWaypoint(coords(-0.01, 0), coords(0.03, 0), inc, 0.001)
	assert.InDelta(t, 0.001, wp.Lat, 1e-12)
}

func TestDetourWaypointDegenerateIncident(t *testing.T) {
	point := coords(0.01, 0.01)
	inc := incidentLine(point, point, 0)

	// route heads east: perpendicular is north/south
	wp := DetourWaypoint(coords(0, 0.005), coords(0.02, 0.005), inc, 0.001)
	assert.InDelta(t, 0.01, wp.Lon, 1e-12)
	assert.InDelta(t, 0.009, wp.Lat, 1e-12)
	assert.False(t, math.IsNaN(wp.Lon) || math.IsNaN(wp.Lat))

	// zero-length route as well
	wp = DetourWaypoint(point, point, inc, 0.001)
	assert.InDelta(t, 0.011, wp.Lat, 1e-12)
}

func TestRejoinPoint(t *testing.T) {
	// route along lat 0 eastwards, incident straddling it at 20%
	current, end := coords(0, 0), coords(0.1, 0)
	inc := incidentLine(coords(0.02, -0.0005), coords(0.02, 0.0005), 111)

	rejoin, ok := RejoinPoint(current, end, inc, 0.001)
	assert.True(t, ok)
	assert.InDelta(t, 0, rejoin.Lat, 1e-12)
	// radius 0.002, lateral 0 -> 0.002 past the contact point
	assert.InDelta(t, 0.022, rejoin.Lon, 1e-9)
	assert.Greater(t, geo.PlanarDistance(rejoin, inc.Midpoint()), geo.MetersToDegrees(inc.BufferMeters))
}

func TestRejoinPointSkipped(t *testing.T) {
	current, end := coords(0, 0), coords(0.1, 0)

	// incident late in the route
	late := incidentLine(coords(0.08, -0.0005), coords(0.08, 0.0005), 111)
	_, ok := RejoinPoint(current, end, late, 0.001)
	assert.False(t, ok)

	// end inside the detour radius
	atEnd := incidentLine(coords(0.0995, -0.0005), coords(0.0995, 0.0005), 111)
	_, ok = RejoinPoint(current, end, atEnd, 0.001)
	assert.False(t, ok)

	// incident too far off the route line for the radius
	offside := incidentLine(coords(0.02, 0.01), coords(0.03, 0.01), 111)
	_, ok = RejoinPoint(current, end, offside, 0.001)
	assert.False(t, ok)

	// zero-length route
	_, ok = RejoinPoint(current, current, late, 0.001)
	assert.False(t, ok)
}
