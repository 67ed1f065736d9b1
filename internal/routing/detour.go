package routing

import (
	"hub-routing-service/internal/domain"
	"hub-routing-service/internal/geo"
	"math"
)

// Safety margins added to the incident buffer when placing a detour
// waypoint, in degrees.
const (
	BasicSafetyMarginDeg = 0.001
	OSRMSafetyMarginDeg  = 0.002

	// rejoin is only attempted when the incident sits in the first 70% of
	// the route.
	rejoinMaxFraction = 0.7
)

type vec struct{ x, y float64 }

func sub(a, b domain.Coordinates) vec { return vec{a.Lon - b.Lon, a.Lat - b.Lat} }

func (v vec) len() float64        { return math.Hypot(v.x, v.y) }
func (v vec) dot(o vec) float64   { return v.x*o.x + v.y*o.y }
func (v vec) scale(k float64) vec { return vec{v.x * k, v.y * k} }

// perp rotates 90 degrees counterclockwise.
func (v vec) perp() vec { return vec{-v.y, v.x} }

func (v vec) unit() (vec, bool) {
	l := v.len()
	if l == 0 {
		return vec{}, false
	}
	return v.scale(1 / l), true
}

func offset(c domain.Coordinates, v vec) domain.Coordinates {
	return domain.Coordinates{Lon: c.Lon + v.x, Lat: c.Lat + v.y}
}

// DetourWaypoint places a point beside the incident midpoint, perpendicular
// to the incident line, at buffer+safety degrees, on the same side as current.
// A zero-length incident line uses the route direction instead; a zero-length
// route as well falls back to due north.
func DetourWaypoint(current, end domain.Coordinates, inc *domain.Incident, safetyDeg float64) domain.Coordinates {
	mid := inc.Midpoint()

	axis, ok := sub(*inc.LineEnd, *inc.LineStart).unit()
	if !ok {
		axis, ok = sub(end, current).unit()
	}
	n := vec{0, 1}
	if ok {
		n = axis.perp()
	}

	side := 1.0
	if sub(current, mid).dot(n) < 0 {
		side = -1.0
	}
	dist := geo.MetersToDegrees(inc.BufferMeters) + safetyDeg
	return offset(mid, n.scale(side*dist))
}

// RejoinPoint returns a point back on the straight route just past the
// incident, or false when no rejoin applies: the end is too close to the
// incident, the incident lies late in the route, or the incident is too far
// from the route line.
func RejoinPoint(current, end domain.Coordinates, inc *domain.Incident, safetyDeg float64) (domain.Coordinates, bool) {
	route := sub(end, current)
	routeLen := route.len()
	u, ok := route.unit()
	if !ok {
		return domain.Coordinates{}, false
	}

	mid := inc.Midpoint()
	bufferDeg := geo.MetersToDegrees(inc.BufferMeters)
	radius := bufferDeg + safetyDeg

	toIncident := sub(mid, current)
	projection := toIncident.dot(u)
	if sub(end, mid).len() <= radius || projection >= rejoinMaxFraction*routeLen {
		return domain.Coordinates{}, false
	}

	lateral := math.Abs(toIncident.dot(u.perp()))
	sq := radius*radius - lateral*lateral
	if sq < 0 {
		return domain.Coordinates{}, false
	}
	contact := offset(current, u.scale(projection))
	rejoin := offset(contact, u.scale(math.Sqrt(sq)))

	if sub(rejoin, mid).len() <= bufferDeg {
		return domain.Coordinates{}, false
	}
	return rejoin, true
}
