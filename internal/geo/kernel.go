// Package geo holds the geometry kernel used by routing and incident
// handling. Coordinates are treated as planar lon/lat for segment math and as
// spherical for kilometer distances.
package geo

import (
	"math"

	"hub-routing-service/internal/domain"
)

const (
	earthRadiusKm = 6371.0
	// KmPerDegree is the flat ~111 km per degree approximation.
	KmPerDegree = 111.0
	// MetersPerDegree is KmPerDegree in meters.
	MetersPerDegree = 111000.0

	collinearEps = 1e-12
)

// HaversineDistanceKm returns the great-circle distance in kilometers.
func HaversineDistanceKm(p1, p2 domain.Coordinates) float64 {
	lat1 := toRadians(p1.Lat)
	lat2 := toRadians(p2.Lat)
	dLat := toRadians(p2.Lat - p1.Lat)
	dLon := toRadians(p2.Lon - p1.Lon)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// PlanarDistance is the Euclidean distance in degree space.
func PlanarDistance(p1, p2 domain.Coordinates) float64 {
	return math.Hypot(p2.Lon-p1.Lon, p2.Lat-p1.Lat)
}

// PointToSegmentDistanceKm is the distance from p to the closest point of the
// segment [a, b]. The projection happens in degree space, the measurement is
// great-circle.
func PointToSegmentDistanceKm(p, a, b domain.Coordinates) float64 {
	return HaversineDistanceKm(p, ClosestPointOnSegment(p, a, b))
}

// ClosestPointOnSegment projects p onto [a, b], clamping to the endpoints.
// A zero-length segment returns a.
func ClosestPointOnSegment(p, a, b domain.Coordinates) domain.Coordinates {
	dx := b.Lon - a.Lon
	dy := b.Lat - a.Lat
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return a
	}
	t := ((p.Lon-a.Lon)*dx + (p.Lat-a.Lat)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return domain.Coordinates{Lon: a.Lon + t*dx, Lat: a.Lat + t*dy}
}

// SegmentsIntersect reports whether [p1, p2] and [q1, q2] share at least one
// point, including touching endpoints and collinear overlap.
func SegmentsIntersect(p1, p2, q1, q2 domain.Coordinates) bool {
	d1 := orientation(q1, q2, p1)
	d2 := orientation(q1, q2, p2)
	d3 := orientation(p1, p2, q1)
	d4 := orientation(p1, p2, q2)

	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}

	switch {
	case d1 == 0 && onSegment(q1, q2, p1):
		return true
	case d2 == 0 && onSegment(q1, q2, p2):
		return true
	case d3 == 0 && onSegment(p1, p2, q1):
		return true
	case d4 == 0 && onSegment(p1, p2, q2):
		return true
	}
	return false
}

// IsPointInLineBuffer reports whether p lies within bufferMeters of [a, b].
func IsPointInLineBuffer(p, a, b domain.Coordinates, bufferMeters float64) bool {
	return PointToSegmentDistanceKm(p, a, b) <= bufferMeters/1000
}

// RouteIntersectsIncident is the conservative hazard test for the straight
// route [start, end]. Any of the following counts as an intersection: the
// segments cross, the route start, end or midpoint is inside the incident
// buffer, or an incident endpoint is inside the route's own buffer.
// An incident without a line never intersects.
func RouteIntersectsIncident(start, end domain.Coordinates, inc *domain.Incident) bool {
	if !inc.HasLine() {
		return false
	}
	a, b := *inc.LineStart, *inc.LineEnd
	buf := inc.BufferMeters

	if SegmentsIntersect(start, end, a, b) {
		return true
	}
	mid := Midpoint(start, end)
	for _, p := range []domain.Coordinates{start, end, mid} {
		if IsPointInLineBuffer(p, a, b, buf) {
			return true
		}
	}
	return IsPointInLineBuffer(a, start, end, buf) || IsPointInLineBuffer(b, start, end, buf)
}

// Midpoint of [a, b] in degree space.
func Midpoint(a, b domain.Coordinates) domain.Coordinates {
	return domain.Coordinates{Lon: (a.Lon + b.Lon) / 2, Lat: (a.Lat + b.Lat) / 2}
}

// MetersToDegrees converts a buffer distance with the flat approximation.
func MetersToDegrees(m float64) float64 { return m / MetersPerDegree }

// orientation returns the sign of the cross product (b-a) x (c-a):
// 1 counterclockwise, -1 clockwise, 0 collinear.
func orientation(a, b, c domain.Coordinates) int {
	v := (b.Lon-a.Lon)*(c.Lat-a.Lat) - (b.Lat-a.Lat)*(c.Lon-a.Lon)
	switch {
	case v > collinearEps:
		return 1
	case v < -collinearEps:
		return -1
	}
	return 0
}

// onSegment assumes c is collinear with [a, b].
func onSegment(a, b, c domain.Coordinates) bool {
	return c.Lon >= math.Min(a.Lon, b.Lon) && c.Lon <= math.Max(a.Lon, b.Lon) &&
		c.Lat >= math.Min(a.Lat, b.Lat) && c.Lat <= math.Max(a.Lat, b.Lat)
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
