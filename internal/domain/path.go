package domain

import (
	"math"
	"slices"
	"strings"
)

// Service tags identifying the strategy that produced a path.
const (
	TagBasic    = "BASIC"
	TagDijkstra = "DIJKSTRA"
	TagAStar    = "ASTAR"
	TagOSRM     = "OSRM"

	SuffixRecalc = "_RECALC"
	SuffixDetour = "_DETOUR"
)

// BaseServiceTag strips a post-incident suffix ("DIJKSTRA_RECALC" -> "DIJKSTRA").
func BaseServiceTag(tag string) string {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	for {
		switch {
		case strings.HasSuffix(tag, SuffixRecalc):
			tag = strings.TrimSuffix(tag, SuffixRecalc)
		case strings.HasSuffix(tag, SuffixDetour):
			tag = strings.TrimSuffix(tag, SuffixDetour)
		default:
			return tag
		}
	}
}

// The computed result of a routing strategy. A Path is embedded in a Route
// and never persisted on its own.
//
// Geometry always holds at least two points. TotalDistance is kilometers for
// the geometric strategies and summed edge weight for graph search.
type Path struct {
	Geometry                 []Coordinates
	TotalDistance            float64
	EstimatedDurationMinutes int
	ServiceTag               string
	Active                   bool
}

// NewPath builds an active path and derives the duration from the distance.
// A single-point geometry is duplicated to keep the two-point minimum.
func NewPath(geometry []Coordinates, distance float64, tag string) *Path {
	return &Path{
		Geometry:                 normalizeGeometry(geometry),
		TotalDistance:            distance,
		EstimatedDurationMinutes: DurationFromDistance(distance),
		ServiceTag:               tag,
		Active:                   true,
	}
}

// DurationFromDistance is the fixed 10 minutes per distance unit estimate.
func DurationFromDistance(distance float64) int {
	return int(math.Round(distance * 10))
}

func normalizeGeometry(geometry []Coordinates) []Coordinates {
	out := slices.Clone(geometry)
	if len(out) == 1 {
		out = append(out, out[0])
	}
	return out
}

// Start returns the first geometry point.
func (p *Path) Start() (Coordinates, bool) {
	if p == nil || len(p.Geometry) == 0 {
		return Coordinates{}, false
	}
	return p.Geometry[0], true
}

// End returns the last geometry point.
func (p *Path) End() (Coordinates, bool) {
	if p == nil || len(p.Geometry) == 0 {
		return Coordinates{}, false
	}
	return p.Geometry[len(p.Geometry)-1], true
}
