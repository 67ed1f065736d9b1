package geo

import (
	"fmt"
	"hub-routing-service/internal/domain"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// FormatPoint encodes c as "POINT(lon lat)".
func FormatPoint(c domain.Coordinates) string {
	return wkt.MarshalString(c.Point())
}

// FormatLineString encodes a path geometry as "LINESTRING(lon lat,...)".
func FormatLineString(coords []domain.Coordinates) string {
	ls := make(orb.LineString, 0, len(coords))
	for _, c := range coords {
		ls = append(ls, c.Point())
	}
	return wkt.MarshalString(ls)
}

// ParsePoint decodes "POINT(lon lat)". Malformed text is an error, never a
// zero point.
func ParsePoint(s string) (domain.Coordinates, error) {
	p, err := wkt.UnmarshalPoint(strings.TrimSpace(s))
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("%w: parse point %q: %v", domain.ErrInvalidGeometry, s, err)
	}
	c := domain.FromPoint(p)
	if err := c.Validate(); err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse point %q: %w", s, err)
	}
	return c, nil
}

// ParseLineString decodes "LINESTRING(lon lat, ...)" into at least two points.
func ParseLineString(s string) ([]domain.Coordinates, error) {
	ls, err := wkt.UnmarshalLineString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: parse linestring: %v", domain.ErrInvalidGeometry, err)
	}
	if len(ls) < 2 {
		return nil, fmt.Errorf("%w: linestring has %d points, want >= 2", domain.ErrInvalidGeometry, len(ls))
	}
	out := make([]domain.Coordinates, 0, len(ls))
	for _, p := range ls {
		c := domain.FromPoint(p)
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("parse linestring: %w", err)
		}
		out = append(out, c)
	}
	return out, nil
}
