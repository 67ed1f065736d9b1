package domain

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Point returns the coordinates as an orb point (x = lon, y = lat).
func (c Coordinates) Point() orb.Point { return orb.Point{c.Lon, c.Lat} }

// FromPoint is the inverse of Coordinates.Point.
func FromPoint(p orb.Point) Coordinates { return Coordinates{Lon: p.Lon(), Lat: p.Lat()} }

func (c Coordinates) Equal(o Coordinates) bool { return c.Lon == o.Lon && c.Lat == o.Lat }

// Validate rejects NaN/Inf components and out-of-range latitudes/longitudes.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lon) || math.IsNaN(c.Lat) || math.IsInf(c.Lon, 0) || math.IsInf(c.Lat, 0) {
		return fmt.Errorf("%w: non-finite coordinate (%v, %v)", ErrInvalidGeometry, c.Lon, c.Lat)
	}
	if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: coordinate out of range (%v, %v)", ErrInvalidGeometry, c.Lon, c.Lat)
	}
	return nil
}

func (c Coordinates) String() string { return fmt.Sprintf("(%g, %g)", c.Lon, c.Lat) }
