package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Represents the persisted delivery route for a parcel.
// A Route wraps a computed Path with its business correlation ids. During
// recalculation only the Path is replaced; identity fields are preserved.
type Route struct {
	ID         uuid.UUID
	ParcelID   uuid.UUID
	DriverID   uuid.NullUUID
	StartHubID uuid.NullUUID
	EndHubID   uuid.NullUUID

	Path

	Waypoints     string
	TrafficFactor float64
	CreatedAt     time.Time
}

// NewRoute wraps a freshly computed path for a parcel.
func NewRoute(p *Path, parcelID uuid.UUID, driverID uuid.NullUUID, start, end uuid.UUID) *Route {
	r := &Route{
		ParcelID:      parcelID,
		DriverID:      driverID,
		StartHubID:    uuid.NullUUID{UUID: start, Valid: true},
		EndHubID:      uuid.NullUUID{UUID: end, Valid: true},
		Waypoints:     "[]",
		TrafficFactor: 1.0,
	}
	r.ApplyPath(p)
	return r
}

// HasEndpoints reports whether the stored start and end hub references exist.
// Legacy routes without them cannot be recalculated.
func (r *Route) HasEndpoints() bool {
	return r.StartHubID.Valid && r.EndHubID.Valid
}

// ApplyPath overwrites geometry, distance, duration, service tag and the
// active flag. ID, parcel, driver, hub references and CreatedAt are untouched.
func (r *Route) ApplyPath(p *Path) {
	if p == nil {
		return
	}
	r.Path = Path{
		Geometry:                 slices.Clone(p.Geometry),
		TotalDistance:            p.TotalDistance,
		EstimatedDurationMinutes: p.EstimatedDurationMinutes,
		ServiceTag:               p.ServiceTag,
		Active:                   p.Active,
	}
}

// CurrentPosition is the first coordinate of the stored geometry, which is the
// driver's live position for a route revised mid-journey.
func (r *Route) CurrentPosition() (Coordinates, bool) {
	return r.Path.Start()
}

// Clone returns a deep copy safe to mutate.
func (r *Route) Clone() *Route {
	c := *r
	c.Geometry = slices.Clone(r.Geometry)
	return &c
}
