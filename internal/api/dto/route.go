package dto

import (
	"hub-routing-service/internal/domain"
	"hub-routing-service/internal/geo"
	"time"

	"github.com/google/uuid"
)

type ConstraintsRequest struct {
	Algorithm     string `json:"algorithm"`
	AvoidHighways bool   `json:"avoid_highways"`
	AvoidTolls    bool   `json:"avoid_tolls"`
	VehicleType   string `json:"vehicle_type"`
}

type CalculateRouteRequest struct {
	ParcelID    uuid.UUID          `json:"parcel_id"`
	DriverID    uuid.UUID          `json:"driver_id"`
	StartHubID  uuid.UUID          `json:"start_hub_id"`
	EndHubID    uuid.UUID          `json:"end_hub_id"`
	Constraints ConstraintsRequest `json:"constraints"`
}

func (c ConstraintsRequest) Domain() domain.Constraints {
	return domain.Constraints{
		Algorithm:     c.Algorithm,
		AvoidHighways: c.AvoidHighways,
		AvoidTolls:    c.AvoidTolls,
		VehicleType:   c.VehicleType,
	}
}

type Position struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// IncidentRequest is the body of a recalculation call. Both line ends are
// optional; an incident without a line leaves the route unchanged.
type IncidentRequest struct {
	Type                 string    `json:"type"`
	Description          string    `json:"description"`
	LineStart            *Position `json:"line_start"`
	LineEnd              *Position `json:"line_end"`
	BufferDistanceMeters float64   `json:"buffer_distance_meters"`
}

func (r IncidentRequest) Domain() *domain.Incident {
	inc := &domain.Incident{
		Type:         r.Type,
		Description:  r.Description,
		BufferMeters: r.BufferDistanceMeters,
	}
	if r.LineStart != nil {
		inc.LineStart = &domain.Coordinates{Lon: r.LineStart.Lon, Lat: r.LineStart.Lat}
	}
	if r.LineEnd != nil {
		inc.LineEnd = &domain.Coordinates{Lon: r.LineEnd.Lon, Lat: r.LineEnd.Lat}
	}
	return inc
}

type RouteResponse struct {
	ID                       uuid.UUID   `json:"id"`
	ParcelID                 uuid.UUID   `json:"parcel_id"`
	DriverID                 *uuid.UUID  `json:"driver_id"`
	StartHubID               *uuid.UUID  `json:"start_hub_id"`
	EndHubID                 *uuid.UUID  `json:"end_hub_id"`
	Geometry                 string      `json:"geometry"`
	Coordinates              [][]float64 `json:"coordinates"`
	TotalDistanceKm          float64     `json:"total_distance_km"`
	EstimatedDurationMinutes int         `json:"estimated_duration_minutes"`
	RoutingService           string      `json:"routing_service"`
	Active                   bool        `json:"active"`
	CreatedAt                time.Time   `json:"created_at"`
}

func NewRouteResponse(r *domain.Route) RouteResponse {
	res := RouteResponse{
		ID:                       r.ID,
		ParcelID:                 r.ParcelID,
		DriverID:                 nullable(r.DriverID),
		StartHubID:               nullable(r.StartHubID),
		EndHubID:                 nullable(r.EndHubID),
		Coordinates:              make([][]float64, 0, len(r.Geometry)),
		TotalDistanceKm:          r.TotalDistance,
		EstimatedDurationMinutes: r.EstimatedDurationMinutes,
		RoutingService:           r.ServiceTag,
		Active:                   r.Active,
		CreatedAt:                r.CreatedAt,
	}
	if len(r.Geometry) >= 2 {
		res.Geometry = geo.FormatLineString(r.Geometry)
	}
	for _, c := range r.Geometry {
		res.Coordinates = append(res.Coordinates, c.CoordsToList())
	}
	return res
}

func nullable(id uuid.NullUUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	return &id.UUID
}
