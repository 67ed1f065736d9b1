package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// HubType is the functional role of a hub in the delivery network.
type HubType string

const (
	HubWarehouse          HubType = "WAREHOUSE"
	HubSortingCenter      HubType = "SORTING_CENTER"
	HubTransitPoint       HubType = "TRANSIT_POINT"
	HubDistributionCenter HubType = "DISTRIBUTION_CENTER"
	HubPickupPoint        HubType = "PICKUP_POINT"
	HubDropOffPoint       HubType = "DROP_OFF_POINT"
)

var hubTypes = map[HubType]struct{}{
	HubWarehouse:          {},
	HubSortingCenter:      {},
	HubTransitPoint:       {},
	HubDistributionCenter: {},
	HubPickupPoint:        {},
	HubDropOffPoint:       {},
}

// Parse a hub type name (case-insensitive).
func ParseHubType(s string) (HubType, error) {
	t := HubType(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := hubTypes[t]; !ok {
		return "", fmt.Errorf("parse hub type: unknown type %q", s)
	}
	return t, nil
}

// A logistics waypoint and graph node. Identity is the ID.
// Hubs are immutable for the duration of one routing request.
type Hub struct {
	ID       uuid.UUID
	Address  string
	Type     HubType
	Location Coordinates
}

// Edge is a stored hub connection. The record is directed (FromHubID -> ToHubID);
// whether it is walked in both directions is up to the search strategy.
// A nil Weight counts as zero.
type Edge struct {
	ID        uuid.UUID
	FromHubID uuid.UUID
	ToHubID   uuid.UUID
	Weight    *float64
}

// Cost returns the edge weight with nil treated as 0.
func (e Edge) Cost() float64 {
	if e.Weight == nil {
		return 0
	}
	return *e.Weight
}

// Other returns the endpoint opposite to id, and false if id is not an endpoint.
func (e Edge) Other(id uuid.UUID) (uuid.UUID, bool) {
	switch id {
	case e.FromHubID:
		return e.ToHubID, true
	case e.ToHubID:
		return e.FromHubID, true
	}
	return uuid.Nil, false
}

// Weight is a convenience for building edges with a literal weight.
func Weight(w float64) *float64 { return &w }
