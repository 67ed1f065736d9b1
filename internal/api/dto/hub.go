package dto

import (
	"hub-routing-service/internal/domain"
	"hub-routing-service/internal/geo"

	"github.com/google/uuid"
)

type HubResponse struct {
	ID       uuid.UUID `json:"id"`
	Address  string    `json:"address"`
	Type     string    `json:"type"`
	Location string    `json:"location"`
	Lon      float64   `json:"lon"`
	Lat      float64   `json:"lat"`
}

type ListHubsResponse struct {
	Hubs []HubResponse `json:"hubs"`
}

func NewListHubsResponse(hubs []domain.Hub) ListHubsResponse {
	res := ListHubsResponse{Hubs: make([]HubResponse, 0, len(hubs))}
	for _, h := range hubs {
		res.Hubs = append(res.Hubs, HubResponse{
			ID:       h.ID,
			Address:  h.Address,
			Type:     string(h.Type),
			Location: geo.FormatPoint(h.Location),
			Lon:      h.Location.Lon,
			Lat:      h.Location.Lat,
		})
	}
	return res
}
