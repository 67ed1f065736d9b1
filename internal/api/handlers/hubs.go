package handlers

import (
	"hub-routing-service/internal/api/dto"
	"hub-routing-service/internal/services"
	"net/http"

	"go.uber.org/zap"
)

type HubHandler struct {
	Service *services.RouteService
	Logger  *zap.Logger
}

func (h *HubHandler) List(w http.ResponseWriter, r *http.Request) {
	hubs, err := h.Service.ListHubs(r.Context())
	if err != nil {
		writeServiceError(w, r, h.Logger, "list hubs", err)
		return
	}
	writeJSON(w, r, h.Logger, http.StatusOK, dto.NewListHubsResponse(hubs))
}
