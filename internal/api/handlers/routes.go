package handlers

import (
	"hub-routing-service/internal/api/dto"
	"hub-routing-service/internal/services"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// RouteHandler exposes route calculation, lookup and incident recalculation.
type RouteHandler struct {
	Service *services.RouteService
	Logger  *zap.Logger
}

func (h *RouteHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateRouteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.Logger, http.StatusBadRequest, "invalid json body")
		return
	}

	route, err := h.Service.CalculateRoute(r.Context(), services.CalculateRouteRequest{
		ParcelID:    req.ParcelID,
		DriverID:    req.DriverID,
		StartHubID:  req.StartHubID,
		EndHubID:    req.EndHubID,
		Constraints: req.Constraints.Domain(),
	})
	if err != nil {
		writeServiceError(w, r, h.Logger, "calculate route", err)
		return
	}
	writeJSON(w, r, h.Logger, http.StatusCreated, dto.NewRouteResponse(route))
}

func (h *RouteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.routeID(w, r)
	if !ok {
		return
	}

	route, err := h.Service.GetRoute(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.Logger, "get route", err)
		return
	}
	writeJSON(w, r, h.Logger, http.StatusOK, dto.NewRouteResponse(route))
}

// Recalculate revises a stored route around the incident in the body. A
// route that does not need to change is returned as stored.
func (h *RouteHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.routeID(w, r)
	if !ok {
		return
	}

	var req dto.IncidentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.Logger, http.StatusBadRequest, "invalid json body")
		return
	}

	route, err := h.Service.RecalculateRoute(r.Context(), id, req.Domain())
	if err != nil {
		writeServiceError(w, r, h.Logger, "recalculate route", err)
		return
	}
	writeJSON(w, r, h.Logger, http.StatusOK, dto.NewRouteResponse(route))
}

func (h *RouteHandler) routeID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, h.Logger, http.StatusBadRequest, "invalid route id")
		return uuid.Nil, false
	}
	return id, true
}
