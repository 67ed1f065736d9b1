package api

import (
	"hub-routing-service/internal/api/handlers"
	"hub-routing-service/internal/services"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(svc *services.RouteService, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	routeHandler := &handlers.RouteHandler{Service: svc, Logger: logger}
	hubHandler := &handlers.HubHandler{Service: svc, Logger: logger}

	r := mux.NewRouter()
	r.HandleFunc("/health", handlers.Health(logger)).Methods(http.MethodGet)

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/routes/calculate", routeHandler.Calculate).Methods(http.MethodPost)
	v1.HandleFunc("/routes/{id}", routeHandler.Get).Methods(http.MethodGet)
	v1.HandleFunc("/routes/{id}/recalculate", routeHandler.Recalculate).Methods(http.MethodPost)
	v1.HandleFunc("/hubs", hubHandler.List).Methods(http.MethodGet)

	r.Use(requestIDMiddleware)
	return loggingMiddleware(logger, r)
}
