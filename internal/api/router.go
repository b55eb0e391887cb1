package api

import (
	"delivery-route-planner/internal/api/handlers"
	"delivery-route-planner/internal/refdata"
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(planner handlers.RoutePlanner, tables *refdata.Tables) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)

	routeHandler := &handlers.RouteHandler{Planner: planner}
	refHandler := &handlers.ReferenceHandler{Tables: tables}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.HandleFunc("/references", refHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/routes", routeHandler.Plan).Methods(http.MethodPost)

	return requestIDMiddleware(loggingMiddleware(r))
}
