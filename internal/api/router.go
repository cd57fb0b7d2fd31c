package api

import (
	"net/http"

	"ev-route-service/internal/api/handlers"
	"ev-route-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.StationRepository, planner handlers.TripPlanner) http.Handler {
	mux := http.NewServeMux()

	stationHandler := &handlers.StationHandler{Repo: repo}
	tripHandler := &handlers.TripHandler{Planner: planner}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/stations", stationHandler.List)
	mux.HandleFunc("/trips", tripHandler.Plan)

	return loggingMiddleware(mux)
}
