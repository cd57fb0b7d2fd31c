package ports

import (
	"context"

	"ev-route-service/internal/domain"
)

// Routing preferences forwarded to the geometry provider.
type RouteOptions struct {
	AvoidHighways bool
	AvoidTolls    bool
}

// One leg of a returned route. Providers that cannot resolve endpoint
// addresses leave the address fields empty; the planner fills them from
// geocoding results.
type RouteLeg struct {
	DistanceMeters  int
	DurationSeconds int
	StartAddress    string
	EndAddress      string
}

// Route geometry with per-leg metrics, as returned by a geometry provider.
type Route struct {
	Legs   []RouteLeg
	Points []domain.Coordinates
}

// TotalDistanceMeters sums the per-leg distances.
func (r Route) TotalDistanceMeters() int {
	total := 0
	for _, leg := range r.Legs {
		total += leg.DistanceMeters
	}
	return total
}

// TotalDurationSeconds sums the per-leg durations.
func (r Route) TotalDurationSeconds() int {
	total := 0
	for _, leg := range r.Legs {
		total += leg.DurationSeconds
	}
	return total
}

// Contract for obtaining drivable route geometry between two points.
type RouteProvider interface {
	// Return a route from origin to destination honoring the given options.
	Route(ctx context.Context, origin, destination domain.Coordinates, opts RouteOptions) (Route, error)
}
