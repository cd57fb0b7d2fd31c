package ports

import (
	"context"

	"ev-route-service/internal/domain"
)

// Persistent cache mapping normalized address text to coordinates.
// Geocoding results are stable, so they are the only data the service
// caches across planning runs.
type GeocodeCache interface {
	// Fetch cached coordinates for the given addresses. Missing keys are
	// simply absent from the result.
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	// Store address -> coordinate mappings.
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
