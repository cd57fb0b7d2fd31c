package ports

import (
	"context"

	"ev-route-service/internal/domain"
)

// Port: a boundary for retrieving registered charging stations.
// Implementations return a read-only snapshot with no ordering guarantee.
type StationRepository interface {
	// Retrieve all registered stations.
	ListStations(ctx context.Context) ([]*domain.Station, error)
}
