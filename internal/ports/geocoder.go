package ports

import (
	"context"

	"ev-route-service/internal/domain"
)

// Named place resolved from a coordinate.
type Place struct {
	Name      string
	AdminArea string
}

// Coordinate and display address resolved from free text.
type GeocodedAddress struct {
	Location         domain.Coordinates
	FormattedAddress string
}

// Contract for forward and reverse geocoding.
type Geocoder interface {
	// Resolve a coordinate to the nearest named place.
	ReverseGeocode(ctx context.Context, c domain.Coordinates) (Place, error)
	// Resolve free-text input to a coordinate and formatted address.
	ForwardGeocode(ctx context.Context, text string) (GeocodedAddress, error)
}
