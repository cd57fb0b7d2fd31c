package geo

import (
	"fmt"

	"github.com/twpayne/go-polyline"

	"ev-route-service/internal/domain"
)

// DecodePolyline decodes an encoded route geometry (Google polyline format,
// precision 5) into a coordinate sequence.
func DecodePolyline(encoded string) ([]domain.Coordinates, error) {
	if encoded == "" {
		return nil, fmt.Errorf("decode polyline: empty geometry")
	}

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}

	points := make([]domain.Coordinates, len(coords))
	for i, c := range coords {
		points[i] = domain.Coordinates{Lat: c[0], Lon: c[1]}
		if !points[i].Valid() {
			return nil, fmt.Errorf("decode polyline: invalid coordinate at index %d", i)
		}
	}

	return points, nil
}
