package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"ev-route-service/internal/domain"
	"ev-route-service/internal/geo"
	"ev-route-service/internal/platform/obs"
	"ev-route-service/internal/ports"
)

type directionsOptions struct {
	AvoidFeatures []string `json:"avoid_features,omitempty"`
}

type directionsRequest struct {
	Coordinates [][]float64        `json:"coordinates"`
	Options     *directionsOptions `json:"options,omitempty"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
		Segments []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"segments"`
		Geometry string `json:"geometry"`
	} `json:"routes"`
}

// Route fetches drivable geometry between two points from the ORS
// directions endpoint (/v2/directions/{profile}).
func (o *ORSClient) Route(
	ctx context.Context,
	origin, destination domain.Coordinates,
	opts ports.RouteOptions,
) (_ ports.Route, err error) {
	defer obs.Time(ctx, "ors.Route")(&err)

	if !origin.Valid() || !destination.Valid() {
		return ports.Route{}, errors.New("ors route: invalid endpoint coordinates")
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s", o.baseURL, o.profile)

	var avoid []string
	if opts.AvoidHighways {
		avoid = append(avoid, "highways")
	}
	if opts.AvoidTolls {
		avoid = append(avoid, "tollways")
	}

	bodyObj := directionsRequest{
		Coordinates: [][]float64{origin.CoordsToList(), destination.CoordsToList()},
	}
	if len(avoid) > 0 {
		bodyObj.Options = &directionsOptions{AvoidFeatures: avoid}
	}

	payload, err := json.Marshal(bodyObj)
	if err != nil {
		return ports.Route{}, fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return ports.Route{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return ports.Route{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(dr.Routes) == 0 {
		return ports.Route{}, fmt.Errorf("ors route: %w", domain.ErrRouteUnavailable)
	}

	route := dr.Routes[0]
	points, err := geo.DecodePolyline(route.Geometry)
	if err != nil {
		return ports.Route{}, fmt.Errorf("ors route geometry: %w", err)
	}

	legs := make([]ports.RouteLeg, 0, len(route.Segments))
	for _, seg := range route.Segments {
		legs = append(legs, ports.RouteLeg{
			DistanceMeters:  int(math.Round(seg.Distance)),
			DurationSeconds: int(math.Round(seg.Duration)),
		})
	}

	// A degenerate response with a summary but no segments still yields one leg.
	if len(legs) == 0 {
		legs = append(legs, ports.RouteLeg{
			DistanceMeters:  int(math.Round(route.Summary.Distance)),
			DurationSeconds: int(math.Round(route.Summary.Duration)),
		})
	}

	return ports.Route{Legs: legs, Points: points}, nil
}
