package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"ev-route-service/internal/domain"
	"ev-route-service/internal/geo"
	"ev-route-service/internal/ports"
)

// Overlay geometry is thinned to at most this many route vertices.
const maxOverlayRoutePoints = 128

// Endpoint identifies a trip endpoint either by free text (resolved through
// the geocoder) or by an explicit coordinate. DisplayName, when set,
// overrides the resolved address for presentation.
type Endpoint struct {
	Text        string
	Location    *domain.Coordinates
	DisplayName string
}

type PlanTripRequest struct {
	Origin      Endpoint
	Destination Endpoint
	Vehicle     domain.VehicleConfig
	Family      RouteFamily
	Options     ports.RouteOptions
}

// TripPlanner runs the full range-aware planning pipeline. It owns no state
// between requests: every run builds its structures fresh and collaborator
// data is never mutated.
type TripPlanner struct {
	Provider  ports.RouteProvider
	Geocoder  ports.Geocoder
	Stations  ports.StationRepository
	Landmarks []domain.Landmark
	Config    PlannerConfig
}

func NewTripPlanner(
	provider ports.RouteProvider,
	geocoder ports.Geocoder,
	stations ports.StationRepository,
	landmarks []domain.Landmark,
	cfg PlannerConfig,
) *TripPlanner {
	return &TripPlanner{
		Provider:  provider,
		Geocoder:  geocoder,
		Stations:  stations,
		Landmarks: landmarks,
		Config:    cfg,
	}
}

type resolvedEndpoint struct {
	location domain.Coordinates
	name     string
	address  string
}

// PlanTrip produces the ordered itinerary for one planning request.
//
// Pipeline: resolve endpoints, select route geometry, build the
// cumulative-distance model, filter stations to the corridor, aggregate
// candidates, deduplicate and downsample, evaluate range, assemble the
// itinerary. Nothing is published until the whole pipeline succeeds.
func (p *TripPlanner) PlanTrip(ctx context.Context, req PlanTripRequest) (*domain.TripPlan, error) {
	if err := req.Vehicle.Validate(); err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	origin, err := p.resolveEndpoint(ctx, req.Origin, "Origin")
	if err != nil {
		return nil, fmt.Errorf("plan trip: origin: %w", err)
	}
	destination, err := p.resolveEndpoint(ctx, req.Destination, "Destination")
	if err != nil {
		return nil, fmt.Errorf("plan trip: destination: %w", err)
	}

	route, err := SelectRoute(ctx, p.Provider, origin.location, destination.location,
		req.Family, req.Options, p.Config.MaxInFlightRequests)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	path, err := geo.NewPath(route.Points)
	if err != nil {
		return nil, fmt.Errorf("plan trip: route geometry: %w: %v", domain.ErrRouteUnavailable, err)
	}
	totalKm := path.TotalKm()

	// Registry snapshot is fetched once per run and never cached across runs.
	stations, err := p.Stations.ListStations(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan trip: list stations: %w", err)
	}

	pool, err := p.gatherCandidates(ctx, path, stations)
	if err != nil {
		return nil, fmt.Errorf("plan trip: gather candidates: %w", err)
	}
	deduped := dedupeCandidates(pool)
	selected := downsampleCandidates(deduped, totalKm, p.Config)
	if len(selected) == 0 {
		// Not an error: the itinerary degrades to origin and destination.
		log.Printf("no viable stops: total_km=%.1f candidates=%d", totalKm, len(pool))
	}

	evaluated := evaluateRange(selected, req.Vehicle, totalKm, p.Config.LowRangeThresholdKm)

	// Leg endpoint addresses from the geometry provider win only when the
	// caller and geocoder supplied nothing.
	if len(route.Legs) > 0 {
		if origin.address == "" {
			origin.address = route.Legs[0].StartAddress
		}
		if destination.address == "" {
			destination.address = route.Legs[len(route.Legs)-1].EndAddress
		}
	}

	plan := &domain.TripPlan{
		Summary:         buildSummary(route),
		TotalDistanceKm: totalKm,
		Steps:           assembleItinerary(origin, destination, evaluated, totalKm),
		Overlay:         buildOverlay(path, origin, destination, evaluated),
	}

	return plan, nil
}

// resolveEndpoint turns an Endpoint into a coordinate plus display fields.
// Forward geocoding failures here are fatal to the request, unlike the
// per-sample reverse lookups inside the pipeline.
func (p *TripPlanner) resolveEndpoint(ctx context.Context, e Endpoint, defaultName string) (resolvedEndpoint, error) {
	name := e.DisplayName

	if e.Location != nil {
		if !e.Location.Valid() {
			return resolvedEndpoint{}, errors.New("invalid coordinates")
		}
		if name == "" {
			name = defaultName
		}
		return resolvedEndpoint{location: *e.Location, name: name}, nil
	}

	if e.Text == "" {
		return resolvedEndpoint{}, errors.New("endpoint requires text or coordinates")
	}

	addr, err := p.Geocoder.ForwardGeocode(ctx, e.Text)
	if err != nil {
		return resolvedEndpoint{}, err
	}

	if name == "" {
		name = addr.FormattedAddress
	}
	return resolvedEndpoint{
		location: addr.Location,
		name:     name,
		address:  addr.FormattedAddress,
	}, nil
}

// assembleItinerary shapes the final ordered sequence. No filtering happens
// here; this stage only prepares presentation data.
func assembleItinerary(origin, destination resolvedEndpoint, waypoints []evaluatedWaypoint, totalKm float64) []domain.ItineraryStep {
	steps := make([]domain.ItineraryStep, 0, len(waypoints)+2)

	steps = append(steps, domain.ItineraryStep{
		Kind:     domain.StepOrigin,
		Name:     origin.name,
		Address:  origin.address,
		Location: origin.location,
	})

	for _, w := range waypoints {
		step := domain.ItineraryStep{
			Kind:             domain.StepStop,
			Name:             w.Name,
			Location:         w.Location,
			IsRegistered:     w.IsRegistered(),
			DistanceAlongKm:  w.DistanceAlongKm,
			IsReachable:      w.IsReachable,
			RemainingRangeKm: w.RemainingRangeKm,
			NeedsCharging:    w.NeedsCharging,
			Recommendation:   w.Recommendation,
		}
		if w.Station != nil {
			step.Address = w.Station.Address
		}
		steps = append(steps, step)
	}

	steps = append(steps, domain.ItineraryStep{
		Kind:            domain.StepDestination,
		Name:            destination.name,
		Address:         destination.address,
		Location:        destination.location,
		DistanceAlongKm: totalKm,
	})

	return steps
}

// buildOverlay emits thinned route geometry plus one marker per step for
// client-side map rendering.
func buildOverlay(path *geo.Path, origin, destination resolvedEndpoint, waypoints []evaluatedWaypoint) []domain.OverlayPoint {
	points := path.Points()
	stride := 1
	if len(points) > maxOverlayRoutePoints {
		stride = len(points) / maxOverlayRoutePoints
	}

	overlay := make([]domain.OverlayPoint, 0, maxOverlayRoutePoints+len(waypoints)+2)
	for i := 0; i < len(points); i += stride {
		overlay = append(overlay, domain.OverlayPoint{Location: points[i], Kind: "route"})
	}
	last := points[len(points)-1]
	if overlay[len(overlay)-1].Location != last {
		overlay = append(overlay, domain.OverlayPoint{Location: last, Kind: "route"})
	}

	overlay = append(overlay, domain.OverlayPoint{Location: origin.location, Kind: "origin"})
	for _, w := range waypoints {
		overlay = append(overlay, domain.OverlayPoint{Location: w.Location, Kind: w.Source.String()})
	}
	overlay = append(overlay, domain.OverlayPoint{Location: destination.location, Kind: "destination"})

	return overlay
}

func buildSummary(route ports.Route) domain.LegSummary {
	meters := route.TotalDistanceMeters()
	seconds := route.TotalDurationSeconds()
	return domain.LegSummary{
		DistanceMeters:  meters,
		DurationSeconds: seconds,
		DistanceText:    formatDistanceText(meters),
		DurationText:    formatDurationText(seconds),
	}
}

func formatDistanceText(meters int) string {
	if meters < 1000 {
		return fmt.Sprintf("%d m", meters)
	}
	return fmt.Sprintf("%.1f km", float64(meters)/1000)
}

func formatDurationText(seconds int) string {
	minutes := (seconds + 30) / 60
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%d hr %d min", minutes/60, minutes%60)
}
