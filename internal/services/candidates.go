package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"ev-route-service/internal/domain"
	"ev-route-service/internal/geo"
)

// Deterministic placeholder naming for settlements whose reverse geocode
// failed. Indexed by sample order, so a degraded plan is reproducible.
var (
	fallbackPrefixes = []string{"Milestone", "Waypoint", "Highway", "Junction", "Corridor"}
	fallbackSuffixes = []string{"Halt", "Point", "Rest Stop", "Crossing"}
)

func fallbackSettlementName(sampleIdx int) string {
	prefix := fallbackPrefixes[sampleIdx%len(fallbackPrefixes)]
	suffix := fallbackSuffixes[(sampleIdx/len(fallbackPrefixes))%len(fallbackSuffixes)]
	return fmt.Sprintf("%s %s %d", prefix, suffix, sampleIdx+1)
}

// Keywords that mark a short geocoded name as probably a real place.
var localityKeywords = []string{
	"city", "town", "village", "nagar", "pur", "garh", "pura",
	"chowk", "road", "market", "division", "district", "state", "india",
}

// isProbablyPlace filters out junk geocoder output: a name passes if it is
// longer than 3 characters or contains a locality keyword.
func isProbablyPlace(name string) bool {
	if len(name) > 3 {
		return true
	}
	lower := strings.ToLower(name)
	for _, kw := range localityKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// gatherCandidates merges the three candidate producers into one pool:
// registered stations along the corridor, reverse-geocoded settlements at
// fixed intervals, and configured landmarks. Only candidates passing the
// strict corridor tolerance enter the pool.
func (p *TripPlanner) gatherCandidates(
	ctx context.Context,
	path *geo.Path,
	stations []*domain.Station,
) ([]domain.CandidateWaypoint, error) {
	pool := p.stationCandidates(path, stations)

	settlements, err := p.settlementCandidates(ctx, path)
	if err != nil {
		return nil, err
	}
	pool = append(pool, settlements...)

	pool = append(pool, p.landmarkCandidates(path)...)
	return pool, nil
}

func (p *TripPlanner) stationCandidates(path *geo.Path, stations []*domain.Station) []domain.CandidateWaypoint {
	near := stationsNearCorridor(path, stations, p.Config)

	out := make([]domain.CandidateWaypoint, 0, len(near))
	for _, ps := range near {
		if ps.fromRouteKm > p.Config.StrictCorridorKm {
			// Along the corridor for diagnostics, but not itinerary-eligible.
			log.Printf("station dropped: id=%s from_route_km=%.1f strict_km=%.1f",
				ps.station.StationID, ps.fromRouteKm, p.Config.StrictCorridorKm)
			continue
		}

		out = append(out, domain.CandidateWaypoint{
			ID:                  "station:" + ps.station.StationID,
			Name:                ps.station.Name,
			Location:            ps.station.Location,
			Source:              domain.SourceRegisteredStation,
			DistanceAlongKm:     ps.alongKm,
			DistanceFromRouteKm: ps.fromRouteKm,
			Projected:           true,
			Station:             ps.station,
		})
	}
	return out
}

type settlementName struct {
	name string
	ok   bool
}

func (p *TripPlanner) settlementCandidates(ctx context.Context, path *geo.Path) ([]domain.CandidateWaypoint, error) {
	samples := path.SampleEvery(p.Config.SettlementIntervalKm*1000, p.Config.SettlementCap)
	if len(samples) == 0 {
		return nil, nil
	}

	maxInFlight := p.Config.MaxInFlightRequests
	if maxInFlight < 1 {
		maxInFlight = len(samples)
	}

	// Reverse geocoding is fanned out with bounded concurrency, but results
	// are written by sample index so order-driven fallback naming holds.
	names := make([]settlementName, len(samples))
	sem := make(chan struct{}, maxInFlight)
	var wg sync.WaitGroup

	for i, s := range samples {
		wg.Add(1)
		go func(i int, loc domain.Coordinates) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			place, err := p.Geocoder.ReverseGeocode(ctx, loc)
			if err != nil || strings.TrimSpace(place.Name) == "" {
				// Absorbed per-sample; fallback naming keeps the plan whole.
				return
			}
			names[i] = settlementName{name: strings.TrimSpace(place.Name), ok: true}
		}(i, s.Location)
	}
	wg.Wait()

	// A cancelled run must not degrade into an all-fallback plan.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.CandidateWaypoint, 0, len(samples))
	for i, s := range samples {
		name := names[i].name
		if !names[i].ok {
			name = fallbackSettlementName(s.Index)
		}

		if !isProbablyPlace(name) {
			log.Printf("settlement dropped: sample=%d name=%q", s.Index, name)
			continue
		}

		out = append(out, domain.CandidateWaypoint{
			ID:              fmt.Sprintf("settlement:%d", s.Index),
			Name:            name,
			Location:        s.Location,
			Source:          domain.SourceGeocodedSettlement,
			DistanceAlongKm: s.AlongMeters / 1000,
			// Samples are taken on the path itself.
			DistanceFromRouteKm: 0,
			Projected:           true,
		})
	}
	return out, nil
}

func (p *TripPlanner) landmarkCandidates(path *geo.Path) []domain.CandidateWaypoint {
	out := make([]domain.CandidateWaypoint, 0, len(p.Landmarks))
	for _, lm := range p.Landmarks {
		idx, perpMeters := path.Project(lm.Location)
		fromRouteKm := perpMeters / 1000
		if fromRouteKm > p.Config.StrictCorridorKm {
			continue
		}

		out = append(out, domain.CandidateWaypoint{
			ID:                  "landmark:" + strings.ToLower(strings.ReplaceAll(lm.Name, " ", "-")),
			Name:                lm.Name,
			Location:            lm.Location,
			Source:              domain.SourceLandmark,
			DistanceAlongKm:     path.CumulativeMeters(idx) / 1000,
			DistanceFromRouteKm: fromRouteKm,
			Projected:           true,
		})
	}
	return out
}
