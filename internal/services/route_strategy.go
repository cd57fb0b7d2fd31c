package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"

	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
)

// Avoid-option combinations probed by the shortest-distance strategy,
// in tie-break order: the first-seen combination wins on equal distance.
var shortestDistanceVariants = []ports.RouteOptions{
	{AvoidHighways: true, AvoidTolls: false},
	{AvoidHighways: true, AvoidTolls: true},
	{AvoidHighways: false, AvoidTolls: true},
	{AvoidHighways: false, AvoidTolls: false},
}

type routeOutcome struct {
	idx   int
	route ports.Route
	opts  ports.RouteOptions
	err   error
}

// SelectRoute chooses the route geometry the rest of the pipeline runs on.
//
// FamilyFastest issues a single request with the caller's preferences.
// FamilyShortestDistance probes every avoid-option combination concurrently,
// skips failed variants, and keeps the route with the smallest total leg
// distance; ties keep the earliest variant in enumeration order. If all
// variants fail, one plain request with the original preferences is the
// fallback before giving up with ErrRouteUnavailable.
func SelectRoute(
	ctx context.Context,
	provider ports.RouteProvider,
	origin, destination domain.Coordinates,
	family RouteFamily,
	opts ports.RouteOptions,
	maxInFlight int,
) (ports.Route, error) {
	if family == FamilyFastest {
		route, err := provider.Route(ctx, origin, destination, opts)
		if err != nil {
			return ports.Route{}, fmt.Errorf("select route: %w: %v", domain.ErrRouteUnavailable, err)
		}
		return route, nil
	}

	if maxInFlight < 1 {
		maxInFlight = len(shortestDistanceVariants)
	}

	sem := make(chan struct{}, maxInFlight)
	outcomes := make(chan routeOutcome, len(shortestDistanceVariants))
	var wg sync.WaitGroup

	for i, variant := range shortestDistanceVariants {
		wg.Add(1)
		go func(idx int, v ports.RouteOptions) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			route, err := provider.Route(ctx, origin, destination, v)
			outcomes <- routeOutcome{idx: idx, route: route, opts: v, err: err}
		}(i, variant)
	}

	wg.Wait()
	close(outcomes)

	bestIdx := -1
	bestDistance := math.MaxInt
	var best ports.Route

	for out := range outcomes {
		if out.err != nil {
			// Variant failures are logged and skipped, not fatal.
			log.Printf("route variant skipped: avoid_highways=%t avoid_tolls=%t err=%v",
				out.opts.AvoidHighways, out.opts.AvoidTolls, out.err)
			continue
		}

		d := out.route.TotalDistanceMeters()
		if d < bestDistance || (d == bestDistance && out.idx < bestIdx) {
			bestDistance = d
			bestIdx = out.idx
			best = out.route
		}
	}

	if bestIdx >= 0 {
		return best, nil
	}

	// All variants failed: one plain attempt with the original preferences.
	route, err := provider.Route(ctx, origin, destination, opts)
	if err != nil {
		return ports.Route{}, fmt.Errorf("select route: all variants failed: %w: %v", domain.ErrRouteUnavailable, err)
	}
	return route, nil
}
