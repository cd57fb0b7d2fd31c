package services

import "fmt"

// PlannerConfig carries the tunable thresholds of the planning pipeline.
// Corridor tolerances are deliberately two-phase: a broad "near corridor"
// test decides which stations count as along the route at all, a strict
// test decides itinerary eligibility.
type PlannerConfig struct {
	BBoxBufferKm         float64 // bounding-box inflation, phase 1
	LooseCorridorKm      float64 // path-proximity tolerance, phase 2
	StrictCorridorKm     float64 // itinerary-eligibility tolerance, phase 3
	SettlementIntervalKm float64 // spacing of reverse-geocoded samples
	SettlementCap        int     // maximum settlement samples per run
	LowRangeThresholdKm  float64 // remaining range below which charging is advised
	KmPerStop            float64 // route km represented by one target stop
	MinStops             int
	MaxStops             int
	MaxInFlightRequests  int // bound on concurrent geometry/geocoding calls
}

func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		BBoxBufferKm:         50,
		LooseCorridorKm:      50,
		StrictCorridorKm:     10,
		SettlementIntervalKm: 120,
		SettlementCap:        10,
		LowRangeThresholdKm:  50,
		KmPerStop:            25,
		MinStops:             8,
		MaxStops:             12,
		MaxInFlightRequests:  4,
	}
}

// RouteFamily selects the geometry request strategy.
type RouteFamily int

const (
	FamilyFastest RouteFamily = iota
	FamilyShortestDistance
)

// ParseRouteFamily maps the API-level string to a RouteFamily.
// Empty input defaults to the fastest route.
func ParseRouteFamily(s string) (RouteFamily, error) {
	switch s {
	case "", "fastest":
		return FamilyFastest, nil
	case "shortest_distance":
		return FamilyShortestDistance, nil
	default:
		return FamilyFastest, fmt.Errorf("unknown route family %q", s)
	}
}
