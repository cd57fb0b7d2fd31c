package domain

// StepKind distinguishes the endpoints of an itinerary from charging stops.
type StepKind int

const (
	StepOrigin StepKind = iota
	StepStop
	StepDestination
)

func (k StepKind) String() string {
	switch k {
	case StepOrigin:
		return "origin"
	case StepStop:
		return "stop"
	case StepDestination:
		return "destination"
	default:
		return "unknown"
	}
}

// ChargeRecommendation classifies how strongly a stop is advised.
type ChargeRecommendation int

const (
	// Informational waypoint, not a charging location.
	RecommendationNone ChargeRecommendation = iota
	// Stop lies beyond the vehicle's current range.
	RecommendationUnreachable
	// Charging here is required to reach the destination with the target charge.
	RecommendationRequired
	// Charging is advised because remaining range after this stop is low.
	RecommendationLowRange
	// Reachable station that the vehicle does not strictly need.
	RecommendationOptional
)

func (r ChargeRecommendation) String() string {
	switch r {
	case RecommendationNone:
		return "informational, no charging"
	case RecommendationUnreachable:
		return "unreachable"
	case RecommendationRequired:
		return "recommended: required to reach destination"
	case RecommendationLowRange:
		return "recommended: low remaining range"
	case RecommendationOptional:
		return "optional"
	default:
		return "unknown"
	}
}

// Single entry in the final ordered itinerary.
// Range fields are populated for StepStop entries only.
type ItineraryStep struct {
	Kind         StepKind
	Name         string
	Address      string
	Location     Coordinates
	IsRegistered bool

	DistanceAlongKm  float64
	IsReachable      bool
	RemainingRangeKm float64
	NeedsCharging    bool
	Recommendation   ChargeRecommendation
}

// Human-readable route metrics for display alongside the itinerary.
type LegSummary struct {
	DistanceMeters  int
	DurationSeconds int
	DistanceText    string
	DurationText    string
}

// Map marker emitted for client-side rendering.
type OverlayPoint struct {
	Location Coordinates
	Kind     string
}

// TripPlan is the complete result of one planning run.
// It is immutable output data and contains no side effects.
type TripPlan struct {
	Summary         LegSummary
	TotalDistanceKm float64
	Steps           []ItineraryStep
	Overlay         []OverlayPoint
}
