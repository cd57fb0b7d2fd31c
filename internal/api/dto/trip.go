package dto

// Trip endpoint given either as free-text address or explicit coordinates.
type EndpointRequest struct {
	Address string   `json:"address,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
	Name    string   `json:"name,omitempty"`
}

type PlanTripRequest struct {
	Origin           EndpointRequest `json:"origin"`
	Destination      EndpointRequest `json:"destination"`
	CurrentChargePct float64         `json:"current_charge_pct"`
	FinalChargePct   float64         `json:"final_charge_pct"`
	MaxRangeKm       float64         `json:"max_range_km"`
	RouteFamily      string          `json:"route_family,omitempty"`
	AvoidHighways    bool            `json:"avoid_highways,omitempty"`
	AvoidTolls       bool            `json:"avoid_tolls,omitempty"`
}

type TripStepResponse struct {
	Kind         string  `json:"kind"`
	Name         string  `json:"name"`
	Address      string  `json:"address,omitempty"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	IsRegistered bool    `json:"is_registered"`

	DistanceAlongKm  float64 `json:"distance_along_km"`
	IsReachable      *bool   `json:"is_reachable,omitempty"`
	RemainingRangeKm *float64 `json:"remaining_range_km,omitempty"`
	NeedsCharging    *bool   `json:"needs_charging,omitempty"`
	Recommendation   string  `json:"recommendation,omitempty"`
}

type OverlayPointResponse struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Kind string  `json:"kind"`
}

type TripPlanResponse struct {
	DistanceText    string                 `json:"distance_text"`
	DurationText    string                 `json:"duration_text"`
	TotalDistanceKm float64                `json:"total_distance_km"`
	Steps           []TripStepResponse     `json:"steps"`
	Overlay         []OverlayPointResponse `json:"overlay"`
}
