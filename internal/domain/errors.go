package domain

import "errors"

// Typed planning failures surfaced to callers. Wrap with fmt.Errorf("...: %w")
// and test with errors.Is.
var (
	// No viable route geometry could be obtained for the requested endpoints.
	ErrRouteUnavailable = errors.New("route unavailable")

	// The geocoding collaborator failed for a request-fatal lookup.
	// Per-sample reverse geocoding failures are absorbed with fallback
	// naming and never carry this error outward.
	ErrGeocodeUnavailable = errors.New("geocoding unavailable")

	// Vehicle parameters outside the range model's domain.
	ErrInvalidVehicleConfig = errors.New("invalid vehicle configuration")
)
