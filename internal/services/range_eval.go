package services

import "ev-route-service/internal/domain"

// Waypoint annotated with the range model's verdict.
type evaluatedWaypoint struct {
	domain.CandidateWaypoint

	IsReachable      bool
	RemainingRangeKm float64
	NeedsCharging    bool
	Recommendation   domain.ChargeRecommendation
}

// evaluateRange classifies every retained waypoint against the vehicle's
// energy budget.
//
// A waypoint is reachable while its distance along the route fits within the
// current charge. Charging is needed when the remaining distance to the
// destination exceeds the range the vehicle must still hold at arrival.
// Because waypoints are distance-sorted, reachability is monotonic: once one
// waypoint is out of range, so is every later one.
func evaluateRange(
	waypoints []domain.CandidateWaypoint,
	vehicle domain.VehicleConfig,
	totalKm float64,
	lowRangeKm float64,
) []evaluatedWaypoint {
	currentRangeKm := vehicle.CurrentRangeKm()
	finalRangeKm := vehicle.FinalRangeKm()

	out := make([]evaluatedWaypoint, 0, len(waypoints))
	for _, w := range waypoints {
		distanceToDestKm := totalKm - w.DistanceAlongKm

		ev := evaluatedWaypoint{
			CandidateWaypoint: w,
			IsReachable:       w.DistanceAlongKm <= currentRangeKm,
			RemainingRangeKm:  currentRangeKm - w.DistanceAlongKm,
			NeedsCharging:     distanceToDestKm > finalRangeKm,
		}
		ev.Recommendation = recommend(ev, lowRangeKm)

		out = append(out, ev)
	}

	return out
}

// recommend derives the charging advice ladder. Non-registered waypoints are
// informational only; registered stations are ranked by urgency.
func recommend(w evaluatedWaypoint, lowRangeKm float64) domain.ChargeRecommendation {
	if !w.IsRegistered() {
		return domain.RecommendationNone
	}

	switch {
	case !w.IsReachable:
		return domain.RecommendationUnreachable
	case w.NeedsCharging:
		return domain.RecommendationRequired
	case w.RemainingRangeKm < lowRangeKm:
		return domain.RecommendationLowRange
	default:
		return domain.RecommendationOptional
	}
}
