package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"ev-route-service/internal/api/dto"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/services"
)

// TripPlanner is the planning boundary consumed by the handler, satisfied by
// *services.TripPlanner.
type TripPlanner interface {
	PlanTrip(ctx context.Context, req services.PlanTripRequest) (*domain.TripPlan, error)
}

type TripHandler struct {
	Planner TripPlanner
}

// Plan orchestrates one full planning request: decode, validate, run the
// pipeline, shape the response.
func (h *TripHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanTripRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	origin, err := toEndpoint(req.Origin)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "origin: "+err.Error())
		return
	}
	destination, err := toEndpoint(req.Destination)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "destination: "+err.Error())
		return
	}

	family, err := services.ParseRouteFamily(req.RouteFamily)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	svcReq := services.PlanTripRequest{
		Origin:      origin,
		Destination: destination,
		Vehicle: domain.VehicleConfig{
			CurrentChargePct: req.CurrentChargePct,
			FinalChargePct:   req.FinalChargePct,
			MaxRangeKm:       req.MaxRangeKm,
		},
		Family: family,
	}
	svcReq.Options.AvoidHighways = req.AvoidHighways
	svcReq.Options.AvoidTolls = req.AvoidTolls

	plan, err := h.Planner.PlanTrip(r.Context(), svcReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidVehicleConfig):
			writeError(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrRouteUnavailable):
			log.Printf("plan trip failed: %v", err)
			writeError(w, r, http.StatusBadGateway, "no viable route for the requested endpoints")
		case errors.Is(err, domain.ErrGeocodeUnavailable):
			log.Printf("plan trip failed: %v", err)
			writeError(w, r, http.StatusBadGateway, "could not resolve the requested endpoints")
		default:
			log.Printf("plan trip failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, r, http.StatusOK, toTripPlanResponse(plan))
}

func toEndpoint(e dto.EndpointRequest) (services.Endpoint, error) {
	out := services.Endpoint{
		Text:        strings.TrimSpace(e.Address),
		DisplayName: strings.TrimSpace(e.Name),
	}

	if e.Lat != nil || e.Lon != nil {
		if e.Lat == nil || e.Lon == nil {
			return services.Endpoint{}, errors.New("lat and lon must be provided together")
		}
		out.Location = &domain.Coordinates{Lat: *e.Lat, Lon: *e.Lon}
		return out, nil
	}

	if out.Text == "" {
		return services.Endpoint{}, errors.New("address or coordinates required")
	}
	return out, nil
}

func toTripPlanResponse(plan *domain.TripPlan) dto.TripPlanResponse {
	res := dto.TripPlanResponse{
		DistanceText:    plan.Summary.DistanceText,
		DurationText:    plan.Summary.DurationText,
		TotalDistanceKm: plan.TotalDistanceKm,
		Steps:           make([]dto.TripStepResponse, 0, len(plan.Steps)),
		Overlay:         make([]dto.OverlayPointResponse, 0, len(plan.Overlay)),
	}

	for _, s := range plan.Steps {
		step := dto.TripStepResponse{
			Kind:            s.Kind.String(),
			Name:            s.Name,
			Address:         s.Address,
			Lat:             s.Location.Lat,
			Lon:             s.Location.Lon,
			IsRegistered:    s.IsRegistered,
			DistanceAlongKm: s.DistanceAlongKm,
		}

		// Range annotations apply to stops only.
		if s.Kind == domain.StepStop {
			reachable := s.IsReachable
			remaining := s.RemainingRangeKm
			needs := s.NeedsCharging
			step.IsReachable = &reachable
			step.RemainingRangeKm = &remaining
			step.NeedsCharging = &needs
			step.Recommendation = s.Recommendation.String()
		}

		res.Steps = append(res.Steps, step)
	}

	for _, p := range plan.Overlay {
		res.Overlay = append(res.Overlay, dto.OverlayPointResponse{
			Lat:  p.Location.Lat,
			Lon:  p.Location.Lon,
			Kind: p.Kind,
		})
	}

	return res
}
