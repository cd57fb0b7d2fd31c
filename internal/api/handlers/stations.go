package handlers

import (
	"log"
	"net/http"

	"ev-route-service/internal/api/dto"
	"ev-route-service/internal/ports"
)

// StationHandler exposes read-only station registry endpoints.
type StationHandler struct {
	Repo ports.StationRepository
}

func (h *StationHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	stations, err := h.Repo.ListStations(r.Context())
	if err != nil {
		log.Printf("list stations failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListStationsResponse{
		Stations: make([]dto.StationResponse, 0, len(stations)),
	}
	for _, s := range stations {
		res.Stations = append(res.Stations, dto.StationResponse{
			StationID:      s.StationID,
			Name:           s.Name,
			Lat:            s.Location.Lat,
			Lon:            s.Location.Lon,
			Address:        s.Address,
			PricePerHour:   s.PricePerHour,
			AvailableSlots: s.AvailableSlots,
			TotalPorts:     s.TotalPorts,
			Status:         s.Status,
			Amenities:      s.Amenities,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
