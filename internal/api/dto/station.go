package dto

type StationResponse struct {
	StationID      string   `json:"station_id"`
	Name           string   `json:"name"`
	Lat            float64  `json:"lat"`
	Lon            float64  `json:"lon"`
	Address        string   `json:"address"`
	PricePerHour   float64  `json:"price_per_hour"`
	AvailableSlots int      `json:"available_slots"`
	TotalPorts     int      `json:"total_ports"`
	Status         string   `json:"status"`
	Amenities      []string `json:"amenities"`
}

type ListStationsResponse struct {
	Stations []StationResponse `json:"stations"`
}
