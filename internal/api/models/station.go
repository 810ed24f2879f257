package models

// Station represents a battery-swap station.
type Station struct {
	StationID    int64     `json:"stationId"`
	StationName  string    `json:"stationName"`
	Address      string    `json:"address"`
	Contact      string    `json:"contact,omitempty"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	OpeningHours string    `json:"openingHours,omitempty"`
	Slots        int       `json:"slots"`
	Status       string    `json:"status"`
	CreatedAt    Timestamp `json:"createdAt"`
	UpdatedAt    Timestamp `json:"updatedAt"`
}

// StationCreateRequest is the body for creating or replacing a station.
type StationCreateRequest struct {
	StationName  string   `json:"stationName"`
	Address      string   `json:"address"`
	Contact      string   `json:"contact"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	OpeningHours string   `json:"openingHours"`
	Slots        int      `json:"slots"`
	Status       *string  `json:"status"`
}

// StationStatusUpdateRequest is the body for PUT /api/stations/{id}/status.
type StationStatusUpdateRequest struct {
	Status string  `json:"status"`
	Note   *string `json:"note"`
}

// StationHealth is the health snapshot of one station.
type StationHealth struct {
	StationID          int64   `json:"stationId"`
	StationName        string  `json:"stationName"`
	Status             string  `json:"status"`
	AvailableBatteries int64   `json:"availableBatteries"`
	TotalBatteries     int64   `json:"totalBatteries"`
	Slots              int     `json:"slots"`
	Utilization        float64 `json:"utilization"`
	Serviceable        bool    `json:"serviceable"`
}

// NearbyStation is a station annotated with its distance from the caller.
type NearbyStation struct {
	StationID   int64   `json:"stationId"`
	StationName string  `json:"stationName"`
	Address     string  `json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DistanceKm  float64 `json:"distanceKm"`
	Status      string  `json:"status"`
}
