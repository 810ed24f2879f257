package models

// BookingCreateRequest is the body for POST /api/bookings/create.
type BookingCreateRequest struct {
	UserID        int64 `json:"userId"`
	StationID     int64 `json:"stationId"`
	UserPackageID int64 `json:"userPackageId"`
	VehicleID     int64 `json:"vehicleId"`
}

// Booking represents a stored booking row.
type Booking struct {
	BookingID int64     `json:"bookingId"`
	UserID    int64     `json:"userId"`
	StationID int64     `json:"stationId"`
	VehicleID int64     `json:"vehicleId"`
	BatteryID int64     `json:"batteryId"`
	PackageID int64     `json:"packageId"`
	TimeDate  Timestamp `json:"timeDate"`
	Status    string    `json:"status"`
	Price     string    `json:"price"`
}

// BookingDetail is the payload returned after a successful allocation.
type BookingDetail struct {
	BookingID   int64     `json:"bookingId"`
	StationID   int64     `json:"stationId"`
	VehicleID   int64     `json:"vehicleId"`
	BatteryID   int64     `json:"batteryId"`
	BatteryName string    `json:"batteryName"`
	BatteryType string    `json:"batteryType"`
	TimeDate    Timestamp `json:"timeDate"`
	Status      string    `json:"status"`
	Price       string    `json:"price"`
}
