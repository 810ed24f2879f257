package models

// Vehicle represents a driver's registered vehicle.
type Vehicle struct {
	VehicleID           int64  `json:"vehicleId"`
	UserID              int64  `json:"userId"`
	VIN                 string `json:"vin"`
	VehicleModel        string `json:"vehicleModel"`
	BatteryType         string `json:"batteryType"`
	RegisterInformation string `json:"registerInformation,omitempty"`
}

// VehicleCreateRequest is the body for creating or updating a vehicle.
type VehicleCreateRequest struct {
	UserID              int64  `json:"userId"`
	VIN                 string `json:"vin"`
	VehicleModel        string `json:"vehicleModel"`
	BatteryType         string `json:"batteryType"`
	RegisterInformation string `json:"registerInformation"`
}
