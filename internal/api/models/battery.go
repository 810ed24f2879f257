package models

// Battery represents a swappable battery pack.
type Battery struct {
	BatteryID    int64  `json:"batteryId"`
	BatteryName  string `json:"batteryName"`
	Status       string `json:"status"`
	Quantity     int    `json:"quantity"`
	Capacity     int    `json:"capacity"`
	Model        string `json:"model"`
	UsageCount   int    `json:"usageCount"`
	BatteryType  string `json:"batteryType"`
	BorrowStatus string `json:"borrowStatus"`
	StationID    *int64 `json:"stationId"`
}

// BatteryCreateRequest is the body for creating or updating a battery.
type BatteryCreateRequest struct {
	BatteryName  string `json:"batteryName"`
	Status       string `json:"status"`
	Quantity     int    `json:"quantity"`
	Capacity     int    `json:"capacity"`
	Model        string `json:"model"`
	UsageCount   int    `json:"usageCount"`
	BatteryType  string `json:"batteryType"`
	BorrowStatus string `json:"borrowStatus"`
	StationID    *int64 `json:"stationId"`
}

// BatteryStatusCounts summarizes batteries per charge status.
type BatteryStatusCounts struct {
	Full        int64 `json:"full"`
	Charging    int64 `json:"charging"`
	Maintenance int64 `json:"maintenance"`
}
