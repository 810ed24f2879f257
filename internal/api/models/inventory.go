package models

// Inventory represents a station inventory slot.
type Inventory struct {
	InventoryID int64  `json:"inventoryId"`
	StationID   int64  `json:"stationId"`
	SlotNumber  int    `json:"slotNumber"`
	BatteryID   *int64 `json:"batteryId"`
	Status      string `json:"status"`
}

// InventoryCreateRequest is the body for creating or updating a slot.
type InventoryCreateRequest struct {
	StationID  int64  `json:"stationId"`
	SlotNumber int    `json:"slotNumber"`
	BatteryID  *int64 `json:"batteryId"`
	Status     string `json:"status"`
}

// InventoryStatusCount is one status-label bucket with its row count.
type InventoryStatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// StationInventoryItem is an inventory slot joined with its battery detail.
// Battery fields are all null when the slot is empty.
type StationInventoryItem struct {
	InventoryID     int64   `json:"inventoryId"`
	InventoryStatus string  `json:"inventoryStatus"`
	BatteryID       *int64  `json:"batteryId"`
	BatteryName     *string `json:"batteryName"`
	BatteryStatus   *string `json:"batteryStatus"`
	Capacity        *int    `json:"capacity"`
	BatteryType     *string `json:"batteryType"`
	Model           *string `json:"model"`
	UsageCount      *int    `json:"usageCount"`
	BorrowStatus    *string `json:"borrowStatus"`
}

// StationInventoryPage is one page of a station's inventory plus the
// unfiltered station-wide status counters.
type StationInventoryPage struct {
	StationID        int64                  `json:"stationId"`
	StationName      string                 `json:"stationName"`
	StationStatus    string                 `json:"stationStatus"`
	TotalSlots       int                    `json:"totalSlots"`
	TotalInventories int64                  `json:"totalInventories"`
	StatusCounters   map[string]int64       `json:"statusCounters"`
	Page             int                    `json:"page"`
	Size             int                    `json:"size"`
	TotalItems       int64                  `json:"totalItems"`
	TotalPages       int                    `json:"totalPages"`
	Items            []StationInventoryItem `json:"items"`
}
