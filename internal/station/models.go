// Package station provides station management and the inventory-health model.
package station

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Repository errors.
var (
	ErrStationNotFound = errors.New("station not found")
)

// Status is the operational status of a station. The set is closed: values
// outside the five canonical ones are rejected at parse time rather than
// matched loosely at read time.
type Status string

const (
	StatusActive      Status = "Active"
	StatusLimited     Status = "Limited"
	StatusCritical    Status = "Critical"
	StatusMaintenance Status = "Maintenance"
	StatusOffline     Status = "Offline"
)

// allStatuses lists every canonical status value.
var allStatuses = []Status{
	StatusActive,
	StatusLimited,
	StatusCritical,
	StatusMaintenance,
	StatusOffline,
}

// Serviceable reports whether a station in this status can still serve swaps.
// Maintenance and Offline stations are closed to drivers.
func (s Status) Serviceable() bool {
	switch s {
	case StatusActive, StatusLimited, StatusCritical:
		return true
	default:
		return false
	}
}

// Valid reports whether s is one of the canonical status values.
func (s Status) Valid() bool {
	for _, v := range allStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// String returns the canonical serialization.
func (s Status) String() string { return string(s) }

// ParseStatus parses a status string case-insensitively into its canonical
// form. Unknown values are an error.
func ParseStatus(raw string) (Status, error) {
	for _, v := range allStatuses {
		if strings.EqualFold(raw, string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown station status %q", raw)
}

// Station represents a battery-swap station.
type Station struct {
	ID           int64
	Name         string
	Address      string
	Contact      string
	Latitude     *float64
	Longitude    *float64
	OpeningHours string
	Slots        int
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
