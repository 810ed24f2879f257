// Package battery manages the battery fleet and its charge and borrow state.
package battery

import (
	"errors"
	"strings"
	"time"
)

// Predefined battery errors.
var (
	// ErrBatteryNotFound is returned when a battery does not exist.
	ErrBatteryNotFound = errors.New("battery not found")

	// ErrVersionConflict is returned when an optimistic-lock update loses
	// the race against a concurrent writer.
	ErrVersionConflict = errors.New("battery version conflict")
)

// Charge status labels. ChargeStatusFull is compared case-sensitively when
// selecting swap candidates.
const (
	ChargeStatusFull        = "Full"
	ChargeStatusCharging    = "Charging"
	ChargeStatusMaintenance = "Maintenance"
)

// Borrow status labels.
const (
	BorrowStatusAvailable    = "Available"
	BorrowStatusNotAvailable = "Not Available"
)

// Battery represents a physical battery pack in the fleet.
type Battery struct {
	ID           int64
	Name         string
	Status       string
	Quantity     int
	Capacity     int
	Model        string
	UsageCount   int
	Type         string
	BorrowStatus string
	StationID    *int64

	// Version is the optimistic-lock counter, bumped on every write.
	Version int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Borrowable reports whether the battery can be handed out. The stored
// borrow status is matched case-insensitively.
func (b *Battery) Borrowable() bool {
	return strings.EqualFold(b.BorrowStatus, BorrowStatusAvailable)
}

// StatusCounts summarizes the fleet per charge status.
type StatusCounts struct {
	Full        int64
	Charging    int64
	Maintenance int64
}
