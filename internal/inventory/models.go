// Package inventory manages station inventory slots and their aggregates.
package inventory

import (
	"errors"
	"time"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/battery"
)

// ErrInventoryNotFound is returned when an inventory slot does not exist.
var ErrInventoryNotFound = errors.New("inventory not found")

// Paging bounds for station inventory pages.
const (
	// DefaultPageSize is used when the caller does not supply a size.
	DefaultPageSize = 12

	// MaxPageSize caps the page size a caller may request.
	MaxPageSize = 50
)

// ClampPage normalizes a requested page index. Negative pages become 0.
func ClampPage(page int) int {
	if page < 0 {
		return 0
	}
	return page
}

// ClampSize normalizes a requested page size into [1, MaxPageSize].
// Zero and negative sizes fall back to the default.
func ClampSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// Inventory represents one slot row at a station.
type Inventory struct {
	ID         int64
	StationID  int64
	SlotNumber int
	BatteryID  *int64
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SlotDetail is an inventory slot joined with its battery. Battery is nil
// for empty slots.
type SlotDetail struct {
	Inventory Inventory
	Battery   *battery.Battery
}
