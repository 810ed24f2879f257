// Package booking implements swap bookings and battery allocation.
package booking

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Predefined booking errors.
var (
	// ErrBookingNotFound is returned when a booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrNoMatch is returned when no battery satisfies the allocation
	// constraints. Nothing has been written when this comes back.
	ErrNoMatch = errors.New("no battery matches the requested type")

	// ErrPackageNotActive is returned when the user package has already
	// been used or expired.
	ErrPackageNotActive = errors.New("user package is not active")

	// ErrPackageOwnerMismatch is returned when the user package belongs to
	// a different user.
	ErrPackageOwnerMismatch = errors.New("user package belongs to another user")

	// ErrAllocationFailed is returned when the allocation transaction could
	// not be completed.
	ErrAllocationFailed = errors.New("battery allocation failed")
)

// Booking status labels.
const (
	StatusConfirmed = "Confirmed"
)

// Booking represents a stored swap booking.
type Booking struct {
	ID            int64
	UserID        int64
	StationID     int64
	VehicleID     int64
	BatteryID     int64
	PackageID     int64
	UserPackageID int64
	TimeDate      time.Time
	Status        string
	Price         decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AllocationRequest bundles the writes of one successful match: the booking
// row, the battery borrow-status flip guarded by the battery's version, and
// the optional pay-per-use package consumption. The repository applies all of
// them in a single transaction or none at all.
type AllocationRequest struct {
	Booking         *Booking
	BatteryID       int64
	BatteryVersion  int64
	MarkPackageUsed bool
	UserPackageID   int64
}
