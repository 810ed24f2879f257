package booking

import "context"

// Repository defines the interface for booking persistence.
type Repository interface {
	// Get retrieves a booking by ID.
	Get(ctx context.Context, id int64) (*Booking, error)

	// ListByUser retrieves all bookings of a user ordered by ID.
	ListByUser(ctx context.Context, userID int64) ([]*Booking, error)

	// Allocate atomically applies one successful match: inserts the booking,
	// flips the battery borrow status guarded by the battery version, and
	// consumes a pay-per-use package when requested. Returns
	// battery.ErrVersionConflict when a concurrent allocation won the
	// battery; in that case nothing has been written.
	Allocate(ctx context.Context, req *AllocationRequest) error
}
