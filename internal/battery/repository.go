package battery

import "context"

// Repository defines the interface for battery persistence.
type Repository interface {
	// Get retrieves a battery by ID.
	Get(ctx context.Context, id int64) (*Battery, error)

	// List retrieves all batteries ordered by ID.
	List(ctx context.Context) ([]*Battery, error)

	// ListByStation retrieves all batteries assigned to a station, ordered by ID.
	ListByStation(ctx context.Context, stationID int64) ([]*Battery, error)

	// ListByChargeStatus retrieves all batteries with the given charge
	// status, ordered by ID. The comparison is case-sensitive.
	ListByChargeStatus(ctx context.Context, status string) ([]*Battery, error)

	// CountByChargeStatus counts the fleet per exact charge-status label.
	CountByChargeStatus(ctx context.Context) (map[string]int64, error)

	// Create creates a new battery and assigns its ID.
	Create(ctx context.Context, b *Battery) error

	// Update updates an existing battery and bumps its version.
	Update(ctx context.Context, b *Battery) error

	// UpdateBorrowStatus sets the borrow status of a battery if its stored
	// version still equals expectedVersion. Returns ErrVersionConflict when
	// a concurrent writer got there first.
	UpdateBorrowStatus(ctx context.Context, id, expectedVersion int64, status string) error

	// Delete deletes a battery.
	Delete(ctx context.Context, id int64) error
}
