package vehicle

import "context"

// Repository defines the interface for vehicle persistence.
type Repository interface {
	// Get retrieves a vehicle by ID.
	Get(ctx context.Context, id int64) (*Vehicle, error)

	// ListByUser retrieves all vehicles of a user ordered by ID.
	ListByUser(ctx context.Context, userID int64) ([]*Vehicle, error)

	// Create creates a new vehicle and assigns its ID.
	Create(ctx context.Context, v *Vehicle) error

	// Update updates an existing vehicle.
	Update(ctx context.Context, v *Vehicle) error

	// Delete deletes a vehicle.
	Delete(ctx context.Context, id int64) error
}
