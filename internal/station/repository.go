package station

import "context"

// Repository defines the interface for station persistence.
type Repository interface {
	// Get retrieves a station by ID.
	Get(ctx context.Context, id int64) (*Station, error)

	// List retrieves all stations ordered by ID.
	List(ctx context.Context) ([]*Station, error)

	// ListByStatus retrieves all stations with the given status.
	ListByStatus(ctx context.Context, status Status) ([]*Station, error)

	// Create creates a new station and assigns its ID.
	Create(ctx context.Context, s *Station) error

	// Update updates an existing station.
	Update(ctx context.Context, s *Station) error

	// UpdateStatus sets only the stored status of a station.
	UpdateStatus(ctx context.Context, id int64, status Status) error

	// Delete deletes a station.
	Delete(ctx context.Context, id int64) error
}
