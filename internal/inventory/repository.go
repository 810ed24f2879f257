package inventory

import "context"

// Repository defines the interface for inventory persistence.
type Repository interface {
	// Get retrieves an inventory slot by ID.
	Get(ctx context.Context, id int64) (*Inventory, error)

	// ListByStation retrieves all slots of a station ordered by inventory ID.
	ListByStation(ctx context.Context, stationID int64) ([]*Inventory, error)

	// PageByStation retrieves one page of a station's slots joined with
	// battery detail, ordered by inventory ID. A non-empty statuses slice
	// restricts rows to those whose uppercased status label is in the set.
	PageByStation(ctx context.Context, stationID int64, statuses []string, offset, limit int) ([]SlotDetail, error)

	// CountByStation counts a station's inventory rows, optionally
	// restricted to the given uppercased status labels.
	CountByStation(ctx context.Context, stationID int64, statuses []string) (int64, error)

	// CountByStatusForStation returns a status-label to row-count mapping
	// for one station's inventory, unfiltered by paging.
	CountByStatusForStation(ctx context.Context, stationID int64) (map[string]int64, error)

	// CountByStatus returns a status-label to row-count mapping across all
	// stations.
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// Create creates a new inventory slot and assigns its ID.
	Create(ctx context.Context, inv *Inventory) error

	// Update updates an existing inventory slot.
	Update(ctx context.Context, inv *Inventory) error

	// Delete deletes an inventory slot.
	Delete(ctx context.Context, id int64) error
}
