package swaptx

import (
	"context"
	"time"
)

// Repository defines the interface for transaction and return persistence.
type Repository interface {
	// Get retrieves a transaction by ID.
	Get(ctx context.Context, id int64) (*SwapTransaction, error)

	// ListByStation retrieves a station's transactions ordered by ID.
	ListByStation(ctx context.Context, stationID int64) ([]*SwapTransaction, error)

	// Search retrieves a station's transactions whose customer name, email
	// or vehicle VIN contains the query, case-insensitively, ordered by ID.
	Search(ctx context.Context, stationID int64, query string) ([]*SwapTransaction, error)

	// Create creates a new transaction and assigns its ID.
	Create(ctx context.Context, tx *SwapTransaction) error

	// Update updates an existing transaction.
	Update(ctx context.Context, tx *SwapTransaction) error

	// Delete deletes a transaction.
	Delete(ctx context.Context, id int64) error

	// RevenueByStation sums a station's transaction amounts, optionally
	// bounded by an inclusive date range.
	RevenueByStation(ctx context.Context, stationID int64, from, to *time.Time) (*Revenue, error)

	// TotalRevenue sums all transaction amounts across stations.
	TotalRevenue(ctx context.Context) (*Revenue, error)

	// CreateReturn creates a battery return record and assigns its ID.
	CreateReturn(ctx context.Context, ret *BatteryReturn) error

	// ListReturns retrieves all battery returns ordered by ID.
	ListReturns(ctx context.Context) ([]*BatteryReturn, error)
}
