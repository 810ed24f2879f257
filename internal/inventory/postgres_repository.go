package inventory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/battery"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL inventory repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const inventoryColumns = `
	inventory_id, station_id, slot_number, battery_id, status, created_at, updated_at
`

func scanInventory(row pgx.Row) (*Inventory, error) {
	var inv Inventory
	err := row.Scan(
		&inv.ID,
		&inv.StationID,
		&inv.SlotNumber,
		&inv.BatteryID,
		&inv.Status,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Get retrieves an inventory slot by ID.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (*Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories WHERE inventory_id = $1`

	inv, err := scanInventory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}
	return inv, nil
}

// ListByStation retrieves all slots of a station ordered by inventory ID.
func (r *PostgresRepository) ListByStation(ctx context.Context, stationID int64) ([]*Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories WHERE station_id = $1 ORDER BY inventory_id`

	rows, err := r.pool.Query(ctx, query, stationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inventories []*Inventory
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, err
		}
		inventories = append(inventories, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return inventories, nil
}

// PageByStation retrieves one page of a station's slots joined with battery
// detail, ordered by inventory ID. Empty slots come back with a nil battery.
func (r *PostgresRepository) PageByStation(ctx context.Context, stationID int64, statuses []string, offset, limit int) ([]SlotDetail, error) {
	query := `
		SELECT i.inventory_id, i.station_id, i.slot_number, i.battery_id, i.status,
			i.created_at, i.updated_at,
			b.battery_id, b.battery_name, b.status, b.quantity, b.capacity, b.model,
			b.usage_count, b.battery_type, b.borrow_status, b.station_id, b.version
		FROM inventories i
		LEFT JOIN batteries b ON b.battery_id = i.battery_id
		WHERE i.station_id = $1
			AND ($2::text[] IS NULL OR upper(i.status) = ANY($2))
		ORDER BY i.inventory_id
		OFFSET $3 LIMIT $4
	`

	rows, err := r.pool.Query(ctx, query, stationID, statusArray(statuses), offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []SlotDetail
	for rows.Next() {
		var (
			inv Inventory
			id  *int64

			name, status, model, batteryType, borrowStatus *string
			quantity, capacity, usageCount                 *int
			batteryStation                                 *int64
			version                                        *int64
		)
		err := rows.Scan(
			&inv.ID,
			&inv.StationID,
			&inv.SlotNumber,
			&inv.BatteryID,
			&inv.Status,
			&inv.CreatedAt,
			&inv.UpdatedAt,
			&id,
			&name,
			&status,
			&quantity,
			&capacity,
			&model,
			&usageCount,
			&batteryType,
			&borrowStatus,
			&batteryStation,
			&version,
		)
		if err != nil {
			return nil, err
		}

		detail := SlotDetail{Inventory: inv}
		if id != nil {
			detail.Battery = &battery.Battery{
				ID:           *id,
				Name:         deref(name),
				Status:       deref(status),
				Quantity:     derefInt(quantity),
				Capacity:     derefInt(capacity),
				Model:        deref(model),
				UsageCount:   derefInt(usageCount),
				Type:         deref(batteryType),
				BorrowStatus: deref(borrowStatus),
				StationID:    batteryStation,
				Version:      derefInt64(version),
			}
		}
		details = append(details, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return details, nil
}

// CountByStation counts a station's inventory rows, optionally restricted to
// the given uppercased status labels.
func (r *PostgresRepository) CountByStation(ctx context.Context, stationID int64, statuses []string) (int64, error) {
	query := `
		SELECT COUNT(*) FROM inventories
		WHERE station_id = $1 AND ($2::text[] IS NULL OR upper(status) = ANY($2))
	`

	var count int64
	err := r.pool.QueryRow(ctx, query, stationID, statusArray(statuses)).Scan(&count)
	return count, err
}

// statusArray maps an empty filter to NULL so the SQL predicate collapses.
func statusArray(statuses []string) []string {
	if len(statuses) == 0 {
		return nil
	}
	return statuses
}

// CountByStatusForStation returns a status-label to row-count mapping for
// one station's inventory.
func (r *PostgresRepository) CountByStatusForStation(ctx context.Context, stationID int64) (map[string]int64, error) {
	query := `SELECT status, COUNT(*) FROM inventories WHERE station_id = $1 GROUP BY status`
	return r.queryStatusCounts(ctx, query, stationID)
}

// CountByStatus returns a status-label to row-count mapping across all
// stations.
func (r *PostgresRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	query := `SELECT status, COUNT(*) FROM inventories GROUP BY status`
	return r.queryStatusCounts(ctx, query)
}

func (r *PostgresRepository) queryStatusCounts(ctx context.Context, query string, args ...interface{}) (map[string]int64, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// Create creates a new inventory slot and assigns its ID.
func (r *PostgresRepository) Create(ctx context.Context, inv *Inventory) error {
	query := `
		INSERT INTO inventories (station_id, slot_number, battery_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING inventory_id
	`

	return r.pool.QueryRow(ctx, query,
		inv.StationID,
		inv.SlotNumber,
		inv.BatteryID,
		inv.Status,
		inv.CreatedAt,
		inv.UpdatedAt,
	).Scan(&inv.ID)
}

// Update updates an existing inventory slot.
func (r *PostgresRepository) Update(ctx context.Context, inv *Inventory) error {
	query := `
		UPDATE inventories SET
			station_id = $2,
			slot_number = $3,
			battery_id = $4,
			status = $5,
			updated_at = $6
		WHERE inventory_id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		inv.ID,
		inv.StationID,
		inv.SlotNumber,
		inv.BatteryID,
		inv.Status,
		inv.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrInventoryNotFound
	}

	return nil
}

// Delete deletes an inventory slot.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM inventories WHERE inventory_id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrInventoryNotFound
	}

	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

func derefInt64(i *int64) int64 {
	if i == nil {
		return 0
	}
	return *i
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
