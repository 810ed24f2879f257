package battery

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL battery repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const batteryColumns = `
	battery_id, battery_name, status, quantity, capacity, model,
	usage_count, battery_type, borrow_status, station_id, version,
	created_at, updated_at
`

func scanBattery(row pgx.Row) (*Battery, error) {
	var b Battery
	err := row.Scan(
		&b.ID,
		&b.Name,
		&b.Status,
		&b.Quantity,
		&b.Capacity,
		&b.Model,
		&b.UsageCount,
		&b.Type,
		&b.BorrowStatus,
		&b.StationID,
		&b.Version,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Get retrieves a battery by ID.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (*Battery, error) {
	query := `SELECT ` + batteryColumns + ` FROM batteries WHERE battery_id = $1`

	b, err := scanBattery(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBatteryNotFound
		}
		return nil, err
	}
	return b, nil
}

// List retrieves all batteries ordered by ID.
func (r *PostgresRepository) List(ctx context.Context) ([]*Battery, error) {
	query := `SELECT ` + batteryColumns + ` FROM batteries ORDER BY battery_id`
	return r.queryBatteries(ctx, query)
}

// ListByStation retrieves all batteries assigned to a station, ordered by ID.
func (r *PostgresRepository) ListByStation(ctx context.Context, stationID int64) ([]*Battery, error) {
	query := `SELECT ` + batteryColumns + ` FROM batteries WHERE station_id = $1 ORDER BY battery_id`
	return r.queryBatteries(ctx, query, stationID)
}

// ListByChargeStatus retrieves all batteries with the given charge status,
// ordered by ID.
func (r *PostgresRepository) ListByChargeStatus(ctx context.Context, status string) ([]*Battery, error) {
	query := `SELECT ` + batteryColumns + ` FROM batteries WHERE status = $1 ORDER BY battery_id`
	return r.queryBatteries(ctx, query, status)
}

func (r *PostgresRepository) queryBatteries(ctx context.Context, query string, args ...interface{}) ([]*Battery, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batteries []*Battery
	for rows.Next() {
		b, err := scanBattery(rows)
		if err != nil {
			return nil, err
		}
		batteries = append(batteries, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return batteries, nil
}

// CountByChargeStatus counts the fleet per exact charge-status label.
func (r *PostgresRepository) CountByChargeStatus(ctx context.Context) (map[string]int64, error) {
	query := `SELECT status, COUNT(*) FROM batteries GROUP BY status`

	rows, err := r.pool.Query(ctx, query)
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

// Create creates a new battery and assigns its ID.
func (r *PostgresRepository) Create(ctx context.Context, b *Battery) error {
	query := `
		INSERT INTO batteries (battery_name, status, quantity, capacity, model,
			usage_count, battery_type, borrow_status, station_id, version,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING battery_id
	`

	return r.pool.QueryRow(ctx, query,
		b.Name,
		b.Status,
		b.Quantity,
		b.Capacity,
		b.Model,
		b.UsageCount,
		b.Type,
		b.BorrowStatus,
		b.StationID,
		b.Version,
		b.CreatedAt,
		b.UpdatedAt,
	).Scan(&b.ID)
}

// Update updates an existing battery and bumps its version.
func (r *PostgresRepository) Update(ctx context.Context, b *Battery) error {
	query := `
		UPDATE batteries SET
			battery_name = $2,
			status = $3,
			quantity = $4,
			capacity = $5,
			model = $6,
			usage_count = $7,
			battery_type = $8,
			borrow_status = $9,
			station_id = $10,
			version = version + 1,
			updated_at = $11
		WHERE battery_id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		b.ID,
		b.Name,
		b.Status,
		b.Quantity,
		b.Capacity,
		b.Model,
		b.UsageCount,
		b.Type,
		b.BorrowStatus,
		b.StationID,
		b.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrBatteryNotFound
	}

	return nil
}

// UpdateBorrowStatus sets the borrow status of a battery guarded by its
// version column.
func (r *PostgresRepository) UpdateBorrowStatus(ctx context.Context, id, expectedVersion int64, status string) error {
	query := `
		UPDATE batteries SET
			borrow_status = $3,
			version = version + 1,
			updated_at = now()
		WHERE battery_id = $1 AND version = $2
	`

	result, err := r.pool.Exec(ctx, query, id, expectedVersion, status)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		// Distinguish a missing row from a lost optimistic-lock race.
		var exists bool
		if err := r.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM batteries WHERE battery_id = $1)`, id,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrBatteryNotFound
		}
		return ErrVersionConflict
	}

	return nil
}

// Delete deletes a battery.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM batteries WHERE battery_id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrBatteryNotFound
	}

	return nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
