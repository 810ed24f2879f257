package vehicle

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

// NewPostgresRepository creates a new PostgreSQL vehicle repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const vehicleColumns = `
	vehicle_id, user_id, vin, vehicle_model, battery_type, register_information,
	created_at, updated_at
`

func scanVehicle(row pgx.Row) (*Vehicle, error) {
	var v Vehicle
	err := row.Scan(
		&v.ID,
		&v.UserID,
		&v.VIN,
		&v.Model,
		&v.BatteryType,
		&v.RegisterInformation,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Get retrieves a vehicle by ID.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (*Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE vehicle_id = $1`

	v, err := scanVehicle(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return v, nil
}

// ListByUser retrieves all vehicles of a user ordered by ID.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE user_id = $1 ORDER BY vehicle_id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return vehicles, nil
}

// Create creates a new vehicle and assigns its ID.
func (r *PostgresRepository) Create(ctx context.Context, v *Vehicle) error {
	query := `
		INSERT INTO vehicles (user_id, vin, vehicle_model, battery_type,
			register_information, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING vehicle_id
	`

	return r.pool.QueryRow(ctx, query,
		v.UserID,
		v.VIN,
		v.Model,
		v.BatteryType,
		v.RegisterInformation,
		v.CreatedAt,
		v.UpdatedAt,
	).Scan(&v.ID)
}

// Update updates an existing vehicle.
func (r *PostgresRepository) Update(ctx context.Context, v *Vehicle) error {
	query := `
		UPDATE vehicles SET
			user_id = $2,
			vin = $3,
			vehicle_model = $4,
			battery_type = $5,
			register_information = $6,
			updated_at = $7
		WHERE vehicle_id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		v.ID,
		v.UserID,
		v.VIN,
		v.Model,
		v.BatteryType,
		v.RegisterInformation,
		v.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrVehicleNotFound
	}

	return nil
}

// Delete deletes a vehicle.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM vehicles WHERE vehicle_id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrVehicleNotFound
	}

	return nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
