package station

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

// NewPostgresRepository creates a new PostgreSQL station repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const stationColumns = `
	station_id, station_name, address, contact, latitude, longitude,
	opening_hours, slots, station_status, created_at, updated_at
`

// Get retrieves a station by ID.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (*Station, error) {
	query := `SELECT ` + stationColumns + ` FROM stations WHERE station_id = $1`

	var s Station
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.Name,
		&s.Address,
		&s.Contact,
		&s.Latitude,
		&s.Longitude,
		&s.OpeningHours,
		&s.Slots,
		&s.Status,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStationNotFound
		}
		return nil, err
	}

	return &s, nil
}

// List retrieves all stations ordered by ID.
func (r *PostgresRepository) List(ctx context.Context) ([]*Station, error) {
	query := `SELECT ` + stationColumns + ` FROM stations ORDER BY station_id`
	return r.queryStations(ctx, query)
}

// ListByStatus retrieves all stations with the given status.
func (r *PostgresRepository) ListByStatus(ctx context.Context, status Status) ([]*Station, error) {
	query := `SELECT ` + stationColumns + ` FROM stations WHERE station_status = $1 ORDER BY station_id`
	return r.queryStations(ctx, query, status)
}

func (r *PostgresRepository) queryStations(ctx context.Context, query string, args ...interface{}) ([]*Station, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []*Station
	for rows.Next() {
		var s Station
		err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Address,
			&s.Contact,
			&s.Latitude,
			&s.Longitude,
			&s.OpeningHours,
			&s.Slots,
			&s.Status,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		stations = append(stations, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stations, nil
}

// Create creates a new station and assigns its ID.
func (r *PostgresRepository) Create(ctx context.Context, s *Station) error {
	query := `
		INSERT INTO stations (station_name, address, contact, latitude, longitude,
			opening_hours, slots, station_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING station_id
	`

	return r.pool.QueryRow(ctx, query,
		s.Name,
		s.Address,
		s.Contact,
		s.Latitude,
		s.Longitude,
		s.OpeningHours,
		s.Slots,
		s.Status,
		s.CreatedAt,
		s.UpdatedAt,
	).Scan(&s.ID)
}

// Update updates an existing station.
func (r *PostgresRepository) Update(ctx context.Context, s *Station) error {
	query := `
		UPDATE stations SET
			station_name = $2,
			address = $3,
			contact = $4,
			latitude = $5,
			longitude = $6,
			opening_hours = $7,
			slots = $8,
			station_status = $9,
			updated_at = $10
		WHERE station_id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		s.ID,
		s.Name,
		s.Address,
		s.Contact,
		s.Latitude,
		s.Longitude,
		s.OpeningHours,
		s.Slots,
		s.Status,
		s.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrStationNotFound
	}

	return nil
}

// UpdateStatus sets only the stored status of a station.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	query := `UPDATE stations SET station_status = $2, updated_at = now() WHERE station_id = $1`

	result, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrStationNotFound
	}

	return nil
}

// Delete deletes a station.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM stations WHERE station_id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrStationNotFound
	}

	return nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
