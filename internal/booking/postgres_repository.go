package booking

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/battery"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/database"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/plan"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL booking repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const bookingColumns = `
	booking_id, user_id, station_id, vehicle_id, battery_id, package_id,
	user_package_id, time_date, status, price, created_at, updated_at
`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.StationID,
		&b.VehicleID,
		&b.BatteryID,
		&b.PackageID,
		&b.UserPackageID,
		&b.TimeDate,
		&b.Status,
		&b.Price,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Get retrieves a booking by ID.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1`

	b, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// ListByUser retrieves all bookings of a user ordered by ID.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY booking_id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}

// Allocate applies one successful match in a single transaction. The battery
// update goes first so a lost optimistic-lock race aborts before the booking
// insert.
func (r *PostgresRepository) Allocate(ctx context.Context, req *AllocationRequest) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `
			UPDATE batteries SET
				borrow_status = $3,
				version = version + 1,
				updated_at = now()
			WHERE battery_id = $1 AND version = $2
		`, req.BatteryID, req.BatteryVersion, battery.BorrowStatusNotAvailable)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return battery.ErrVersionConflict
		}

		b := req.Booking
		err = tx.QueryRow(ctx, `
			INSERT INTO bookings (user_id, station_id, vehicle_id, battery_id,
				package_id, user_package_id, time_date, status, price,
				created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING booking_id
		`,
			b.UserID,
			b.StationID,
			b.VehicleID,
			b.BatteryID,
			b.PackageID,
			b.UserPackageID,
			b.TimeDate,
			b.Status,
			b.Price,
			b.CreatedAt,
			b.UpdatedAt,
		).Scan(&b.ID)
		if err != nil {
			return err
		}

		if req.MarkPackageUsed {
			result, err := tx.Exec(ctx, `
				UPDATE user_packages SET status = $2
				WHERE user_package_id = $1 AND status = $3
			`, req.UserPackageID, plan.UserPackageUsed, plan.UserPackageActive)
			if err != nil {
				return err
			}
			if result.RowsAffected() == 0 {
				return plan.ErrUserPackageNotFound
			}
		}

		return nil
	})
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
