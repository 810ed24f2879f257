package swaptx

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL transaction repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const transactionColumns = `
	transaction_id, station_id, transaction_date, customer_name, customer_email,
	vehicle_vin, amount, status, return_date, created_at, updated_at
`

func scanTransaction(row pgx.Row) (*SwapTransaction, error) {
	var tx SwapTransaction
	err := row.Scan(
		&tx.ID,
		&tx.StationID,
		&tx.Date,
		&tx.CustomerName,
		&tx.CustomerEmail,
		&tx.VehicleVIN,
		&tx.Amount,
		&tx.Status,
		&tx.ReturnDate,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// Get retrieves a transaction by ID.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (*SwapTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM swap_transactions WHERE transaction_id = $1`

	tx, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return tx, nil
}

// ListByStation retrieves a station's transactions ordered by ID.
func (r *PostgresRepository) ListByStation(ctx context.Context, stationID int64) ([]*SwapTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM swap_transactions WHERE station_id = $1 ORDER BY transaction_id`
	return r.queryTransactions(ctx, query, stationID)
}

// Search retrieves a station's transactions whose customer name, email or
// vehicle VIN contains the query, case-insensitively.
func (r *PostgresRepository) Search(ctx context.Context, stationID int64, search string) ([]*SwapTransaction, error) {
	query := `
		SELECT ` + transactionColumns + ` FROM swap_transactions
		WHERE station_id = $1
			AND (customer_name ILIKE $2 OR customer_email ILIKE $2 OR vehicle_vin ILIKE $2)
		ORDER BY transaction_id
	`
	return r.queryTransactions(ctx, query, stationID, "%"+search+"%")
}

func (r *PostgresRepository) queryTransactions(ctx context.Context, query string, args ...interface{}) ([]*SwapTransaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*SwapTransaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}

// Create creates a new transaction and assigns its ID.
func (r *PostgresRepository) Create(ctx context.Context, tx *SwapTransaction) error {
	query := `
		INSERT INTO swap_transactions (station_id, transaction_date, customer_name,
			customer_email, vehicle_vin, amount, status, return_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING transaction_id
	`

	return r.pool.QueryRow(ctx, query,
		tx.StationID,
		tx.Date,
		tx.CustomerName,
		tx.CustomerEmail,
		tx.VehicleVIN,
		tx.Amount,
		tx.Status,
		tx.ReturnDate,
		tx.CreatedAt,
		tx.UpdatedAt,
	).Scan(&tx.ID)
}

// Update updates an existing transaction.
func (r *PostgresRepository) Update(ctx context.Context, tx *SwapTransaction) error {
	query := `
		UPDATE swap_transactions SET
			transaction_date = $2,
			customer_name = $3,
			customer_email = $4,
			vehicle_vin = $5,
			amount = $6,
			status = $7,
			return_date = $8,
			updated_at = $9
		WHERE transaction_id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		tx.ID,
		tx.Date,
		tx.CustomerName,
		tx.CustomerEmail,
		tx.VehicleVIN,
		tx.Amount,
		tx.Status,
		tx.ReturnDate,
		tx.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}

	return nil
}

// Delete deletes a transaction.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM swap_transactions WHERE transaction_id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}

	return nil
}

// RevenueByStation sums a station's transaction amounts, optionally bounded
// by an inclusive date range.
func (r *PostgresRepository) RevenueByStation(ctx context.Context, stationID int64, from, to *time.Time) (*Revenue, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0), COUNT(*) FROM swap_transactions
		WHERE station_id = $1
			AND ($2::timestamptz IS NULL OR transaction_date >= $2)
			AND ($3::timestamptz IS NULL OR transaction_date <= $3)
	`

	var rev Revenue
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, stationID, from, to).Scan(&total, &rev.Count); err != nil {
		return nil, err
	}
	rev.Total = total
	return &rev, nil
}

// TotalRevenue sums all transaction amounts across stations.
func (r *PostgresRepository) TotalRevenue(ctx context.Context) (*Revenue, error) {
	query := `SELECT COALESCE(SUM(amount), 0), COUNT(*) FROM swap_transactions`

	var rev Revenue
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query).Scan(&total, &rev.Count); err != nil {
		return nil, err
	}
	rev.Total = total
	return &rev, nil
}

// CreateReturn creates a battery return record and assigns its ID.
func (r *PostgresRepository) CreateReturn(ctx context.Context, ret *BatteryReturn) error {
	query := `
		INSERT INTO battery_returns (battery_id, transaction_id, return_date, customer, phone, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING return_id
	`

	return r.pool.QueryRow(ctx, query,
		ret.BatteryID,
		ret.TransactionID,
		ret.ReturnDate,
		ret.Customer,
		ret.Phone,
		ret.Status,
	).Scan(&ret.ID)
}

// ListReturns retrieves all battery returns ordered by ID.
func (r *PostgresRepository) ListReturns(ctx context.Context) ([]*BatteryReturn, error) {
	query := `
		SELECT return_id, battery_id, transaction_id, return_date, customer, phone, status
		FROM battery_returns ORDER BY return_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var returns []*BatteryReturn
	for rows.Next() {
		var ret BatteryReturn
		err := rows.Scan(&ret.ID, &ret.BatteryID, &ret.TransactionID, &ret.ReturnDate,
			&ret.Customer, &ret.Phone, &ret.Status)
		if err != nil {
			return nil, err
		}
		returns = append(returns, &ret)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return returns, nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
