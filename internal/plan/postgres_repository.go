package plan

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

// NewPostgresRepository creates a new PostgreSQL plan repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const planColumns = `
	package_id, package_name, description, price, duration_days, created_at, updated_at
`

func scanPlan(row pgx.Row) (*PackagePlan, error) {
	var p PackagePlan
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.DurationDays,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Get retrieves a package plan by ID.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (*PackagePlan, error) {
	query := `SELECT ` + planColumns + ` FROM package_plans WHERE package_id = $1`

	p, err := scanPlan(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return p, nil
}

// List retrieves all package plans ordered by ID.
func (r *PostgresRepository) List(ctx context.Context) ([]*PackagePlan, error) {
	query := `SELECT ` + planColumns + ` FROM package_plans ORDER BY package_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*PackagePlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

// Create creates a new package plan and assigns its ID.
func (r *PostgresRepository) Create(ctx context.Context, p *PackagePlan) error {
	query := `
		INSERT INTO package_plans (package_name, description, price, duration_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING package_id
	`

	return r.pool.QueryRow(ctx, query,
		p.Name,
		p.Description,
		p.Price,
		p.DurationDays,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&p.ID)
}

// Update updates an existing package plan.
func (r *PostgresRepository) Update(ctx context.Context, p *PackagePlan) error {
	query := `
		UPDATE package_plans SET
			package_name = $2,
			description = $3,
			price = $4,
			duration_days = $5,
			updated_at = $6
		WHERE package_id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.Price,
		p.DurationDays,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrPlanNotFound
	}

	return nil
}

// Delete deletes a package plan.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM package_plans WHERE package_id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrPlanNotFound
	}

	return nil
}

const userPackageColumns = `
	user_package_id, user_id, package_id, purchased_at, status
`

// GetUserPackage retrieves a user package by ID.
func (r *PostgresRepository) GetUserPackage(ctx context.Context, id int64) (*UserPackage, error) {
	query := `SELECT ` + userPackageColumns + ` FROM user_packages WHERE user_package_id = $1`

	var up UserPackage
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&up.ID,
		&up.UserID,
		&up.PackageID,
		&up.PurchasedAt,
		&up.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserPackageNotFound
		}
		return nil, err
	}
	return &up, nil
}

// ListUserPackages retrieves all packages of a user ordered by ID.
func (r *PostgresRepository) ListUserPackages(ctx context.Context, userID int64) ([]*UserPackage, error) {
	query := `SELECT ` + userPackageColumns + ` FROM user_packages WHERE user_id = $1 ORDER BY user_package_id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var packages []*UserPackage
	for rows.Next() {
		var up UserPackage
		err := rows.Scan(&up.ID, &up.UserID, &up.PackageID, &up.PurchasedAt, &up.Status)
		if err != nil {
			return nil, err
		}
		packages = append(packages, &up)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return packages, nil
}

// CreateUserPackage creates a new user package and assigns its ID.
func (r *PostgresRepository) CreateUserPackage(ctx context.Context, up *UserPackage) error {
	query := `
		INSERT INTO user_packages (user_id, package_id, purchased_at, status)
		VALUES ($1, $2, $3, $4)
		RETURNING user_package_id
	`

	return r.pool.QueryRow(ctx, query,
		up.UserID,
		up.PackageID,
		up.PurchasedAt,
		up.Status,
	).Scan(&up.ID)
}

// MarkUsed flips an Active user package to Used.
func (r *PostgresRepository) MarkUsed(ctx context.Context, id int64) error {
	query := `UPDATE user_packages SET status = $2 WHERE user_package_id = $1 AND status = $3`

	result, err := r.pool.Exec(ctx, query, id, UserPackageUsed, UserPackageActive)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrUserPackageNotFound
	}

	return nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
