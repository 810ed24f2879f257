package plan

import "context"

// Repository defines the interface for plan and user-package persistence.
type Repository interface {
	// Get retrieves a package plan by ID.
	Get(ctx context.Context, id int64) (*PackagePlan, error)

	// List retrieves all package plans ordered by ID.
	List(ctx context.Context) ([]*PackagePlan, error)

	// Create creates a new package plan and assigns its ID.
	Create(ctx context.Context, p *PackagePlan) error

	// Update updates an existing package plan.
	Update(ctx context.Context, p *PackagePlan) error

	// Delete deletes a package plan.
	Delete(ctx context.Context, id int64) error

	// GetUserPackage retrieves a user package by ID.
	GetUserPackage(ctx context.Context, id int64) (*UserPackage, error)

	// ListUserPackages retrieves all packages of a user ordered by ID.
	ListUserPackages(ctx context.Context, userID int64) ([]*UserPackage, error)

	// CreateUserPackage creates a new user package and assigns its ID.
	CreateUserPackage(ctx context.Context, up *UserPackage) error

	// MarkUsed flips an Active user package to Used. Returns
	// ErrUserPackageNotFound when the package does not exist or is not
	// Active anymore.
	MarkUsed(ctx context.Context, id int64) error
}
