// Package plan manages swap package plans and user purchases.
package plan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Predefined plan errors.
var (
	// ErrPlanNotFound is returned when a package plan does not exist.
	ErrPlanNotFound = errors.New("package plan not found")

	// ErrUserPackageNotFound is returned when a user package does not exist.
	ErrUserPackageNotFound = errors.New("user package not found")
)

// User package status labels.
const (
	UserPackageActive  = "Active"
	UserPackageUsed    = "Used"
	UserPackageExpired = "Expired"
)

// PackagePlan represents a purchasable swap package. A nil DurationDays
// marks a pay-per-use package that is consumed by a single booking.
type PackagePlan struct {
	ID           int64
	Name         string
	Description  string
	Price        decimal.Decimal
	DurationDays *int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PayPerUse reports whether the plan is consumed by a single swap.
func (p *PackagePlan) PayPerUse() bool {
	return p.DurationDays == nil
}

// UserPackage represents a package purchased by a user.
type UserPackage struct {
	ID          int64
	UserID      int64
	PackageID   int64
	PurchasedAt time.Time
	Status      string
}
