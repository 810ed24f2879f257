// Package swaptx manages per-station swap transactions, revenue aggregation
// and battery returns.
package swaptx

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Predefined transaction errors.
var (
	// ErrTransactionNotFound is returned when a swap transaction does not exist.
	ErrTransactionNotFound = errors.New("swap transaction not found")

	// ErrReturnNotFound is returned when a battery return does not exist.
	ErrReturnNotFound = errors.New("battery return not found")

	// ErrAlreadyReturned is returned when a transaction has already been
	// closed by a return.
	ErrAlreadyReturned = errors.New("battery already returned for this transaction")
)

// Transaction status labels.
const (
	StatusBorrowed = "Borrowed"
	StatusReturned = "Returned"
)

// SwapTransaction is a persisted record of one swap handed out at a station.
type SwapTransaction struct {
	ID            int64
	StationID     int64
	Date          time.Time
	CustomerName  string
	CustomerEmail string
	VehicleVIN    string
	Amount        decimal.Decimal
	Status        string
	ReturnDate    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Revenue is an aggregated amount with its transaction count.
type Revenue struct {
	Total decimal.Decimal
	Count int64
}

// BatteryReturn records a battery handed back against a transaction.
type BatteryReturn struct {
	ID            int64
	BatteryID     int64
	TransactionID int64
	ReturnDate    time.Time
	Customer      string
	Phone         string
	Status        string
}
