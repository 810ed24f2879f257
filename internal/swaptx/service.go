package swaptx

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/models"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/battery"
)

// BatteryStore is the slice of the battery fleet the return flow needs: it
// looks a battery up and flips its borrow status under optimistic locking.
type BatteryStore interface {
	Get(ctx context.Context, id int64) (*battery.Battery, error)
	UpdateBorrowStatus(ctx context.Context, id, expectedVersion int64, status string) error
}

// Service provides transaction, revenue and battery return operations.
type Service struct {
	repo      Repository
	batteries BatteryStore
	logger    zerolog.Logger
}

// NewService creates a new transaction service.
func NewService(repo Repository, batteries BatteryStore, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		batteries: batteries,
		logger:    logger.With().Str("component", "swaptx").Logger(),
	}
}

// Get retrieves a transaction by ID.
func (s *Service) Get(ctx context.Context, id int64) (*models.SwapTransaction, error) {
	tx, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toAPITransaction(tx)
	return &result, nil
}

// ListByStation retrieves a station's transactions.
func (s *Service) ListByStation(ctx context.Context, stationID int64) ([]models.SwapTransaction, error) {
	transactions, err := s.repo.ListByStation(ctx, stationID)
	if err != nil {
		return nil, err
	}
	return toAPITransactions(transactions), nil
}

// Search retrieves a station's transactions matching a customer name, email
// or vehicle VIN fragment.
func (s *Service) Search(ctx context.Context, stationID int64, query string) ([]models.SwapTransaction, error) {
	transactions, err := s.repo.Search(ctx, stationID, query)
	if err != nil {
		return nil, err
	}
	return toAPITransactions(transactions), nil
}

// Create records a new transaction for a station. The transaction starts out
// Borrowed, a missing date defaults to now and the VIN is stored uppercase.
func (s *Service) Create(ctx context.Context, stationID int64, input *models.SwapTransactionCreateRequest) (*models.SwapTransaction, error) {
	amount, err := decimal.NewFromString(input.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", input.Amount, err)
	}

	now := time.Now()
	date := now
	if input.TransactionDate != nil {
		date = time.Time(*input.TransactionDate)
	}

	tx := &SwapTransaction{
		StationID:     stationID,
		Date:          date,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		VehicleVIN:    strings.ToUpper(input.VehicleVIN),
		Amount:        amount,
		Status:        StatusBorrowed,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, err
	}

	result := toAPITransaction(tx)
	return &result, nil
}

// Update replaces a transaction's mutable fields.
func (s *Service) Update(ctx context.Context, id int64, input *models.SwapTransactionCreateRequest) (*models.SwapTransaction, error) {
	tx, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(input.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", input.Amount, err)
	}

	if input.TransactionDate != nil {
		tx.Date = time.Time(*input.TransactionDate)
	}
	tx.CustomerName = input.CustomerName
	tx.CustomerEmail = input.CustomerEmail
	tx.VehicleVIN = strings.ToUpper(input.VehicleVIN)
	tx.Amount = amount
	tx.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, tx); err != nil {
		return nil, err
	}

	result := toAPITransaction(tx)
	return &result, nil
}

// Delete deletes a transaction.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// StationRevenue aggregates a station's revenue, optionally bounded by an
// inclusive date range.
func (s *Service) StationRevenue(ctx context.Context, stationID int64, from, to *time.Time) (*models.StationRevenue, error) {
	rev, err := s.repo.RevenueByStation(ctx, stationID, from, to)
	if err != nil {
		return nil, err
	}

	result := &models.StationRevenue{
		StationID:         stationID,
		TotalRevenue:      rev.Total.String(),
		TotalTransactions: rev.Count,
	}
	if from != nil {
		ts := models.Timestamp(*from)
		result.FromDate = &ts
	}
	if to != nil {
		ts := models.Timestamp(*to)
		result.ToDate = &ts
	}
	return result, nil
}

// TotalRevenue aggregates revenue across all stations.
func (s *Service) TotalRevenue(ctx context.Context) (*models.TotalRevenue, error) {
	rev, err := s.repo.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	return &models.TotalRevenue{
		TotalRevenue:      rev.Total.String(),
		TotalTransactions: rev.Count,
	}, nil
}

// RegisterReturn closes a transaction with a battery return. The transaction
// flips to Returned and the battery becomes borrowable again. Returning
// against an already closed transaction fails with ErrAlreadyReturned.
func (s *Service) RegisterReturn(ctx context.Context, input *models.BatteryReturnRequest) (*models.BatteryReturn, error) {
	tx, err := s.repo.Get(ctx, input.TransactionID)
	if err != nil {
		return nil, err
	}
	if tx.Status == StatusReturned {
		return nil, ErrAlreadyReturned
	}

	b, err := s.batteries.Get(ctx, input.BatteryID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tx.Status = StatusReturned
	tx.ReturnDate = &now
	tx.UpdatedAt = now
	if err := s.repo.Update(ctx, tx); err != nil {
		return nil, err
	}

	if err := s.batteries.UpdateBorrowStatus(ctx, b.ID, b.Version, battery.BorrowStatusAvailable); err != nil {
		s.logger.Warn().
			Err(err).
			Int64("battery_id", b.ID).
			Int64("transaction_id", tx.ID).
			Msg("battery not released on return")
		return nil, err
	}

	ret := &BatteryReturn{
		BatteryID:     input.BatteryID,
		TransactionID: input.TransactionID,
		ReturnDate:    now,
		Customer:      input.Customer,
		Phone:         input.Phone,
		Status:        StatusReturned,
	}
	if err := s.repo.CreateReturn(ctx, ret); err != nil {
		return nil, err
	}

	result := toAPIReturn(ret)
	return &result, nil
}

// ListReturns retrieves all battery returns.
func (s *Service) ListReturns(ctx context.Context) ([]models.BatteryReturn, error) {
	returns, err := s.repo.ListReturns(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]models.BatteryReturn, 0, len(returns))
	for _, ret := range returns {
		items = append(items, toAPIReturn(ret))
	}
	return items, nil
}

func toAPITransaction(tx *SwapTransaction) models.SwapTransaction {
	result := models.SwapTransaction{
		TransactionID:   tx.ID,
		StationID:       tx.StationID,
		TransactionDate: models.Timestamp(tx.Date),
		CustomerName:    tx.CustomerName,
		CustomerEmail:   tx.CustomerEmail,
		VehicleVIN:      tx.VehicleVIN,
		Amount:          tx.Amount.String(),
		Status:          tx.Status,
		CreatedAt:       models.Timestamp(tx.CreatedAt),
		UpdatedAt:       models.Timestamp(tx.UpdatedAt),
	}
	if tx.ReturnDate != nil {
		ts := models.Timestamp(*tx.ReturnDate)
		result.ReturnDate = &ts
	}
	return result
}

func toAPITransactions(transactions []*SwapTransaction) []models.SwapTransaction {
	items := make([]models.SwapTransaction, 0, len(transactions))
	for _, tx := range transactions {
		items = append(items, toAPITransaction(tx))
	}
	return items
}

func toAPIReturn(ret *BatteryReturn) models.BatteryReturn {
	return models.BatteryReturn{
		BatteryID:     ret.BatteryID,
		TransactionID: ret.TransactionID,
		ReturnDate:    models.Timestamp(ret.ReturnDate),
		Customer:      ret.Customer,
		Phone:         ret.Phone,
		Status:        ret.Status,
	}
}
