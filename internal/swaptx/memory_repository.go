package swaptx

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use the PostgreSQL implementation.
type InMemoryRepository struct {
	mu           sync.RWMutex
	transactions map[int64]*SwapTransaction
	returns      map[int64]*BatteryReturn
	nextTxID     int64
	nextReturnID int64
}

// NewInMemoryRepository creates a new in-memory transaction repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		transactions: make(map[int64]*SwapTransaction),
		returns:      make(map[int64]*BatteryReturn),
		nextTxID:     1,
		nextReturnID: 1,
	}
}

// Get retrieves a transaction by ID.
func (r *InMemoryRepository) Get(_ context.Context, id int64) (*SwapTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tx, ok := r.transactions[id]
	if !ok {
		return nil, ErrTransactionNotFound
	}
	return copyTransaction(tx), nil
}

// ListByStation retrieves a station's transactions ordered by ID.
func (r *InMemoryRepository) ListByStation(_ context.Context, stationID int64) ([]*SwapTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var transactions []*SwapTransaction
	for _, tx := range r.transactions {
		if tx.StationID == stationID {
			transactions = append(transactions, copyTransaction(tx))
		}
	}
	sortTransactions(transactions)
	return transactions, nil
}

// Search retrieves a station's transactions whose customer name, email or
// vehicle VIN contains the query, case-insensitively.
func (r *InMemoryRepository) Search(_ context.Context, stationID int64, query string) ([]*SwapTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(query)
	var transactions []*SwapTransaction
	for _, tx := range r.transactions {
		if tx.StationID != stationID {
			continue
		}
		if strings.Contains(strings.ToLower(tx.CustomerName), needle) ||
			strings.Contains(strings.ToLower(tx.CustomerEmail), needle) ||
			strings.Contains(strings.ToLower(tx.VehicleVIN), needle) {
			transactions = append(transactions, copyTransaction(tx))
		}
	}
	sortTransactions(transactions)
	return transactions, nil
}

// Create creates a new transaction and assigns its ID.
func (r *InMemoryRepository) Create(_ context.Context, tx *SwapTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx.ID = r.nextTxID
	r.nextTxID++
	r.transactions[tx.ID] = copyTransaction(tx)
	return nil
}

// Update updates an existing transaction.
func (r *InMemoryRepository) Update(_ context.Context, tx *SwapTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.transactions[tx.ID]; !ok {
		return ErrTransactionNotFound
	}
	r.transactions[tx.ID] = copyTransaction(tx)
	return nil
}

// Delete deletes a transaction.
func (r *InMemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.transactions[id]; !ok {
		return ErrTransactionNotFound
	}
	delete(r.transactions, id)
	return nil
}

// RevenueByStation sums a station's transaction amounts, optionally bounded
// by an inclusive date range.
func (r *InMemoryRepository) RevenueByStation(_ context.Context, stationID int64, from, to *time.Time) (*Revenue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rev := &Revenue{Total: decimal.Zero}
	for _, tx := range r.transactions {
		if tx.StationID != stationID {
			continue
		}
		if from != nil && tx.Date.Before(*from) {
			continue
		}
		if to != nil && tx.Date.After(*to) {
			continue
		}
		rev.Total = rev.Total.Add(tx.Amount)
		rev.Count++
	}
	return rev, nil
}

// TotalRevenue sums all transaction amounts across stations.
func (r *InMemoryRepository) TotalRevenue(_ context.Context) (*Revenue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rev := &Revenue{Total: decimal.Zero}
	for _, tx := range r.transactions {
		rev.Total = rev.Total.Add(tx.Amount)
		rev.Count++
	}
	return rev, nil
}

// CreateReturn creates a battery return record and assigns its ID.
func (r *InMemoryRepository) CreateReturn(_ context.Context, ret *BatteryReturn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ret.ID = r.nextReturnID
	r.nextReturnID++
	returnCopy := *ret
	r.returns[ret.ID] = &returnCopy
	return nil
}

// ListReturns retrieves all battery returns ordered by ID.
func (r *InMemoryRepository) ListReturns(_ context.Context) ([]*BatteryReturn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	returns := make([]*BatteryReturn, 0, len(r.returns))
	for _, ret := range r.returns {
		returnCopy := *ret
		returns = append(returns, &returnCopy)
	}
	sort.Slice(returns, func(i, j int) bool { return returns[i].ID < returns[j].ID })
	return returns, nil
}

func sortTransactions(transactions []*SwapTransaction) {
	sort.Slice(transactions, func(i, j int) bool { return transactions[i].ID < transactions[j].ID })
}

// copyTransaction creates a deep copy of a transaction.
func copyTransaction(tx *SwapTransaction) *SwapTransaction {
	if tx == nil {
		return nil
	}

	txCopy := *tx
	if tx.ReturnDate != nil {
		ret := *tx.ReturnDate
		txCopy.ReturnDate = &ret
	}
	return &txCopy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
