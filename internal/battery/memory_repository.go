package battery

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use the PostgreSQL implementation.
type InMemoryRepository struct {
	mu        sync.RWMutex
	batteries map[int64]*Battery
	nextID    int64
}

// NewInMemoryRepository creates a new in-memory battery repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		batteries: make(map[int64]*Battery),
		nextID:    1,
	}
}

// Get retrieves a battery by ID.
func (r *InMemoryRepository) Get(_ context.Context, id int64) (*Battery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.batteries[id]
	if !ok {
		return nil, ErrBatteryNotFound
	}
	return copyBattery(b), nil
}

// List retrieves all batteries ordered by ID.
func (r *InMemoryRepository) List(_ context.Context) ([]*Battery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	batteries := make([]*Battery, 0, len(r.batteries))
	for _, b := range r.batteries {
		batteries = append(batteries, copyBattery(b))
	}
	sortBatteries(batteries)
	return batteries, nil
}

// ListByStation retrieves all batteries assigned to a station, ordered by ID.
func (r *InMemoryRepository) ListByStation(_ context.Context, stationID int64) ([]*Battery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var batteries []*Battery
	for _, b := range r.batteries {
		if b.StationID != nil && *b.StationID == stationID {
			batteries = append(batteries, copyBattery(b))
		}
	}
	sortBatteries(batteries)
	return batteries, nil
}

// ListByChargeStatus retrieves all batteries with the given charge status,
// ordered by ID.
func (r *InMemoryRepository) ListByChargeStatus(_ context.Context, status string) ([]*Battery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var batteries []*Battery
	for _, b := range r.batteries {
		if b.Status == status {
			batteries = append(batteries, copyBattery(b))
		}
	}
	sortBatteries(batteries)
	return batteries, nil
}

// CountByChargeStatus counts the fleet per exact charge-status label.
func (r *InMemoryRepository) CountByChargeStatus(_ context.Context) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int64)
	for _, b := range r.batteries {
		counts[b.Status]++
	}
	return counts, nil
}

// Create creates a new battery and assigns its ID.
func (r *InMemoryRepository) Create(_ context.Context, b *Battery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = r.nextID
	r.nextID++
	r.batteries[b.ID] = copyBattery(b)
	return nil
}

// Update updates an existing battery and bumps its version.
func (r *InMemoryRepository) Update(_ context.Context, b *Battery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.batteries[b.ID]
	if !ok {
		return ErrBatteryNotFound
	}
	updated := copyBattery(b)
	updated.Version = stored.Version + 1
	r.batteries[b.ID] = updated
	b.Version = updated.Version
	return nil
}

// UpdateBorrowStatus sets the borrow status of a battery guarded by its
// version counter.
func (r *InMemoryRepository) UpdateBorrowStatus(_ context.Context, id, expectedVersion int64, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.batteries[id]
	if !ok {
		return ErrBatteryNotFound
	}
	if b.Version != expectedVersion {
		return ErrVersionConflict
	}
	b.BorrowStatus = status
	b.Version++
	b.UpdatedAt = time.Now()
	return nil
}

// Delete deletes a battery.
func (r *InMemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.batteries[id]; !ok {
		return ErrBatteryNotFound
	}
	delete(r.batteries, id)
	return nil
}

func sortBatteries(batteries []*Battery) {
	sort.Slice(batteries, func(i, j int) bool { return batteries[i].ID < batteries[j].ID })
}

// copyBattery creates a deep copy of a battery.
func copyBattery(b *Battery) *Battery {
	if b == nil {
		return nil
	}

	batteryCopy := *b
	if b.StationID != nil {
		stationID := *b.StationID
		batteryCopy.StationID = &stationID
	}
	return &batteryCopy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
