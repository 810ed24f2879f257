package inventory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/battery"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use the PostgreSQL implementation.
// The battery repository is used to resolve the slot-battery join.
type InMemoryRepository struct {
	mu          sync.RWMutex
	inventories map[int64]*Inventory
	nextID      int64
	batteries   battery.Repository
}

// NewInMemoryRepository creates a new in-memory inventory repository.
func NewInMemoryRepository(batteries battery.Repository) *InMemoryRepository {
	return &InMemoryRepository{
		inventories: make(map[int64]*Inventory),
		nextID:      1,
		batteries:   batteries,
	}
}

// Get retrieves an inventory slot by ID.
func (r *InMemoryRepository) Get(_ context.Context, id int64) (*Inventory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, ok := r.inventories[id]
	if !ok {
		return nil, ErrInventoryNotFound
	}
	return copyInventory(inv), nil
}

// ListByStation retrieves all slots of a station ordered by inventory ID.
func (r *InMemoryRepository) ListByStation(_ context.Context, stationID int64) ([]*Inventory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.stationSlotsLocked(stationID), nil
}

func (r *InMemoryRepository) stationSlotsLocked(stationID int64) []*Inventory {
	var inventories []*Inventory
	for _, inv := range r.inventories {
		if inv.StationID == stationID {
			inventories = append(inventories, copyInventory(inv))
		}
	}
	sort.Slice(inventories, func(i, j int) bool { return inventories[i].ID < inventories[j].ID })
	return inventories
}

// PageByStation retrieves one page of a station's slots joined with battery
// detail, ordered by inventory ID.
func (r *InMemoryRepository) PageByStation(ctx context.Context, stationID int64, statuses []string, offset, limit int) ([]SlotDetail, error) {
	r.mu.RLock()
	slots := filterByStatus(r.stationSlotsLocked(stationID), statuses)
	r.mu.RUnlock()

	if offset >= len(slots) {
		return nil, nil
	}
	end := offset + limit
	if end > len(slots) {
		end = len(slots)
	}

	details := make([]SlotDetail, 0, end-offset)
	for _, inv := range slots[offset:end] {
		detail := SlotDetail{Inventory: *inv}
		if inv.BatteryID != nil {
			b, err := r.batteries.Get(ctx, *inv.BatteryID)
			if err != nil && !errors.Is(err, battery.ErrBatteryNotFound) {
				return nil, err
			}
			detail.Battery = b
		}
		details = append(details, detail)
	}
	return details, nil
}

// CountByStation counts a station's inventory rows, optionally restricted to
// the given uppercased status labels.
func (r *InMemoryRepository) CountByStation(_ context.Context, stationID int64, statuses []string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(filterByStatus(r.stationSlotsLocked(stationID), statuses))), nil
}

// filterByStatus keeps slots whose uppercased status label is in the set.
// An empty set keeps everything.
func filterByStatus(slots []*Inventory, statuses []string) []*Inventory {
	if len(statuses) == 0 {
		return slots
	}
	allowed := make(map[string]struct{}, len(statuses))
	for _, s := range statuses {
		allowed[s] = struct{}{}
	}
	var filtered []*Inventory
	for _, inv := range slots {
		if _, ok := allowed[strings.ToUpper(inv.Status)]; ok {
			filtered = append(filtered, inv)
		}
	}
	return filtered
}

// CountByStatusForStation returns a status-label to row-count mapping for
// one station's inventory.
func (r *InMemoryRepository) CountByStatusForStation(_ context.Context, stationID int64) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int64)
	for _, inv := range r.inventories {
		if inv.StationID == stationID {
			counts[inv.Status]++
		}
	}
	return counts, nil
}

// CountByStatus returns a status-label to row-count mapping across all
// stations.
func (r *InMemoryRepository) CountByStatus(_ context.Context) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int64)
	for _, inv := range r.inventories {
		counts[inv.Status]++
	}
	return counts, nil
}

// Create creates a new inventory slot and assigns its ID.
func (r *InMemoryRepository) Create(_ context.Context, inv *Inventory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	inv.ID = r.nextID
	r.nextID++
	r.inventories[inv.ID] = copyInventory(inv)
	return nil
}

// Update updates an existing inventory slot.
func (r *InMemoryRepository) Update(_ context.Context, inv *Inventory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.inventories[inv.ID]; !ok {
		return ErrInventoryNotFound
	}
	r.inventories[inv.ID] = copyInventory(inv)
	return nil
}

// Delete deletes an inventory slot.
func (r *InMemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.inventories[id]; !ok {
		return ErrInventoryNotFound
	}
	delete(r.inventories, id)
	return nil
}

// copyInventory creates a deep copy of an inventory slot.
func copyInventory(inv *Inventory) *Inventory {
	if inv == nil {
		return nil
	}

	inventoryCopy := *inv
	if inv.BatteryID != nil {
		batteryID := *inv.BatteryID
		inventoryCopy.BatteryID = &batteryID
	}
	return &inventoryCopy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
