package vehicle

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use the PostgreSQL implementation.
type InMemoryRepository struct {
	mu       sync.RWMutex
	vehicles map[int64]*Vehicle
	nextID   int64
}

// NewInMemoryRepository creates a new in-memory vehicle repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		vehicles: make(map[int64]*Vehicle),
		nextID:   1,
	}
}

// Get retrieves a vehicle by ID.
func (r *InMemoryRepository) Get(_ context.Context, id int64) (*Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.vehicles[id]
	if !ok {
		return nil, ErrVehicleNotFound
	}
	return copyVehicle(v), nil
}

// ListByUser retrieves all vehicles of a user ordered by ID.
func (r *InMemoryRepository) ListByUser(_ context.Context, userID int64) ([]*Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var vehicles []*Vehicle
	for _, v := range r.vehicles {
		if v.UserID == userID {
			vehicles = append(vehicles, copyVehicle(v))
		}
	}
	sort.Slice(vehicles, func(i, j int) bool { return vehicles[i].ID < vehicles[j].ID })
	return vehicles, nil
}

// Create creates a new vehicle and assigns its ID.
func (r *InMemoryRepository) Create(_ context.Context, v *Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v.ID = r.nextID
	r.nextID++
	r.vehicles[v.ID] = copyVehicle(v)
	return nil
}

// Update updates an existing vehicle.
func (r *InMemoryRepository) Update(_ context.Context, v *Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vehicles[v.ID]; !ok {
		return ErrVehicleNotFound
	}
	r.vehicles[v.ID] = copyVehicle(v)
	return nil
}

// Delete deletes a vehicle.
func (r *InMemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vehicles[id]; !ok {
		return ErrVehicleNotFound
	}
	delete(r.vehicles, id)
	return nil
}

// copyVehicle creates a copy of a vehicle.
func copyVehicle(v *Vehicle) *Vehicle {
	if v == nil {
		return nil
	}
	vehicleCopy := *v
	return &vehicleCopy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
