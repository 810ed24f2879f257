package station

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use the PostgreSQL implementation.
type InMemoryRepository struct {
	mu       sync.RWMutex
	stations map[int64]*Station
	nextID   int64
}

// NewInMemoryRepository creates a new in-memory station repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		stations: make(map[int64]*Station),
		nextID:   1,
	}
}

// Get retrieves a station by ID.
func (r *InMemoryRepository) Get(_ context.Context, id int64) (*Station, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.stations[id]
	if !ok {
		return nil, ErrStationNotFound
	}
	return copyStation(s), nil
}

// List retrieves all stations ordered by ID.
func (r *InMemoryRepository) List(_ context.Context) ([]*Station, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stations := make([]*Station, 0, len(r.stations))
	for _, s := range r.stations {
		stations = append(stations, copyStation(s))
	}
	sort.Slice(stations, func(i, j int) bool { return stations[i].ID < stations[j].ID })
	return stations, nil
}

// ListByStatus retrieves all stations with the given status.
func (r *InMemoryRepository) ListByStatus(_ context.Context, status Status) ([]*Station, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stations []*Station
	for _, s := range r.stations {
		if s.Status == status {
			stations = append(stations, copyStation(s))
		}
	}
	sort.Slice(stations, func(i, j int) bool { return stations[i].ID < stations[j].ID })
	return stations, nil
}

// Create creates a new station and assigns its ID.
func (r *InMemoryRepository) Create(_ context.Context, s *Station) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.ID = r.nextID
	r.nextID++
	r.stations[s.ID] = copyStation(s)
	return nil
}

// Update updates an existing station.
func (r *InMemoryRepository) Update(_ context.Context, s *Station) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stations[s.ID]; !ok {
		return ErrStationNotFound
	}
	r.stations[s.ID] = copyStation(s)
	return nil
}

// UpdateStatus sets only the stored status of a station.
func (r *InMemoryRepository) UpdateStatus(_ context.Context, id int64, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.stations[id]
	if !ok {
		return ErrStationNotFound
	}
	s.Status = status
	s.UpdatedAt = time.Now()
	return nil
}

// Delete deletes a station.
func (r *InMemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stations[id]; !ok {
		return ErrStationNotFound
	}
	delete(r.stations, id)
	return nil
}

// copyStation creates a deep copy of a station.
func copyStation(s *Station) *Station {
	if s == nil {
		return nil
	}

	stationCopy := *s
	if s.Latitude != nil {
		lat := *s.Latitude
		stationCopy.Latitude = &lat
	}
	if s.Longitude != nil {
		lon := *s.Longitude
		stationCopy.Longitude = &lon
	}
	return &stationCopy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
