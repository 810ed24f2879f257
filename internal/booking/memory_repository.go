package booking

import (
	"context"
	"sort"
	"sync"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/battery"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/plan"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use the PostgreSQL
// implementation. Allocation composes the battery and plan repositories and
// compensates completed steps when a later one fails.
type InMemoryRepository struct {
	mu       sync.Mutex
	bookings map[int64]*Booking
	nextID   int64

	batteries battery.Repository
	plans     plan.Repository
}

// NewInMemoryRepository creates a new in-memory booking repository.
func NewInMemoryRepository(batteries battery.Repository, plans plan.Repository) *InMemoryRepository {
	return &InMemoryRepository{
		bookings:  make(map[int64]*Booking),
		nextID:    1,
		batteries: batteries,
		plans:     plans,
	}
}

// Get retrieves a booking by ID.
func (r *InMemoryRepository) Get(_ context.Context, id int64) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	bookingCopy := *b
	return &bookingCopy, nil
}

// ListByUser retrieves all bookings of a user ordered by ID.
func (r *InMemoryRepository) ListByUser(_ context.Context, userID int64) ([]*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var bookings []*Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			bookingCopy := *b
			bookings = append(bookings, &bookingCopy)
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID < bookings[j].ID })
	return bookings, nil
}

// Allocate applies one successful match. The battery flip goes first; when
// the pay-per-use consumption fails afterwards the flip and the booking are
// rolled back by compensation.
func (r *InMemoryRepository) Allocate(ctx context.Context, req *AllocationRequest) error {
	err := r.batteries.UpdateBorrowStatus(ctx, req.BatteryID, req.BatteryVersion, battery.BorrowStatusNotAvailable)
	if err != nil {
		return err
	}

	r.mu.Lock()
	b := req.Booking
	b.ID = r.nextID
	r.nextID++
	bookingCopy := *b
	r.bookings[b.ID] = &bookingCopy
	r.mu.Unlock()

	if req.MarkPackageUsed {
		if err := r.plans.MarkUsed(ctx, req.UserPackageID); err != nil {
			r.mu.Lock()
			delete(r.bookings, b.ID)
			r.mu.Unlock()
			// The flip bumped the version, so compensate with the new one.
			_ = r.batteries.UpdateBorrowStatus(ctx, req.BatteryID, req.BatteryVersion+1, battery.BorrowStatusAvailable)
			return err
		}
	}

	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
