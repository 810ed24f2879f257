package plan

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use the PostgreSQL implementation.
type InMemoryRepository struct {
	mu           sync.RWMutex
	plans        map[int64]*PackagePlan
	userPackages map[int64]*UserPackage
	nextPlanID   int64
	nextUserID   int64
}

// NewInMemoryRepository creates a new in-memory plan repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		plans:        make(map[int64]*PackagePlan),
		userPackages: make(map[int64]*UserPackage),
		nextPlanID:   1,
		nextUserID:   1,
	}
}

// Get retrieves a package plan by ID.
func (r *InMemoryRepository) Get(_ context.Context, id int64) (*PackagePlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plans[id]
	if !ok {
		return nil, ErrPlanNotFound
	}
	return copyPlan(p), nil
}

// List retrieves all package plans ordered by ID.
func (r *InMemoryRepository) List(_ context.Context) ([]*PackagePlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plans := make([]*PackagePlan, 0, len(r.plans))
	for _, p := range r.plans {
		plans = append(plans, copyPlan(p))
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].ID < plans[j].ID })
	return plans, nil
}

// Create creates a new package plan and assigns its ID.
func (r *InMemoryRepository) Create(_ context.Context, p *PackagePlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = r.nextPlanID
	r.nextPlanID++
	r.plans[p.ID] = copyPlan(p)
	return nil
}

// Update updates an existing package plan.
func (r *InMemoryRepository) Update(_ context.Context, p *PackagePlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plans[p.ID]; !ok {
		return ErrPlanNotFound
	}
	r.plans[p.ID] = copyPlan(p)
	return nil
}

// Delete deletes a package plan.
func (r *InMemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plans[id]; !ok {
		return ErrPlanNotFound
	}
	delete(r.plans, id)
	return nil
}

// GetUserPackage retrieves a user package by ID.
func (r *InMemoryRepository) GetUserPackage(_ context.Context, id int64) (*UserPackage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	up, ok := r.userPackages[id]
	if !ok {
		return nil, ErrUserPackageNotFound
	}
	userPackageCopy := *up
	return &userPackageCopy, nil
}

// ListUserPackages retrieves all packages of a user ordered by ID.
func (r *InMemoryRepository) ListUserPackages(_ context.Context, userID int64) ([]*UserPackage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var packages []*UserPackage
	for _, up := range r.userPackages {
		if up.UserID == userID {
			userPackageCopy := *up
			packages = append(packages, &userPackageCopy)
		}
	}
	sort.Slice(packages, func(i, j int) bool { return packages[i].ID < packages[j].ID })
	return packages, nil
}

// CreateUserPackage creates a new user package and assigns its ID.
func (r *InMemoryRepository) CreateUserPackage(_ context.Context, up *UserPackage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	up.ID = r.nextUserID
	r.nextUserID++
	userPackageCopy := *up
	r.userPackages[up.ID] = &userPackageCopy
	return nil
}

// MarkUsed flips an Active user package to Used.
func (r *InMemoryRepository) MarkUsed(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	up, ok := r.userPackages[id]
	if !ok || up.Status != UserPackageActive {
		return ErrUserPackageNotFound
	}
	up.Status = UserPackageUsed
	return nil
}

// copyPlan creates a deep copy of a package plan.
func copyPlan(p *PackagePlan) *PackagePlan {
	if p == nil {
		return nil
	}

	planCopy := *p
	if p.DurationDays != nil {
		days := *p.DurationDays
		planCopy.DurationDays = &days
	}
	return &planCopy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
