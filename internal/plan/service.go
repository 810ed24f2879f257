package plan

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/models"
)

// Service provides package plan and user package operations.
type Service struct {
	repo Repository
}

// NewService creates a new plan service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get retrieves a package plan by ID.
func (s *Service) Get(ctx context.Context, id int64) (*models.PackagePlan, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toAPIPlan(p)
	return &result, nil
}

// List retrieves all package plans.
func (s *Service) List(ctx context.Context) ([]models.PackagePlan, error) {
	plans, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]models.PackagePlan, 0, len(plans))
	for _, p := range plans {
		items = append(items, toAPIPlan(p))
	}
	return items, nil
}

// Create creates a new package plan.
func (s *Service) Create(ctx context.Context, input *models.PackagePlanCreateRequest) (*models.PackagePlan, error) {
	price, err := decimal.NewFromString(input.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", input.Price, err)
	}

	now := time.Now()
	p := &PackagePlan{
		Name:         input.PackageName,
		Description:  input.Description,
		Price:        price,
		DurationDays: input.DurationDays,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	result := toAPIPlan(p)
	return &result, nil
}

// Update replaces a package plan's mutable fields.
func (s *Service) Update(ctx context.Context, id int64, input *models.PackagePlanCreateRequest) (*models.PackagePlan, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(input.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", input.Price, err)
	}

	p.Name = input.PackageName
	p.Description = input.Description
	p.Price = price
	p.DurationDays = input.DurationDays
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	result := toAPIPlan(p)
	return &result, nil
}

// Delete deletes a package plan.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Purchase creates an Active user package for a plan.
func (s *Service) Purchase(ctx context.Context, input *models.UserPackagePurchaseRequest) (*models.UserPackage, error) {
	p, err := s.repo.Get(ctx, input.PackageID)
	if err != nil {
		return nil, err
	}

	up := &UserPackage{
		UserID:      input.UserID,
		PackageID:   p.ID,
		PurchasedAt: time.Now(),
		Status:      UserPackageActive,
	}

	if err := s.repo.CreateUserPackage(ctx, up); err != nil {
		return nil, err
	}

	result := s.toAPIUserPackage(up, p)
	return &result, nil
}

// ListUserPackages retrieves all packages of a user.
func (s *Service) ListUserPackages(ctx context.Context, userID int64) ([]models.UserPackage, error) {
	packages, err := s.repo.ListUserPackages(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]models.UserPackage, 0, len(packages))
	for _, up := range packages {
		p, err := s.repo.Get(ctx, up.PackageID)
		if err != nil {
			return nil, err
		}
		items = append(items, s.toAPIUserPackage(up, p))
	}
	return items, nil
}

// toAPIUserPackage converts a user package, computing its remaining days
// from the plan duration. Pay-per-use packages report nil.
func (s *Service) toAPIUserPackage(up *UserPackage, p *PackagePlan) models.UserPackage {
	var remaining *int
	if p.DurationDays != nil {
		elapsed := int(time.Since(up.PurchasedAt).Hours() / 24)
		days := *p.DurationDays - elapsed
		if days < 0 {
			days = 0
		}
		remaining = &days
	}

	return models.UserPackage{
		UserPackageID: up.ID,
		UserID:        up.UserID,
		PackageID:     up.PackageID,
		PurchasedAt:   models.Timestamp(up.PurchasedAt),
		Status:        up.Status,
		RemainingDays: remaining,
	}
}

func toAPIPlan(p *PackagePlan) models.PackagePlan {
	return models.PackagePlan{
		PackageID:    p.ID,
		PackageName:  p.Name,
		Description:  p.Description,
		Price:        p.Price.String(),
		DurationDays: p.DurationDays,
	}
}
