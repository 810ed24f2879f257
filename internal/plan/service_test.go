package plan

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/models"
)

func intPtr(i int) *int { return &i }

func seedPlan(t *testing.T, repo *InMemoryRepository, name, price string, durationDays *int) *PackagePlan {
	t.Helper()
	p := &PackagePlan{
		Name:         name,
		Price:        decimal.RequireFromString(price),
		DurationDays: durationDays,
	}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return p
}

func TestService_Create_RejectsBadPrice(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	_, err := svc.Create(context.Background(), &models.PackagePlanCreateRequest{
		PackageName: "Basic",
		Price:       "not-a-number",
	})
	if err == nil {
		t.Fatal("Create() expected error for invalid price")
	}
}

func TestService_Create_PreservesPricePrecision(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	created, err := svc.Create(context.Background(), &models.PackagePlanCreateRequest{
		PackageName: "Basic",
		Price:       "19.90",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Price != "19.9" && created.Price != "19.90" {
		t.Errorf("Price = %q, want 19.90", created.Price)
	}
}

func TestPackagePlan_PayPerUse(t *testing.T) {
	payPerUse := &PackagePlan{DurationDays: nil}
	if !payPerUse.PayPerUse() {
		t.Error("PayPerUse() = false for nil duration, want true")
	}

	monthly := &PackagePlan{DurationDays: intPtr(30)}
	if monthly.PayPerUse() {
		t.Error("PayPerUse() = true for 30-day duration, want false")
	}
}

func TestService_Purchase(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	p := seedPlan(t, repo, "Monthly", "49.00", intPtr(30))

	up, err := svc.Purchase(ctx, &models.UserPackagePurchaseRequest{UserID: 7, PackageID: p.ID})
	if err != nil {
		t.Fatalf("Purchase() error = %v", err)
	}
	if up.Status != UserPackageActive {
		t.Errorf("Status = %q, want %q", up.Status, UserPackageActive)
	}
	if up.RemainingDays == nil || *up.RemainingDays != 30 {
		t.Errorf("RemainingDays = %v, want 30", up.RemainingDays)
	}
}

func TestService_Purchase_UnknownPlan(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	_, err := svc.Purchase(context.Background(), &models.UserPackagePurchaseRequest{UserID: 7, PackageID: 99})
	if !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("Purchase() error = %v, want ErrPlanNotFound", err)
	}
}

func TestRepository_MarkUsed(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	up := &UserPackage{UserID: 7, PackageID: 1, Status: UserPackageActive}
	if err := repo.CreateUserPackage(ctx, up); err != nil {
		t.Fatalf("CreateUserPackage() error = %v", err)
	}

	if err := repo.MarkUsed(ctx, up.ID); err != nil {
		t.Fatalf("MarkUsed() error = %v", err)
	}

	stored, err := repo.GetUserPackage(ctx, up.ID)
	if err != nil {
		t.Fatalf("GetUserPackage() error = %v", err)
	}
	if stored.Status != UserPackageUsed {
		t.Errorf("Status = %q, want %q", stored.Status, UserPackageUsed)
	}

	// A second consume attempt finds no Active package.
	if err := repo.MarkUsed(ctx, up.ID); !errors.Is(err, ErrUserPackageNotFound) {
		t.Errorf("MarkUsed() second call error = %v, want ErrUserPackageNotFound", err)
	}
}
