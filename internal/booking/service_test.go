package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/models"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/battery"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/plan"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/station"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/vehicle"
)

type fixture struct {
	svc       *Service
	stations  *station.InMemoryRepository
	batteries *battery.InMemoryRepository
	vehicles  *vehicle.InMemoryRepository
	plans     *plan.InMemoryRepository
	bookings  *InMemoryRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	stations := station.NewInMemoryRepository()
	batteries := battery.NewInMemoryRepository()
	vehicles := vehicle.NewInMemoryRepository()
	plans := plan.NewInMemoryRepository()
	bookings := NewInMemoryRepository(batteries, plans)

	svc := NewService(ServiceConfig{
		Repo:      bookings,
		Stations:  stations,
		Batteries: batteries,
		Vehicles:  vehicles,
		Packages:  plans,
		Logger:    zerolog.Nop(),
	})

	return &fixture{
		svc:       svc,
		stations:  stations,
		batteries: batteries,
		vehicles:  vehicles,
		plans:     plans,
		bookings:  bookings,
	}
}

// seedSwapSetup creates a station, a vehicle for user 7, an active
// pay-per-use package, and one matching Full battery. Returns the request
// that should succeed.
func (f *fixture) seedSwapSetup(t *testing.T) *models.BookingCreateRequest {
	t.Helper()
	ctx := context.Background()

	st := &station.Station{Name: "Central", Address: "1 Main St", Slots: 10, Status: station.StatusActive}
	if err := f.stations.Create(ctx, st); err != nil {
		t.Fatalf("station Create() error = %v", err)
	}

	v := &vehicle.Vehicle{UserID: 7, VIN: "VIN123", Model: "EV-1", BatteryType: "Extended (90 kWh)"}
	if err := f.vehicles.Create(ctx, v); err != nil {
		t.Fatalf("vehicle Create() error = %v", err)
	}

	p := &plan.PackagePlan{Name: "PayPerUse", Price: decimal.RequireFromString("12.50")}
	if err := f.plans.Create(ctx, p); err != nil {
		t.Fatalf("plan Create() error = %v", err)
	}
	up := &plan.UserPackage{UserID: 7, PackageID: p.ID, Status: plan.UserPackageActive}
	if err := f.plans.CreateUserPackage(ctx, up); err != nil {
		t.Fatalf("CreateUserPackage() error = %v", err)
	}

	b := &battery.Battery{
		Name:         "B-1",
		Status:       battery.ChargeStatusFull,
		Capacity:     90,
		Type:         " Extended(90 kWh) ",
		BorrowStatus: battery.BorrowStatusAvailable,
		StationID:    &st.ID,
	}
	if err := f.batteries.Create(ctx, b); err != nil {
		t.Fatalf("battery Create() error = %v", err)
	}

	return &models.BookingCreateRequest{
		UserID:        7,
		StationID:     st.ID,
		UserPackageID: up.ID,
		VehicleID:     v.ID,
	}
}

func TestCreate_Success(t *testing.T) {
	f := newFixture(t)
	req := f.seedSwapSetup(t)
	ctx := context.Background()

	detail, err := f.svc.Create(ctx, req)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if detail.BookingID == 0 {
		t.Error("BookingID = 0, want assigned id")
	}
	if detail.Status != StatusConfirmed {
		t.Errorf("Status = %q, want %q", detail.Status, StatusConfirmed)
	}
	if detail.Price != "12.5" {
		t.Errorf("Price = %q, want 12.5", detail.Price)
	}

	// The battery is no longer borrowable.
	b, err := f.batteries.Get(ctx, detail.BatteryID)
	if err != nil {
		t.Fatalf("battery Get() error = %v", err)
	}
	if b.BorrowStatus != battery.BorrowStatusNotAvailable {
		t.Errorf("BorrowStatus = %q, want %q", b.BorrowStatus, battery.BorrowStatusNotAvailable)
	}

	// The pay-per-use package was consumed.
	up, err := f.plans.GetUserPackage(ctx, req.UserPackageID)
	if err != nil {
		t.Fatalf("GetUserPackage() error = %v", err)
	}
	if up.Status != plan.UserPackageUsed {
		t.Errorf("user package status = %q, want %q", up.Status, plan.UserPackageUsed)
	}
}

func TestCreate_SubscriptionPackageNotConsumed(t *testing.T) {
	f := newFixture(t)
	req := f.seedSwapSetup(t)
	ctx := context.Background()

	// Swap the plan for a 30-day subscription.
	days := 30
	p := &plan.PackagePlan{Name: "Monthly", Price: decimal.RequireFromString("49.00"), DurationDays: &days}
	if err := f.plans.Create(ctx, p); err != nil {
		t.Fatalf("plan Create() error = %v", err)
	}
	up := &plan.UserPackage{UserID: 7, PackageID: p.ID, Status: plan.UserPackageActive}
	if err := f.plans.CreateUserPackage(ctx, up); err != nil {
		t.Fatalf("CreateUserPackage() error = %v", err)
	}
	req.UserPackageID = up.ID

	if _, err := f.svc.Create(ctx, req); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	stored, err := f.plans.GetUserPackage(ctx, up.ID)
	if err != nil {
		t.Fatalf("GetUserPackage() error = %v", err)
	}
	if stored.Status != plan.UserPackageActive {
		t.Errorf("subscription package status = %q, want still Active", stored.Status)
	}
}

func TestCreate_NoMatchWritesNothing(t *testing.T) {
	f := newFixture(t)
	req := f.seedSwapSetup(t)
	ctx := context.Background()

	// Make the only battery unmatchable.
	b, err := f.batteries.Get(ctx, 1)
	if err != nil {
		t.Fatalf("battery Get() error = %v", err)
	}
	b.Status = battery.ChargeStatusCharging
	if err := f.batteries.Update(ctx, b); err != nil {
		t.Fatalf("battery Update() error = %v", err)
	}

	_, err = f.svc.Create(ctx, req)
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("Create() error = %v, want ErrNoMatch", err)
	}

	// No booking row, no package consumption.
	bookings, err := f.bookings.ListByUser(ctx, 7)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(bookings) != 0 {
		t.Errorf("len(bookings) = %d, want 0", len(bookings))
	}
	up, err := f.plans.GetUserPackage(ctx, req.UserPackageID)
	if err != nil {
		t.Fatalf("GetUserPackage() error = %v", err)
	}
	if up.Status != plan.UserPackageActive {
		t.Errorf("user package status = %q, want untouched Active", up.Status)
	}
}

func TestCreate_StationNotFound(t *testing.T) {
	f := newFixture(t)
	req := f.seedSwapSetup(t)
	req.StationID = 999

	if _, err := f.svc.Create(context.Background(), req); !errors.Is(err, station.ErrStationNotFound) {
		t.Errorf("Create() error = %v, want ErrStationNotFound", err)
	}
}

func TestCreate_VehicleNotFound(t *testing.T) {
	f := newFixture(t)
	req := f.seedSwapSetup(t)
	req.VehicleID = 999

	if _, err := f.svc.Create(context.Background(), req); !errors.Is(err, vehicle.ErrVehicleNotFound) {
		t.Errorf("Create() error = %v, want ErrVehicleNotFound", err)
	}
}

func TestCreate_PackageOwnerMismatch(t *testing.T) {
	f := newFixture(t)
	req := f.seedSwapSetup(t)
	req.UserID = 8

	_, err := f.svc.Create(context.Background(), req)
	if !errors.Is(err, ErrPackageOwnerMismatch) {
		t.Errorf("Create() error = %v, want ErrPackageOwnerMismatch", err)
	}
}

func TestCreate_UsedPackageRejected(t *testing.T) {
	f := newFixture(t)
	req := f.seedSwapSetup(t)
	ctx := context.Background()

	if err := f.plans.MarkUsed(ctx, req.UserPackageID); err != nil {
		t.Fatalf("MarkUsed() error = %v", err)
	}

	if _, err := f.svc.Create(ctx, req); !errors.Is(err, ErrPackageNotActive) {
		t.Errorf("Create() error = %v, want ErrPackageNotActive", err)
	}
}

// TestCreate_ConcurrentSingleBattery races many bookings for one battery.
// Exactly one must win; the rest either lose the match outright or exhaust
// the single conflict retry.
func TestCreate_ConcurrentSingleBattery(t *testing.T) {
	f := newFixture(t)
	req := f.seedSwapSetup(t)
	ctx := context.Background()

	// Extra active packages so every goroutine has its own.
	const workers = 8
	reqs := make([]*models.BookingCreateRequest, workers)
	reqs[0] = req
	for i := 1; i < workers; i++ {
		up := &plan.UserPackage{UserID: 7, PackageID: 1, Status: plan.UserPackageActive}
		if err := f.plans.CreateUserPackage(ctx, up); err != nil {
			t.Fatalf("CreateUserPackage() error = %v", err)
		}
		r := *req
		r.UserPackageID = up.ID
		reqs[i] = &r
	}

	var wg sync.WaitGroup
	results := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.svc.Create(ctx, reqs[i])
		}(i)
	}
	wg.Wait()

	var wins int
	for _, err := range results {
		if err == nil {
			wins++
			continue
		}
		if !errors.Is(err, ErrNoMatch) && !errors.Is(err, ErrAllocationFailed) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Errorf("wins = %d, want exactly 1", wins)
	}

	bookings, err := f.bookings.ListByUser(ctx, 7)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(bookings) != 1 {
		t.Errorf("len(bookings) = %d, want 1", len(bookings))
	}
}
