package swaptx

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/models"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/battery"
)

func newTestService(t *testing.T) (*Service, *InMemoryRepository, *battery.InMemoryRepository) {
	t.Helper()
	repo := NewInMemoryRepository()
	batteries := battery.NewInMemoryRepository()
	return NewService(repo, batteries, zerolog.Nop()), repo, batteries
}

func seedTransaction(t *testing.T, repo *InMemoryRepository, stationID int64, name, email, vin, amount string, date time.Time) *SwapTransaction {
	t.Helper()
	tx := &SwapTransaction{
		StationID:     stationID,
		Date:          date,
		CustomerName:  name,
		CustomerEmail: email,
		VehicleVIN:    vin,
		Amount:        decimal.RequireFromString(amount),
		Status:        StatusBorrowed,
		CreatedAt:     date,
		UpdatedAt:     date,
	}
	if err := repo.Create(context.Background(), tx); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return tx
}

func TestCreate_DefaultsToBorrowedNow(t *testing.T) {
	svc, _, _ := newTestService(t)

	got, err := svc.Create(context.Background(), 3, &models.SwapTransactionCreateRequest{
		CustomerName:  "An Nguyen",
		CustomerEmail: "an@example.com",
		VehicleVIN:    "vin42x",
		Amount:        "15.75",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if got.Status != StatusBorrowed {
		t.Errorf("Status = %q, want %q", got.Status, StatusBorrowed)
	}
	if got.VehicleVIN != "VIN42X" {
		t.Errorf("VehicleVIN = %q, want VIN42X", got.VehicleVIN)
	}
	if got.StationID != 3 {
		t.Errorf("StationID = %d, want 3", got.StationID)
	}
	if got.Amount != "15.75" {
		t.Errorf("Amount = %q, want 15.75", got.Amount)
	}
	if time.Time(got.TransactionDate).IsZero() {
		t.Error("TransactionDate is zero, want defaulted to now")
	}
}

func TestCreate_InvalidAmount(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), 1, &models.SwapTransactionCreateRequest{
		CustomerName: "An",
		Amount:       "fifteen",
	})
	if err == nil {
		t.Fatal("Create() error = nil, want invalid amount error")
	}
}

func TestSearch_CaseInsensitiveAcrossFields(t *testing.T) {
	svc, repo, _ := newTestService(t)
	now := time.Now()
	seedTransaction(t, repo, 1, "An Nguyen", "an@example.com", "VINAAA", "10", now)
	seedTransaction(t, repo, 1, "Binh Tran", "binh@example.com", "vinbbb", "20", now)
	seedTransaction(t, repo, 2, "An Pham", "pham@example.com", "VINCCC", "30", now)

	got, err := svc.Search(context.Background(), 1, "AN")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	// Matches "An Nguyen" by name and "Binh Tran" by name substring; the
	// station 2 row is excluded.
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}

	got, err = svc.Search(context.Background(), 1, "vinbbb")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 || got[0].CustomerName != "Binh Tran" {
		t.Errorf("Search(vinbbb) = %+v, want only Binh Tran", got)
	}
}

func TestStationRevenue_SumsAndRange(t *testing.T) {
	svc, repo, _ := newTestService(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedTransaction(t, repo, 1, "A", "a@x.com", "V1", "10.10", base)
	seedTransaction(t, repo, 1, "B", "b@x.com", "V2", "20.20", base.AddDate(0, 0, 5))
	seedTransaction(t, repo, 2, "C", "c@x.com", "V3", "99.99", base)

	got, err := svc.StationRevenue(context.Background(), 1, nil, nil)
	if err != nil {
		t.Fatalf("StationRevenue() error = %v", err)
	}
	if got.TotalRevenue != "30.3" {
		t.Errorf("TotalRevenue = %q, want 30.3", got.TotalRevenue)
	}
	if got.TotalTransactions != 2 {
		t.Errorf("TotalTransactions = %d, want 2", got.TotalTransactions)
	}

	// Bounded range excludes the later transaction.
	to := base.AddDate(0, 0, 1)
	got, err = svc.StationRevenue(context.Background(), 1, nil, &to)
	if err != nil {
		t.Fatalf("StationRevenue() error = %v", err)
	}
	if got.TotalRevenue != "10.1" || got.TotalTransactions != 1 {
		t.Errorf("bounded revenue = %q/%d, want 10.1/1", got.TotalRevenue, got.TotalTransactions)
	}
}

func TestTotalRevenue_AcrossStations(t *testing.T) {
	svc, repo, _ := newTestService(t)
	now := time.Now()
	seedTransaction(t, repo, 1, "A", "a@x.com", "V1", "10", now)
	seedTransaction(t, repo, 2, "B", "b@x.com", "V2", "5.50", now)

	got, err := svc.TotalRevenue(context.Background())
	if err != nil {
		t.Fatalf("TotalRevenue() error = %v", err)
	}
	if got.TotalRevenue != "15.5" {
		t.Errorf("TotalRevenue = %q, want 15.5", got.TotalRevenue)
	}
	if got.TotalTransactions != 2 {
		t.Errorf("TotalTransactions = %d, want 2", got.TotalTransactions)
	}
}

func TestRegisterReturn_ClosesTransactionAndReleasesBattery(t *testing.T) {
	svc, repo, batteries := newTestService(t)
	ctx := context.Background()

	b := &battery.Battery{
		Name:         "B-9",
		Status:       battery.ChargeStatusCharging,
		BorrowStatus: battery.BorrowStatusNotAvailable,
	}
	if err := batteries.Create(ctx, b); err != nil {
		t.Fatalf("battery Create() error = %v", err)
	}
	tx := seedTransaction(t, repo, 1, "An", "an@x.com", "VIN9", "12", time.Now())

	got, err := svc.RegisterReturn(ctx, &models.BatteryReturnRequest{
		BatteryID:     b.ID,
		TransactionID: tx.ID,
		Customer:      "An",
		Phone:         "0900000000",
	})
	if err != nil {
		t.Fatalf("RegisterReturn() error = %v", err)
	}
	if got.Status != StatusReturned {
		t.Errorf("return Status = %q, want %q", got.Status, StatusReturned)
	}

	stored, err := repo.Get(ctx, tx.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if stored.Status != StatusReturned {
		t.Errorf("transaction Status = %q, want %q", stored.Status, StatusReturned)
	}
	if stored.ReturnDate == nil {
		t.Error("ReturnDate = nil, want set")
	}

	released, err := batteries.Get(ctx, b.ID)
	if err != nil {
		t.Fatalf("battery Get() error = %v", err)
	}
	if released.BorrowStatus != battery.BorrowStatusAvailable {
		t.Errorf("BorrowStatus = %q, want %q", released.BorrowStatus, battery.BorrowStatusAvailable)
	}

	returns, err := svc.ListReturns(ctx)
	if err != nil {
		t.Fatalf("ListReturns() error = %v", err)
	}
	if len(returns) != 1 {
		t.Fatalf("len(returns) = %d, want 1", len(returns))
	}
	if returns[0].TransactionID != tx.ID {
		t.Errorf("return TransactionID = %d, want %d", returns[0].TransactionID, tx.ID)
	}
}

func TestRegisterReturn_AlreadyReturned(t *testing.T) {
	svc, repo, batteries := newTestService(t)
	ctx := context.Background()

	b := &battery.Battery{Name: "B-1", BorrowStatus: battery.BorrowStatusNotAvailable}
	if err := batteries.Create(ctx, b); err != nil {
		t.Fatalf("battery Create() error = %v", err)
	}
	tx := seedTransaction(t, repo, 1, "An", "an@x.com", "VIN1", "12", time.Now())

	req := &models.BatteryReturnRequest{BatteryID: b.ID, TransactionID: tx.ID, Customer: "An"}
	if _, err := svc.RegisterReturn(ctx, req); err != nil {
		t.Fatalf("first RegisterReturn() error = %v", err)
	}

	if _, err := svc.RegisterReturn(ctx, req); !errors.Is(err, ErrAlreadyReturned) {
		t.Errorf("second RegisterReturn() error = %v, want ErrAlreadyReturned", err)
	}
}

func TestRegisterReturn_TransactionNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.RegisterReturn(context.Background(), &models.BatteryReturnRequest{BatteryID: 1, TransactionID: 99})
	if !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("RegisterReturn() error = %v, want ErrTransactionNotFound", err)
	}
}
