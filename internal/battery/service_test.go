package battery

import (
	"context"
	"errors"
	"testing"
)

func seedBattery(t *testing.T, repo *InMemoryRepository, name, status, borrowStatus string, stationID int64) *Battery {
	t.Helper()
	b := &Battery{
		Name:         name,
		Status:       status,
		Quantity:     1,
		Capacity:     75,
		Model:        "BP-75",
		Type:         "Standard (75 kWh)",
		BorrowStatus: borrowStatus,
		StationID:    &stationID,
	}
	if err := repo.Create(context.Background(), b); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return b
}

func TestService_ListFull_OrderedByID(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	seedBattery(t, repo, "B1", ChargeStatusFull, BorrowStatusAvailable, 1)
	seedBattery(t, repo, "B2", ChargeStatusCharging, BorrowStatusAvailable, 1)
	seedBattery(t, repo, "B3", ChargeStatusFull, BorrowStatusNotAvailable, 2)

	full, err := svc.ListFull(ctx)
	if err != nil {
		t.Fatalf("ListFull() error = %v", err)
	}
	if len(full) != 2 {
		t.Fatalf("ListFull() returned %d batteries, want 2", len(full))
	}
	if full[0].BatteryName != "B1" || full[1].BatteryName != "B3" {
		t.Errorf("ListFull() order = [%s, %s], want [B1, B3]", full[0].BatteryName, full[1].BatteryName)
	}
}

func TestService_ListFull_CaseSensitive(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	// Lowercase "full" is a distinct label and must not classify as Full.
	seedBattery(t, repo, "B1", "full", BorrowStatusAvailable, 1)
	seedBattery(t, repo, "B2", ChargeStatusFull, BorrowStatusAvailable, 1)

	full, err := svc.ListFull(ctx)
	if err != nil {
		t.Fatalf("ListFull() error = %v", err)
	}
	if len(full) != 1 || full[0].BatteryName != "B2" {
		t.Errorf("ListFull() = %+v, want only B2", full)
	}
}

func TestService_StatusCounts(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	seedBattery(t, repo, "B1", ChargeStatusFull, BorrowStatusAvailable, 1)
	seedBattery(t, repo, "B2", ChargeStatusFull, BorrowStatusAvailable, 1)
	seedBattery(t, repo, "B3", ChargeStatusCharging, BorrowStatusAvailable, 1)
	seedBattery(t, repo, "B4", ChargeStatusMaintenance, BorrowStatusNotAvailable, 1)

	counts, err := svc.StatusCounts(ctx)
	if err != nil {
		t.Fatalf("StatusCounts() error = %v", err)
	}
	if counts.Full != 2 || counts.Charging != 1 || counts.Maintenance != 1 {
		t.Errorf("StatusCounts() = %+v, want {2 1 1}", counts)
	}
}

func TestRepository_UpdateBorrowStatus_VersionConflict(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	b := seedBattery(t, repo, "B1", ChargeStatusFull, BorrowStatusAvailable, 1)

	if err := repo.UpdateBorrowStatus(ctx, b.ID, b.Version, BorrowStatusNotAvailable); err != nil {
		t.Fatalf("UpdateBorrowStatus() error = %v", err)
	}

	// Second writer still holds the old version and must lose.
	err := repo.UpdateBorrowStatus(ctx, b.ID, b.Version, BorrowStatusNotAvailable)
	if !errors.Is(err, ErrVersionConflict) {
		t.Errorf("UpdateBorrowStatus() error = %v, want ErrVersionConflict", err)
	}
}

func TestRepository_UpdateBorrowStatus_NotFound(t *testing.T) {
	repo := NewInMemoryRepository()

	err := repo.UpdateBorrowStatus(context.Background(), 999, 0, BorrowStatusNotAvailable)
	if !errors.Is(err, ErrBatteryNotFound) {
		t.Errorf("UpdateBorrowStatus() error = %v, want ErrBatteryNotFound", err)
	}
}

func TestBattery_Borrowable(t *testing.T) {
	tests := []struct {
		borrowStatus string
		want         bool
	}{
		{"Available", true},
		{"available", true},
		{"AVAILABLE", true},
		{"Not Available", false},
		{"", false},
	}

	for _, tt := range tests {
		b := &Battery{BorrowStatus: tt.borrowStatus}
		if got := b.Borrowable(); got != tt.want {
			t.Errorf("Borrowable() with %q = %v, want %v", tt.borrowStatus, got, tt.want)
		}
	}
}
