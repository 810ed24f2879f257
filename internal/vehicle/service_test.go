package vehicle

import (
	"context"
	"errors"
	"testing"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/models"
)

func TestCreateAndListByUser(t *testing.T) {
	svc := NewService(NewInMemoryRepository())
	ctx := context.Background()

	for _, vin := range []string{"VIN1", "VIN2"} {
		_, err := svc.Create(ctx, &models.VehicleCreateRequest{
			UserID:       7,
			VIN:          vin,
			VehicleModel: "EV-1",
			BatteryType:  "Standard (60 kWh)",
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	if _, err := svc.Create(ctx, &models.VehicleCreateRequest{UserID: 8, VIN: "VIN3"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := svc.ListByUser(ctx, 7)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].VIN != "VIN1" || got[1].VIN != "VIN2" {
		t.Errorf("vehicles = %q, %q, want VIN1, VIN2 in id order", got[0].VIN, got[1].VIN)
	}
}

func TestUpdate(t *testing.T) {
	svc := NewService(NewInMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.VehicleCreateRequest{UserID: 7, VIN: "VIN1", VehicleModel: "EV-1"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := svc.Update(ctx, created.VehicleID, &models.VehicleCreateRequest{
		UserID:       7,
		VIN:          "VIN1",
		VehicleModel: "EV-2",
		BatteryType:  "Extended (90 kWh)",
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.VehicleModel != "EV-2" {
		t.Errorf("VehicleModel = %q, want EV-2", got.VehicleModel)
	}
	if got.BatteryType != "Extended (90 kWh)" {
		t.Errorf("BatteryType = %q, want Extended (90 kWh)", got.BatteryType)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	if _, err := svc.Get(context.Background(), 42); !errors.Is(err, ErrVehicleNotFound) {
		t.Errorf("Get() error = %v, want ErrVehicleNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	svc := NewService(NewInMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.VehicleCreateRequest{UserID: 7, VIN: "VIN1"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := svc.Delete(ctx, created.VehicleID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Get(ctx, created.VehicleID); !errors.Is(err, ErrVehicleNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrVehicleNotFound", err)
	}
}
