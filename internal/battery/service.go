package battery

import (
	"context"
	"time"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/models"
)

// Service provides battery fleet operations.
type Service struct {
	repo Repository
}

// NewService creates a new battery service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List retrieves all batteries.
func (s *Service) List(ctx context.Context) ([]models.Battery, error) {
	batteries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toAPIBatteries(batteries), nil
}

// ListByStation retrieves all batteries assigned to a station.
func (s *Service) ListByStation(ctx context.Context, stationID int64) ([]models.Battery, error) {
	batteries, err := s.repo.ListByStation(ctx, stationID)
	if err != nil {
		return nil, err
	}
	return toAPIBatteries(batteries), nil
}

// ListFull retrieves all fully charged batteries.
func (s *Service) ListFull(ctx context.Context) ([]models.Battery, error) {
	return s.listByChargeStatus(ctx, ChargeStatusFull)
}

// ListCharging retrieves all batteries currently charging.
func (s *Service) ListCharging(ctx context.Context) ([]models.Battery, error) {
	return s.listByChargeStatus(ctx, ChargeStatusCharging)
}

// ListInMaintenance retrieves all batteries under maintenance.
func (s *Service) ListInMaintenance(ctx context.Context) ([]models.Battery, error) {
	return s.listByChargeStatus(ctx, ChargeStatusMaintenance)
}

func (s *Service) listByChargeStatus(ctx context.Context, status string) ([]models.Battery, error) {
	batteries, err := s.repo.ListByChargeStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return toAPIBatteries(batteries), nil
}

// StatusCounts summarizes the fleet per charge status.
func (s *Service) StatusCounts(ctx context.Context) (*models.BatteryStatusCounts, error) {
	counts, err := s.repo.CountByChargeStatus(ctx)
	if err != nil {
		return nil, err
	}
	return &models.BatteryStatusCounts{
		Full:        counts[ChargeStatusFull],
		Charging:    counts[ChargeStatusCharging],
		Maintenance: counts[ChargeStatusMaintenance],
	}, nil
}

// Get retrieves a battery by ID.
func (s *Service) Get(ctx context.Context, id int64) (*models.Battery, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toAPIBattery(b)
	return &result, nil
}

// Create creates a new battery.
func (s *Service) Create(ctx context.Context, input *models.BatteryCreateRequest) (*models.Battery, error) {
	now := time.Now()
	b := &Battery{
		Name:         input.BatteryName,
		Status:       input.Status,
		Quantity:     input.Quantity,
		Capacity:     input.Capacity,
		Model:        input.Model,
		UsageCount:   input.UsageCount,
		Type:         input.BatteryType,
		BorrowStatus: input.BorrowStatus,
		StationID:    input.StationID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if b.Status == "" {
		b.Status = ChargeStatusCharging
	}
	if b.BorrowStatus == "" {
		b.BorrowStatus = BorrowStatusAvailable
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	result := toAPIBattery(b)
	return &result, nil
}

// Update replaces a battery's mutable fields.
func (s *Service) Update(ctx context.Context, id int64, input *models.BatteryCreateRequest) (*models.Battery, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	b.Name = input.BatteryName
	b.Status = input.Status
	b.Quantity = input.Quantity
	b.Capacity = input.Capacity
	b.Model = input.Model
	b.UsageCount = input.UsageCount
	b.Type = input.BatteryType
	b.BorrowStatus = input.BorrowStatus
	b.StationID = input.StationID
	b.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	result := toAPIBattery(b)
	return &result, nil
}

// Delete deletes a battery.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func toAPIBatteries(batteries []*Battery) []models.Battery {
	items := make([]models.Battery, 0, len(batteries))
	for _, b := range batteries {
		items = append(items, toAPIBattery(b))
	}
	return items
}

func toAPIBattery(b *Battery) models.Battery {
	return models.Battery{
		BatteryID:    b.ID,
		BatteryName:  b.Name,
		Status:       b.Status,
		Quantity:     b.Quantity,
		Capacity:     b.Capacity,
		Model:        b.Model,
		UsageCount:   b.UsageCount,
		BatteryType:  b.Type,
		BorrowStatus: b.BorrowStatus,
		StationID:    b.StationID,
	}
}
