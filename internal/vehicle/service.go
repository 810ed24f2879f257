package vehicle

import (
	"context"
	"time"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/models"
)

// Service provides vehicle operations.
type Service struct {
	repo Repository
}

// NewService creates a new vehicle service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get retrieves a vehicle by ID.
func (s *Service) Get(ctx context.Context, id int64) (*models.Vehicle, error) {
	v, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toAPIVehicle(v)
	return &result, nil
}

// ListByUser retrieves all vehicles of a user.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]models.Vehicle, error) {
	vehicles, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]models.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		items = append(items, toAPIVehicle(v))
	}
	return items, nil
}

// Create creates a new vehicle.
func (s *Service) Create(ctx context.Context, input *models.VehicleCreateRequest) (*models.Vehicle, error) {
	now := time.Now()
	v := &Vehicle{
		UserID:              input.UserID,
		VIN:                 input.VIN,
		Model:               input.VehicleModel,
		BatteryType:         input.BatteryType,
		RegisterInformation: input.RegisterInformation,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	result := toAPIVehicle(v)
	return &result, nil
}

// Update replaces a vehicle's mutable fields.
func (s *Service) Update(ctx context.Context, id int64, input *models.VehicleCreateRequest) (*models.Vehicle, error) {
	v, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	v.UserID = input.UserID
	v.VIN = input.VIN
	v.Model = input.VehicleModel
	v.BatteryType = input.BatteryType
	v.RegisterInformation = input.RegisterInformation
	v.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}

	result := toAPIVehicle(v)
	return &result, nil
}

// Delete deletes a vehicle.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func toAPIVehicle(v *Vehicle) models.Vehicle {
	return models.Vehicle{
		VehicleID:           v.ID,
		UserID:              v.UserID,
		VIN:                 v.VIN,
		VehicleModel:        v.Model,
		BatteryType:         v.BatteryType,
		RegisterInformation: v.RegisterInformation,
	}
}
