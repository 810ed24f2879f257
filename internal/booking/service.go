package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/models"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/battery"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/plan"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/station"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/vehicle"
)

// StationDirectory resolves stations. Implemented by the station repository.
type StationDirectory interface {
	Get(ctx context.Context, id int64) (*station.Station, error)
}

// BatteryFinder lists allocation candidates. Implemented by the battery
// repository; id order makes the match deterministic.
type BatteryFinder interface {
	ListByStation(ctx context.Context, stationID int64) ([]*battery.Battery, error)
}

// VehicleDirectory resolves vehicles. Implemented by the vehicle repository.
type VehicleDirectory interface {
	Get(ctx context.Context, id int64) (*vehicle.Vehicle, error)
}

// PackageStore resolves plans and user packages. Implemented by the plan
// repository.
type PackageStore interface {
	Get(ctx context.Context, id int64) (*plan.PackagePlan, error)
	GetUserPackage(ctx context.Context, id int64) (*plan.UserPackage, error)
}

// ServiceConfig holds the collaborators of the booking service.
type ServiceConfig struct {
	Repo      Repository
	Stations  StationDirectory
	Batteries BatteryFinder
	Vehicles  VehicleDirectory
	Packages  PackageStore
	Logger    zerolog.Logger
}

// Service provides booking creation and lookups.
type Service struct {
	repo      Repository
	stations  StationDirectory
	batteries BatteryFinder
	vehicles  VehicleDirectory
	packages  PackageStore
	logger    zerolog.Logger
}

// NewService creates a new booking service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		repo:      cfg.Repo,
		stations:  cfg.Stations,
		batteries: cfg.Batteries,
		vehicles:  cfg.Vehicles,
		packages:  cfg.Packages,
		logger:    cfg.Logger,
	}
}

// Create validates the request, matches a battery and persists the booking
// atomically. A lost optimistic-lock race retries the whole match once; the
// second conflict surfaces as ErrAllocationFailed.
func (s *Service) Create(ctx context.Context, input *models.BookingCreateRequest) (*models.BookingDetail, error) {
	st, err := s.stations.Get(ctx, input.StationID)
	if err != nil {
		return nil, err
	}

	v, err := s.vehicles.Get(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}

	up, err := s.packages.GetUserPackage(ctx, input.UserPackageID)
	if err != nil {
		return nil, err
	}
	if up.UserID != input.UserID {
		return nil, ErrPackageOwnerMismatch
	}
	if up.Status != plan.UserPackageActive {
		return nil, ErrPackageNotActive
	}

	p, err := s.packages.Get(ctx, up.PackageID)
	if err != nil {
		return nil, err
	}

	const maxAttempts = 2
	for attempt := 1; ; attempt++ {
		matched, err := s.allocateOnce(ctx, input, st.ID, v, up, p)
		if err == nil {
			return matched, nil
		}
		if errors.Is(err, battery.ErrVersionConflict) && attempt < maxAttempts {
			s.logger.Warn().
				Int64("stationId", st.ID).
				Int("attempt", attempt).
				Msg("battery allocation conflict, retrying match")
			continue
		}
		if errors.Is(err, ErrNoMatch) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrAllocationFailed, err.Error())
	}
}

func (s *Service) allocateOnce(
	ctx context.Context,
	input *models.BookingCreateRequest,
	stationID int64,
	v *vehicle.Vehicle,
	up *plan.UserPackage,
	p *plan.PackagePlan,
) (*models.BookingDetail, error) {
	candidates, err := s.batteries.ListByStation(ctx, stationID)
	if err != nil {
		return nil, err
	}

	matched := MatchBattery(candidates, stationID, v.BatteryType)
	if matched == nil {
		return nil, ErrNoMatch
	}

	now := time.Now()
	b := &Booking{
		UserID:        input.UserID,
		StationID:     stationID,
		VehicleID:     v.ID,
		BatteryID:     matched.ID,
		PackageID:     p.ID,
		UserPackageID: up.ID,
		TimeDate:      now,
		Status:        StatusConfirmed,
		Price:         p.Price,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.repo.Allocate(ctx, &AllocationRequest{
		Booking:         b,
		BatteryID:       matched.ID,
		BatteryVersion:  matched.Version,
		MarkPackageUsed: p.PayPerUse(),
		UserPackageID:   up.ID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("bookingId", b.ID).
		Int64("stationId", stationID).
		Int64("batteryId", matched.ID).
		Msg("booking created")

	return &models.BookingDetail{
		BookingID:   b.ID,
		StationID:   b.StationID,
		VehicleID:   b.VehicleID,
		BatteryID:   b.BatteryID,
		BatteryName: matched.Name,
		BatteryType: matched.Type,
		TimeDate:    models.Timestamp(b.TimeDate),
		Status:      b.Status,
		Price:       b.Price.String(),
	}, nil
}

// Get retrieves a booking by ID.
func (s *Service) Get(ctx context.Context, id int64) (*models.Booking, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toAPIBooking(b)
	return &result, nil
}

// ListByUser retrieves all bookings of a user.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]models.Booking, error) {
	bookings, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, toAPIBooking(b))
	}
	return items, nil
}

func toAPIBooking(b *Booking) models.Booking {
	return models.Booking{
		BookingID: b.ID,
		UserID:    b.UserID,
		StationID: b.StationID,
		VehicleID: b.VehicleID,
		BatteryID: b.BatteryID,
		PackageID: b.PackageID,
		TimeDate:  models.Timestamp(b.TimeDate),
		Status:    b.Status,
		Price:     b.Price.String(),
	}
}
