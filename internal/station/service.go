package station

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/models"
)

// InventoryCounts supplies per-station inventory aggregates. Implemented by
// the inventory repository; defined here so the health evaluator does not
// depend on the inventory package.
type InventoryCounts interface {
	// CountByStatusForStation returns a status-label → row-count mapping for
	// one station's inventory.
	CountByStatusForStation(ctx context.Context, stationID int64) (map[string]int64, error)
}

// Service provides station operations and health evaluation.
type Service struct {
	repo   Repository
	counts InventoryCounts
}

// NewService creates a new station service.
func NewService(repo Repository, counts InventoryCounts) *Service {
	return &Service{repo: repo, counts: counts}
}

// List retrieves all stations.
func (s *Service) List(ctx context.Context) ([]models.Station, error) {
	stations, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.toAPIStations(stations), nil
}

// ListByStatus retrieves all stations with the given status.
func (s *Service) ListByStatus(ctx context.Context, status Status) ([]models.Station, error) {
	stations, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return s.toAPIStations(stations), nil
}

// Get retrieves a station by ID.
func (s *Service) Get(ctx context.Context, id int64) (*models.Station, error) {
	st, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	result := s.toAPIStation(st)
	return &result, nil
}

// Create creates a new station. A missing status defaults to Active.
func (s *Service) Create(ctx context.Context, input *models.StationCreateRequest) (*models.Station, error) {
	status := StatusActive
	if input.Status != nil {
		parsed, err := ParseStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	now := time.Now()
	st := &Station{
		Name:         input.StationName,
		Address:      input.Address,
		Contact:      input.Contact,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		OpeningHours: input.OpeningHours,
		Slots:        input.Slots,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}

	result := s.toAPIStation(st)
	return &result, nil
}

// Update replaces a station's mutable fields. A missing status keeps the
// stored one, so a full update cannot silently clear a Maintenance override.
func (s *Service) Update(ctx context.Context, id int64, input *models.StationCreateRequest) (*models.Station, error) {
	st, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	status := st.Status
	if input.Status != nil {
		parsed, err := ParseStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	st.Name = input.StationName
	st.Address = input.Address
	st.Contact = input.Contact
	st.Latitude = input.Latitude
	st.Longitude = input.Longitude
	st.OpeningHours = input.OpeningHours
	st.Slots = input.Slots
	st.Status = status
	st.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}

	result := s.toAPIStation(st)
	return &result, nil
}

// UpdateStatus explicitly sets a station's stored status.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status Status) error {
	return s.repo.UpdateStatus(ctx, id, status)
}

// Delete deletes a station.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// StatusDistribution counts stations per status.
func (s *Service) StatusDistribution(ctx context.Context) (map[string]int64, error) {
	stations, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	dist := make(map[string]int64)
	for _, st := range stations {
		status := st.Status
		if !status.Valid() {
			status = StatusActive
		}
		dist[status.String()]++
	}
	return dist, nil
}

// Health returns the health snapshot for one station without mutating it
// (observe mode).
func (s *Service) Health(ctx context.Context, stationID int64) (*models.StationHealth, error) {
	st, err := s.repo.Get(ctx, stationID)
	if err != nil {
		return nil, err
	}
	return s.buildHealthSnapshot(ctx, st, false)
}

// HealthOverview returns health snapshots for every station, sorted by name.
func (s *Service) HealthOverview(ctx context.Context) ([]models.StationHealth, error) {
	stations, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	snapshots := make([]models.StationHealth, 0, len(stations))
	for _, st := range stations {
		snap, err := s.buildHealthSnapshot(ctx, st, false)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, *snap)
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].StationName < snapshots[j].StationName
	})
	return snapshots, nil
}

// RefreshStatus re-derives a station's status from live inventory data and
// persists it when it changed (derive mode). The write is an idempotent
// recomputation: a lost update under race converges on the next refresh.
func (s *Service) RefreshStatus(ctx context.Context, stationID int64) (*models.StationHealth, error) {
	st, err := s.repo.Get(ctx, stationID)
	if err != nil {
		return nil, err
	}
	return s.buildHealthSnapshot(ctx, st, true)
}

func (s *Service) buildHealthSnapshot(ctx context.Context, st *Station, derive bool) (*models.StationHealth, error) {
	counts, err := s.counts.CountByStatusForStation(ctx, st.ID)
	if err != nil {
		return nil, err
	}
	agg := FoldStatusCounts(counts)

	resolved := st.Status
	if !resolved.Valid() {
		resolved = StatusActive
	}
	if derive {
		resolved = DeriveStatus(resolved, agg, st.Slots)
		if resolved != st.Status {
			if err := s.repo.UpdateStatus(ctx, st.ID, resolved); err != nil {
				return nil, err
			}
		}
	}

	return &models.StationHealth{
		StationID:          st.ID,
		StationName:        st.Name,
		Status:             resolved.String(),
		AvailableBatteries: agg.Available,
		TotalBatteries:     agg.Total,
		Slots:              st.Slots,
		Utilization:        Utilization(agg.Available, st.Slots),
		Serviceable:        resolved.Serviceable(),
	}, nil
}

// Nearby returns stations within radiusKm of the given point, closest first.
// Stations without coordinates are skipped.
func (s *Service) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]models.NearbyStation, error) {
	stations, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var nearby []models.NearbyStation
	for _, st := range stations {
		if st.Latitude == nil || st.Longitude == nil {
			continue
		}
		dist := haversineKm(lat, lng, *st.Latitude, *st.Longitude)
		dist = math.Round(dist*100) / 100
		if dist > radiusKm {
			continue
		}
		status := st.Status
		if !status.Valid() {
			status = StatusActive
		}
		nearby = append(nearby, models.NearbyStation{
			StationID:   st.ID,
			StationName: st.Name,
			Address:     st.Address,
			Latitude:    *st.Latitude,
			Longitude:   *st.Longitude,
			DistanceKm:  dist,
			Status:      status.String(),
		})
	}

	sort.Slice(nearby, func(i, j int) bool { return nearby[i].DistanceKm < nearby[j].DistanceKm })
	return nearby, nil
}

// haversineKm computes the great-circle distance between two points.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

func (s *Service) toAPIStations(stations []*Station) []models.Station {
	items := make([]models.Station, 0, len(stations))
	for _, st := range stations {
		items = append(items, s.toAPIStation(st))
	}
	return items
}

func (s *Service) toAPIStation(st *Station) models.Station {
	return models.Station{
		StationID:    st.ID,
		StationName:  st.Name,
		Address:      st.Address,
		Contact:      st.Contact,
		Latitude:     st.Latitude,
		Longitude:    st.Longitude,
		OpeningHours: st.OpeningHours,
		Slots:        st.Slots,
		Status:       st.Status.String(),
		CreatedAt:    models.Timestamp(st.CreatedAt),
		UpdatedAt:    models.Timestamp(st.UpdatedAt),
	}
}
