package inventory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/models"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/station"
)

// StationDirectory resolves stations for page headers. Implemented by the
// station repository.
type StationDirectory interface {
	Get(ctx context.Context, id int64) (*station.Station, error)
}

// Service provides inventory operations and the station inventory page.
type Service struct {
	repo     Repository
	stations StationDirectory
}

// NewService creates a new inventory service.
func NewService(repo Repository, stations StationDirectory) *Service {
	return &Service{repo: repo, stations: stations}
}

// Get retrieves an inventory slot by ID.
func (s *Service) Get(ctx context.Context, id int64) (*models.Inventory, error) {
	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toAPIInventory(inv)
	return &result, nil
}

// ListByStation retrieves all slots of a station.
func (s *Service) ListByStation(ctx context.Context, stationID int64) ([]models.Inventory, error) {
	inventories, err := s.repo.ListByStation(ctx, stationID)
	if err != nil {
		return nil, err
	}
	items := make([]models.Inventory, 0, len(inventories))
	for _, inv := range inventories {
		items = append(items, toAPIInventory(inv))
	}
	return items, nil
}

// Create creates a new inventory slot.
func (s *Service) Create(ctx context.Context, input *models.InventoryCreateRequest) (*models.Inventory, error) {
	now := time.Now()
	inv := &Inventory{
		StationID:  input.StationID,
		SlotNumber: input.SlotNumber,
		BatteryID:  input.BatteryID,
		Status:     input.Status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}

	result := toAPIInventory(inv)
	return &result, nil
}

// Update replaces an inventory slot's mutable fields.
func (s *Service) Update(ctx context.Context, id int64, input *models.InventoryCreateRequest) (*models.Inventory, error) {
	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	inv.StationID = input.StationID
	inv.SlotNumber = input.SlotNumber
	inv.BatteryID = input.BatteryID
	inv.Status = input.Status
	inv.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}

	result := toAPIInventory(inv)
	return &result, nil
}

// Delete deletes an inventory slot.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Stats returns system-wide inventory counts per status label, sorted by label.
func (s *Service) Stats(ctx context.Context) ([]models.InventoryStatusCount, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := make([]models.InventoryStatusCount, 0, len(counts))
	for status, count := range counts {
		stats = append(stats, models.InventoryStatusCount{Status: status, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Status < stats[j].Status })
	return stats, nil
}

// StatsForStation returns one station's inventory counts per status label,
// sorted by label.
func (s *Service) StatsForStation(ctx context.Context, stationID int64) ([]models.InventoryStatusCount, error) {
	counts, err := s.repo.CountByStatusForStation(ctx, stationID)
	if err != nil {
		return nil, err
	}

	stats := make([]models.InventoryStatusCount, 0, len(counts))
	for status, count := range counts {
		stats = append(stats, models.InventoryStatusCount{Status: status, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Status < stats[j].Status })
	return stats, nil
}

// StationPage builds one page of a station's inventory. Page and size are
// clamped before use, status filters are uppercased, and the status counters
// cover the whole station regardless of paging or filtering.
func (s *Service) StationPage(ctx context.Context, stationID int64, page, size int, statuses []string) (*models.StationInventoryPage, error) {
	st, err := s.stations.Get(ctx, stationID)
	if err != nil {
		return nil, err
	}

	page = ClampPage(page)
	size = ClampSize(size)

	filters := make([]string, 0, len(statuses))
	for _, raw := range statuses {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			filters = append(filters, strings.ToUpper(trimmed))
		}
	}

	totalItems, err := s.repo.CountByStation(ctx, stationID, filters)
	if err != nil {
		return nil, err
	}

	counters, err := s.repo.CountByStatusForStation(ctx, stationID)
	if err != nil {
		return nil, err
	}

	details, err := s.repo.PageByStation(ctx, stationID, filters, page*size, size)
	if err != nil {
		return nil, err
	}

	items := make([]models.StationInventoryItem, 0, len(details))
	for _, detail := range details {
		items = append(items, toAPISlotItem(detail))
	}

	totalPages := int((totalItems + int64(size) - 1) / int64(size))

	return &models.StationInventoryPage{
		StationID:        st.ID,
		StationName:      st.Name,
		StationStatus:    st.Status.String(),
		TotalSlots:       st.Slots,
		TotalInventories: totalItems,
		StatusCounters:   counters,
		Page:             page,
		Size:             size,
		TotalItems:       totalItems,
		TotalPages:       totalPages,
		Items:            items,
	}, nil
}

func toAPIInventory(inv *Inventory) models.Inventory {
	return models.Inventory{
		InventoryID: inv.ID,
		StationID:   inv.StationID,
		SlotNumber:  inv.SlotNumber,
		BatteryID:   inv.BatteryID,
		Status:      inv.Status,
	}
}

func toAPISlotItem(detail SlotDetail) models.StationInventoryItem {
	item := models.StationInventoryItem{
		InventoryID:     detail.Inventory.ID,
		InventoryStatus: detail.Inventory.Status,
	}
	if b := detail.Battery; b != nil {
		item.BatteryID = &b.ID
		item.BatteryName = &b.Name
		item.BatteryStatus = &b.Status
		item.Capacity = &b.Capacity
		item.BatteryType = &b.Type
		item.Model = &b.Model
		item.UsageCount = &b.UsageCount
		item.BorrowStatus = &b.BorrowStatus
	}
	return item
}
