package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/models"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/response"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/inventory"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/station"
)

// InventoryHandler handles inventory endpoints.
type InventoryHandler struct {
	inventories *inventory.Service
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(inventories *inventory.Service) *InventoryHandler {
	return &InventoryHandler{inventories: inventories}
}

// StationPage handles GET /api/stations/{stationId}/inventory - one page of
// a station's inventory joined with battery detail. Page and size are
// clamped server-side; repeated status parameters filter the listing but not
// the station-wide counters.
func (h *InventoryHandler) StationPage(w http.ResponseWriter, r *http.Request) {
	stationID, ok := pathID(r, "stationId")
	if !ok {
		response.BadRequest(w, r, "stationId must be a positive integer", nil)
		return
	}

	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", inventory.DefaultPageSize)
	statuses := r.URL.Query()["status"]

	result, err := h.inventories.StationPage(r.Context(), stationID, page, size, statuses)
	if err != nil {
		if errors.Is(err, station.ErrStationNotFound) {
			response.NotFound(w, r, "station not found")
			return
		}
		response.InternalError(w, r, "failed to load station inventory")
		return
	}
	response.JSON(w, r, http.StatusOK, result)
}

// ListByStation handles GET /api/stations/{stationId}/inventory/all - the
// raw slot rows of a station without battery detail.
func (h *InventoryHandler) ListByStation(w http.ResponseWriter, r *http.Request) {
	stationID, ok := pathID(r, "stationId")
	if !ok {
		response.BadRequest(w, r, "stationId must be a positive integer", nil)
		return
	}

	items, err := h.inventories.ListByStation(r.Context(), stationID)
	if err != nil {
		response.InternalError(w, r, "failed to list inventory")
		return
	}
	response.JSON(w, r, http.StatusOK, items)
}

// Get handles GET /api/inventory/{inventoryId} - get one slot.
func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "inventoryId")
	if !ok {
		response.BadRequest(w, r, "inventoryId must be a positive integer", nil)
		return
	}

	inv, err := h.inventories.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, inventory.ErrInventoryNotFound) {
			response.NotFound(w, r, "inventory slot not found")
			return
		}
		response.InternalError(w, r, "failed to get inventory slot")
		return
	}
	response.JSON(w, r, http.StatusOK, inv)
}

// Create handles POST /api/inventory - create a slot.
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.InventoryCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if input.StationID <= 0 {
		response.BadRequest(w, r, "stationId is required", []models.FieldError{
			{Field: "stationId", Message: "must be a positive integer"},
		})
		return
	}

	inv, err := h.inventories.Create(r.Context(), &input)
	if err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	location := fmt.Sprintf("/api/inventory/%d", inv.InventoryID)
	response.Created(w, r, location, inv)
}

// Update handles PUT /api/inventory/{inventoryId} - replace a slot.
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "inventoryId")
	if !ok {
		response.BadRequest(w, r, "inventoryId must be a positive integer", nil)
		return
	}

	var input models.InventoryCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	inv, err := h.inventories.Update(r.Context(), id, &input)
	if err != nil {
		if errors.Is(err, inventory.ErrInventoryNotFound) {
			response.NotFound(w, r, "inventory slot not found")
			return
		}
		response.BadRequest(w, r, err.Error(), nil)
		return
	}
	response.JSON(w, r, http.StatusOK, inv)
}

// Delete handles DELETE /api/inventory/{inventoryId} - delete a slot.
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "inventoryId")
	if !ok {
		response.BadRequest(w, r, "inventoryId must be a positive integer", nil)
		return
	}

	if err := h.inventories.Delete(r.Context(), id); err != nil {
		if errors.Is(err, inventory.ErrInventoryNotFound) {
			response.NotFound(w, r, "inventory slot not found")
			return
		}
		response.InternalError(w, r, "failed to delete inventory slot")
		return
	}
	response.NoContent(w, r)
}

// Stats handles GET /api/inventory/status/statistics - system-wide slot
// counts per status label.
func (h *InventoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.inventories.Stats(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to compute inventory statistics")
		return
	}
	response.JSON(w, r, http.StatusOK, stats)
}

// StationStats handles GET /api/inventory/status/statistics/station/{stationId}
// - one station's slot counts per status label.
func (h *InventoryHandler) StationStats(w http.ResponseWriter, r *http.Request) {
	stationID, ok := pathID(r, "stationId")
	if !ok {
		response.BadRequest(w, r, "stationId must be a positive integer", nil)
		return
	}

	stats, err := h.inventories.StatsForStation(r.Context(), stationID)
	if err != nil {
		response.InternalError(w, r, "failed to compute inventory statistics")
		return
	}
	response.JSON(w, r, http.StatusOK, stats)
}
