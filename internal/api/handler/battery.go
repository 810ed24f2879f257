package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/models"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/response"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/battery"
)

// BatteryHandler handles battery fleet endpoints.
type BatteryHandler struct {
	batteries *battery.Service
}

// NewBatteryHandler creates a new BatteryHandler.
func NewBatteryHandler(batteries *battery.Service) *BatteryHandler {
	return &BatteryHandler{batteries: batteries}
}

// List handles GET /api/batteries - list the whole fleet.
func (h *BatteryHandler) List(w http.ResponseWriter, r *http.Request) {
	batteries, err := h.batteries.List(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to list batteries")
		return
	}
	response.JSON(w, r, http.StatusOK, batteries)
}

// ListByStation handles GET /api/batteries/station/{stationId}.
func (h *BatteryHandler) ListByStation(w http.ResponseWriter, r *http.Request) {
	stationID, ok := pathID(r, "stationId")
	if !ok {
		response.BadRequest(w, r, "stationId must be a positive integer", nil)
		return
	}

	batteries, err := h.batteries.ListByStation(r.Context(), stationID)
	if err != nil {
		response.InternalError(w, r, "failed to list batteries")
		return
	}
	response.JSON(w, r, http.StatusOK, batteries)
}

// ListFull handles GET /api/batteries/full - fully charged batteries.
func (h *BatteryHandler) ListFull(w http.ResponseWriter, r *http.Request) {
	batteries, err := h.batteries.ListFull(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to list batteries")
		return
	}
	response.JSON(w, r, http.StatusOK, batteries)
}

// ListCharging handles GET /api/batteries/charging.
func (h *BatteryHandler) ListCharging(w http.ResponseWriter, r *http.Request) {
	batteries, err := h.batteries.ListCharging(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to list batteries")
		return
	}
	response.JSON(w, r, http.StatusOK, batteries)
}

// ListInMaintenance handles GET /api/batteries/maintenance.
func (h *BatteryHandler) ListInMaintenance(w http.ResponseWriter, r *http.Request) {
	batteries, err := h.batteries.ListInMaintenance(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to list batteries")
		return
	}
	response.JSON(w, r, http.StatusOK, batteries)
}

// StatusCounts handles GET /api/batteries/statistics - fleet counts per
// charge status.
func (h *BatteryHandler) StatusCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.batteries.StatusCounts(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to compute battery statistics")
		return
	}
	response.JSON(w, r, http.StatusOK, counts)
}

// Get handles GET /api/batteries/{batteryId}.
func (h *BatteryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "batteryId")
	if !ok {
		response.BadRequest(w, r, "batteryId must be a positive integer", nil)
		return
	}

	b, err := h.batteries.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, battery.ErrBatteryNotFound) {
			response.NotFound(w, r, "battery not found")
			return
		}
		response.InternalError(w, r, "failed to get battery")
		return
	}
	response.JSON(w, r, http.StatusOK, b)
}

// Create handles POST /api/batteries.
func (h *BatteryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.BatteryCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if input.BatteryName == "" {
		response.BadRequest(w, r, "batteryName is required", []models.FieldError{
			{Field: "batteryName", Message: "must not be empty"},
		})
		return
	}

	b, err := h.batteries.Create(r.Context(), &input)
	if err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	location := fmt.Sprintf("/api/batteries/%d", b.BatteryID)
	response.Created(w, r, location, b)
}

// Update handles PUT /api/batteries/{batteryId}.
func (h *BatteryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "batteryId")
	if !ok {
		response.BadRequest(w, r, "batteryId must be a positive integer", nil)
		return
	}

	var input models.BatteryCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	b, err := h.batteries.Update(r.Context(), id, &input)
	if err != nil {
		if errors.Is(err, battery.ErrBatteryNotFound) {
			response.NotFound(w, r, "battery not found")
			return
		}
		response.BadRequest(w, r, err.Error(), nil)
		return
	}
	response.JSON(w, r, http.StatusOK, b)
}

// Delete handles DELETE /api/batteries/{batteryId}.
func (h *BatteryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "batteryId")
	if !ok {
		response.BadRequest(w, r, "batteryId must be a positive integer", nil)
		return
	}

	if err := h.batteries.Delete(r.Context(), id); err != nil {
		if errors.Is(err, battery.ErrBatteryNotFound) {
			response.NotFound(w, r, "battery not found")
			return
		}
		response.InternalError(w, r, "failed to delete battery")
		return
	}
	response.NoContent(w, r)
}
