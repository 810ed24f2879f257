package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/models"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/response"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/vehicle"
)

// VehicleHandler handles vehicle endpoints.
type VehicleHandler struct {
	vehicles *vehicle.Service
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicles *vehicle.Service) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

// Get handles GET /api/vehicles/{vehicleId}.
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "vehicleId")
	if !ok {
		response.BadRequest(w, r, "vehicleId must be a positive integer", nil)
		return
	}

	v, err := h.vehicles.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, vehicle.ErrVehicleNotFound) {
			response.NotFound(w, r, "vehicle not found")
			return
		}
		response.InternalError(w, r, "failed to get vehicle")
		return
	}
	response.JSON(w, r, http.StatusOK, v)
}

// ListByUser handles GET /api/vehicles/user/{userId}.
func (h *VehicleHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		response.BadRequest(w, r, "userId must be a positive integer", nil)
		return
	}

	vehicles, err := h.vehicles.ListByUser(r.Context(), userID)
	if err != nil {
		response.InternalError(w, r, "failed to list vehicles")
		return
	}
	response.JSON(w, r, http.StatusOK, vehicles)
}

// Create handles POST /api/vehicles.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.VehicleCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if input.VIN == "" {
		response.BadRequest(w, r, "vin is required", []models.FieldError{
			{Field: "vin", Message: "must not be empty"},
		})
		return
	}

	v, err := h.vehicles.Create(r.Context(), &input)
	if err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	location := fmt.Sprintf("/api/vehicles/%d", v.VehicleID)
	response.Created(w, r, location, v)
}

// Update handles PUT /api/vehicles/{vehicleId}.
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "vehicleId")
	if !ok {
		response.BadRequest(w, r, "vehicleId must be a positive integer", nil)
		return
	}

	var input models.VehicleCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	v, err := h.vehicles.Update(r.Context(), id, &input)
	if err != nil {
		if errors.Is(err, vehicle.ErrVehicleNotFound) {
			response.NotFound(w, r, "vehicle not found")
			return
		}
		response.BadRequest(w, r, err.Error(), nil)
		return
	}
	response.JSON(w, r, http.StatusOK, v)
}

// Delete handles DELETE /api/vehicles/{vehicleId}.
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "vehicleId")
	if !ok {
		response.BadRequest(w, r, "vehicleId must be a positive integer", nil)
		return
	}

	if err := h.vehicles.Delete(r.Context(), id); err != nil {
		if errors.Is(err, vehicle.ErrVehicleNotFound) {
			response.NotFound(w, r, "vehicle not found")
			return
		}
		response.InternalError(w, r, "failed to delete vehicle")
		return
	}
	response.NoContent(w, r)
}
