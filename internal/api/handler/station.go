// Package handler provides HTTP handlers for the station management API.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/models"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/response"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/station"
)

// DefaultNearbyRadiusKm bounds the nearby search when the caller gives none.
const DefaultNearbyRadiusKm = 10.0

// StationHandler handles station endpoints.
type StationHandler struct {
	stations *station.Service
	logger   zerolog.Logger
}

// NewStationHandler creates a new StationHandler.
func NewStationHandler(stations *station.Service, logger zerolog.Logger) *StationHandler {
	return &StationHandler{stations: stations, logger: logger}
}

// List handles GET /api/stations - list all stations.
func (h *StationHandler) List(w http.ResponseWriter, r *http.Request) {
	stations, err := h.stations.List(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to list stations")
		return
	}
	response.JSON(w, r, http.StatusOK, stations)
}

// ListByStatus handles GET /api/stations/status/{status} - stations filtered
// by operational status.
func (h *StationHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status, err := station.ParseStatus(chi.URLParam(r, "status"))
	if err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	stations, err := h.stations.ListByStatus(r.Context(), status)
	if err != nil {
		response.InternalError(w, r, "failed to list stations")
		return
	}
	response.JSON(w, r, http.StatusOK, stations)
}

// Get handles GET /api/stations/{stationId} - get one station.
func (h *StationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "stationId")
	if !ok {
		response.BadRequest(w, r, "stationId must be a positive integer", nil)
		return
	}

	st, err := h.stations.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, station.ErrStationNotFound) {
			response.NotFound(w, r, "station not found")
			return
		}
		response.InternalError(w, r, "failed to get station")
		return
	}
	response.JSON(w, r, http.StatusOK, st)
}

// Create handles POST /api/stations - create a station.
func (h *StationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.StationCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if input.StationName == "" {
		response.BadRequest(w, r, "stationName is required", []models.FieldError{
			{Field: "stationName", Message: "must not be empty"},
		})
		return
	}

	st, err := h.stations.Create(r.Context(), &input)
	if err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	location := fmt.Sprintf("/api/stations/%d", st.StationID)
	response.Created(w, r, location, st)
}

// Update handles PUT /api/stations/{stationId} - replace a station.
func (h *StationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "stationId")
	if !ok {
		response.BadRequest(w, r, "stationId must be a positive integer", nil)
		return
	}

	var input models.StationCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	st, err := h.stations.Update(r.Context(), id, &input)
	if err != nil {
		if errors.Is(err, station.ErrStationNotFound) {
			response.NotFound(w, r, "station not found")
			return
		}
		response.BadRequest(w, r, err.Error(), nil)
		return
	}
	response.JSON(w, r, http.StatusOK, st)
}

// UpdateStatus handles PUT /api/stations/{stationId}/status - manual status
// override, typically used to put a station into Maintenance. Responds with
// the station's health snapshot over the newly stored status.
func (h *StationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "stationId")
	if !ok {
		response.BadRequest(w, r, "stationId must be a positive integer", nil)
		return
	}

	var input models.StationStatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	status, err := station.ParseStatus(input.Status)
	if err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	if err := h.stations.UpdateStatus(r.Context(), id, status); err != nil {
		if errors.Is(err, station.ErrStationNotFound) {
			response.NotFound(w, r, "station not found")
			return
		}
		response.InternalError(w, r, "failed to update station status")
		return
	}

	event := h.logger.Info().Int64("station_id", id).Str("status", string(status))
	if input.Note != nil {
		event = event.Str("note", *input.Note)
	}
	event.Msg("station status override applied")

	health, err := h.stations.Health(r.Context(), id)
	if err != nil {
		response.InternalError(w, r, "failed to evaluate station health")
		return
	}
	response.JSON(w, r, http.StatusOK, health)
}

// Delete handles DELETE /api/stations/{stationId} - delete a station.
func (h *StationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "stationId")
	if !ok {
		response.BadRequest(w, r, "stationId must be a positive integer", nil)
		return
	}

	if err := h.stations.Delete(r.Context(), id); err != nil {
		if errors.Is(err, station.ErrStationNotFound) {
			response.NotFound(w, r, "station not found")
			return
		}
		response.InternalError(w, r, "failed to delete station")
		return
	}
	response.NoContent(w, r)
}

// Health handles GET /api/stations/{stationId}/health - observe a station's
// health snapshot without mutating its stored status.
func (h *StationHandler) Health(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "stationId")
	if !ok {
		response.BadRequest(w, r, "stationId must be a positive integer", nil)
		return
	}

	health, err := h.stations.Health(r.Context(), id)
	if err != nil {
		if errors.Is(err, station.ErrStationNotFound) {
			response.NotFound(w, r, "station not found")
			return
		}
		response.InternalError(w, r, "failed to evaluate station health")
		return
	}
	response.JSON(w, r, http.StatusOK, health)
}

// HealthOverview handles GET /api/stations/health/overview - health snapshots for
// every station.
func (h *StationHandler) HealthOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.stations.HealthOverview(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to evaluate station health")
		return
	}
	response.JSON(w, r, http.StatusOK, overview)
}

// RefreshStatus handles POST /api/stations/{stationId}/status/refresh - re-derive
// and persist a station's status from live inventory data.
func (h *StationHandler) RefreshStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "stationId")
	if !ok {
		response.BadRequest(w, r, "stationId must be a positive integer", nil)
		return
	}

	health, err := h.stations.RefreshStatus(r.Context(), id)
	if err != nil {
		if errors.Is(err, station.ErrStationNotFound) {
			response.NotFound(w, r, "station not found")
			return
		}
		response.InternalError(w, r, "failed to refresh station status")
		return
	}
	response.JSON(w, r, http.StatusOK, health)
}

// Nearby handles GET /api/stations/nearby?lat=&lng=&radiusKm= - stations
// around a point, closest first.
func (h *StationHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	lat, ok := queryFloat(r, "lat")
	if !ok {
		response.BadRequest(w, r, "lat is required", nil)
		return
	}
	lng, ok := queryFloat(r, "lng")
	if !ok {
		response.BadRequest(w, r, "lng is required", nil)
		return
	}
	radius, ok := queryFloat(r, "radiusKm")
	if !ok || radius <= 0 {
		radius = DefaultNearbyRadiusKm
	}

	nearby, err := h.stations.Nearby(r.Context(), lat, lng, radius)
	if err != nil {
		response.InternalError(w, r, "failed to search nearby stations")
		return
	}
	response.JSON(w, r, http.StatusOK, nearby)
}

// StatusDistribution handles GET /api/stations/status/distribution - station
// count per operational status.
func (h *StationHandler) StatusDistribution(w http.ResponseWriter, r *http.Request) {
	dist, err := h.stations.StatusDistribution(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to compute status distribution")
		return
	}
	response.JSON(w, r, http.StatusOK, dist)
}
