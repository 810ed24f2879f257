package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/models"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/response"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/booking"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/plan"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/station"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/vehicle"
)

// BookingHandler handles battery allocation endpoints.
type BookingHandler struct {
	bookings *booking.Service
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookings *booking.Service) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// Create handles POST /api/bookings/create - allocate a battery to a driver.
//
// A failed match is a 409: the station exists but holds no battery that is
// Full, borrowable and of the vehicle's type. Bad references in the request
// body (vehicle, package) are 400s; a bad station reference is a 404.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.BookingCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if fields := validateBookingRequest(&input); len(fields) > 0 {
		response.BadRequest(w, r, "missing required fields", fields)
		return
	}

	detail, err := h.bookings.Create(r.Context(), &input)
	if err != nil {
		h.writeCreateError(w, r, err)
		return
	}

	location := fmt.Sprintf("/api/bookings/%d", detail.BookingID)
	response.Created(w, r, location, detail)
}

func validateBookingRequest(input *models.BookingCreateRequest) []models.FieldError {
	var fields []models.FieldError
	if input.UserID <= 0 {
		fields = append(fields, models.FieldError{Field: "userId", Message: "must be a positive integer"})
	}
	if input.StationID <= 0 {
		fields = append(fields, models.FieldError{Field: "stationId", Message: "must be a positive integer"})
	}
	if input.UserPackageID <= 0 {
		fields = append(fields, models.FieldError{Field: "userPackageId", Message: "must be a positive integer"})
	}
	if input.VehicleID <= 0 {
		fields = append(fields, models.FieldError{Field: "vehicleId", Message: "must be a positive integer"})
	}
	return fields
}

func (h *BookingHandler) writeCreateError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, booking.ErrNoMatch):
		response.Conflict(w, r, "no battery available for this vehicle at the station")
	case errors.Is(err, station.ErrStationNotFound):
		response.NotFound(w, r, "station not found")
	case errors.Is(err, vehicle.ErrVehicleNotFound):
		response.BadRequest(w, r, "vehicle not found", nil)
	case errors.Is(err, plan.ErrUserPackageNotFound):
		response.BadRequest(w, r, "user package not found", nil)
	case errors.Is(err, plan.ErrPlanNotFound):
		response.BadRequest(w, r, "package plan not found", nil)
	case errors.Is(err, booking.ErrPackageNotActive):
		response.BadRequest(w, r, "user package is not active", nil)
	case errors.Is(err, booking.ErrPackageOwnerMismatch):
		response.BadRequest(w, r, "user package belongs to another user", nil)
	case errors.Is(err, booking.ErrAllocationFailed):
		response.InternalError(w, r, err.Error())
	default:
		response.InternalError(w, r, "battery allocation failed")
	}
}

// Get handles GET /api/bookings/{bookingId}.
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "bookingId")
	if !ok {
		response.BadRequest(w, r, "bookingId must be a positive integer", nil)
		return
	}

	b, err := h.bookings.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			response.NotFound(w, r, "booking not found")
			return
		}
		response.InternalError(w, r, "failed to get booking")
		return
	}
	response.JSON(w, r, http.StatusOK, b)
}

// ListByUser handles GET /api/bookings/user/{userId}.
func (h *BookingHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		response.BadRequest(w, r, "userId must be a positive integer", nil)
		return
	}

	bookings, err := h.bookings.ListByUser(r.Context(), userID)
	if err != nil {
		response.InternalError(w, r, "failed to list bookings")
		return
	}
	response.JSON(w, r, http.StatusOK, bookings)
}
