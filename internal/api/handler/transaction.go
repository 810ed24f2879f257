package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/models"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/response"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/battery"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/swaptx"
)

// TransactionHandler handles swap transaction, revenue and battery return
// endpoints.
type TransactionHandler struct {
	transactions *swaptx.Service
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactions *swaptx.Service) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// ListByStation handles GET /api/stations/{stationId}/transactions.
func (h *TransactionHandler) ListByStation(w http.ResponseWriter, r *http.Request) {
	stationID, ok := pathID(r, "stationId")
	if !ok {
		response.BadRequest(w, r, "stationId must be a positive integer", nil)
		return
	}

	transactions, err := h.transactions.ListByStation(r.Context(), stationID)
	if err != nil {
		response.InternalError(w, r, "failed to list transactions")
		return
	}
	response.JSON(w, r, http.StatusOK, transactions)
}

// Search handles GET /api/stations/{stationId}/transactions/search. The q
// parameter matches customer name, email and vehicle VIN, case-insensitive.
func (h *TransactionHandler) Search(w http.ResponseWriter, r *http.Request) {
	stationID, ok := pathID(r, "stationId")
	if !ok {
		response.BadRequest(w, r, "stationId must be a positive integer", nil)
		return
	}

	q := r.URL.Query().Get("q")
	if q == "" {
		response.BadRequest(w, r, "q is required", []models.FieldError{
			{Field: "q", Message: "must be a non-empty search term"},
		})
		return
	}

	transactions, err := h.transactions.Search(r.Context(), stationID, q)
	if err != nil {
		response.InternalError(w, r, "failed to search transactions")
		return
	}
	response.JSON(w, r, http.StatusOK, transactions)
}

// Get handles GET /api/transactions/{transactionId}.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "transactionId")
	if !ok {
		response.BadRequest(w, r, "transactionId must be a positive integer", nil)
		return
	}

	tx, err := h.transactions.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, swaptx.ErrTransactionNotFound) {
			response.NotFound(w, r, "transaction not found")
			return
		}
		response.InternalError(w, r, "failed to get transaction")
		return
	}
	response.JSON(w, r, http.StatusOK, tx)
}

// Create handles POST /api/stations/{stationId}/transactions.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	stationID, ok := pathID(r, "stationId")
	if !ok {
		response.BadRequest(w, r, "stationId must be a positive integer", nil)
		return
	}

	var input models.SwapTransactionCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if input.Amount == "" {
		response.BadRequest(w, r, "amount is required", []models.FieldError{
			{Field: "amount", Message: "must be a decimal string"},
		})
		return
	}

	tx, err := h.transactions.Create(r.Context(), stationID, &input)
	if err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	location := fmt.Sprintf("/api/transactions/%d", tx.TransactionID)
	response.Created(w, r, location, tx)
}

// Update handles PUT /api/transactions/{transactionId}.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "transactionId")
	if !ok {
		response.BadRequest(w, r, "transactionId must be a positive integer", nil)
		return
	}

	var input models.SwapTransactionCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	tx, err := h.transactions.Update(r.Context(), id, &input)
	if err != nil {
		if errors.Is(err, swaptx.ErrTransactionNotFound) {
			response.NotFound(w, r, "transaction not found")
			return
		}
		response.BadRequest(w, r, err.Error(), nil)
		return
	}
	response.JSON(w, r, http.StatusOK, tx)
}

// Delete handles DELETE /api/transactions/{transactionId}.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "transactionId")
	if !ok {
		response.BadRequest(w, r, "transactionId must be a positive integer", nil)
		return
	}

	if err := h.transactions.Delete(r.Context(), id); err != nil {
		if errors.Is(err, swaptx.ErrTransactionNotFound) {
			response.NotFound(w, r, "transaction not found")
			return
		}
		response.InternalError(w, r, "failed to delete transaction")
		return
	}
	response.NoContent(w, r)
}

// StationRevenue handles GET /api/stations/{stationId}/revenue. Optional
// from and to parameters bound the range, as RFC3339 timestamps or plain
// dates.
func (h *TransactionHandler) StationRevenue(w http.ResponseWriter, r *http.Request) {
	stationID, ok := pathID(r, "stationId")
	if !ok {
		response.BadRequest(w, r, "stationId must be a positive integer", nil)
		return
	}

	from, err := queryTime(r, "from")
	if err != nil {
		response.BadRequest(w, r, "from must be an RFC3339 timestamp or YYYY-MM-DD date", nil)
		return
	}
	to, err := queryTime(r, "to")
	if err != nil {
		response.BadRequest(w, r, "to must be an RFC3339 timestamp or YYYY-MM-DD date", nil)
		return
	}

	revenue, err := h.transactions.StationRevenue(r.Context(), stationID, from, to)
	if err != nil {
		response.InternalError(w, r, "failed to compute station revenue")
		return
	}
	response.JSON(w, r, http.StatusOK, revenue)
}

// TotalRevenue handles GET /api/stations/revenue/total.
func (h *TransactionHandler) TotalRevenue(w http.ResponseWriter, r *http.Request) {
	revenue, err := h.transactions.TotalRevenue(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to compute total revenue")
		return
	}
	response.JSON(w, r, http.StatusOK, revenue)
}

// RegisterReturn handles POST /api/battery-returns - close a transaction
// with a battery return.
func (h *TransactionHandler) RegisterReturn(w http.ResponseWriter, r *http.Request) {
	var input models.BatteryReturnRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if input.BatteryID <= 0 || input.TransactionID <= 0 {
		response.BadRequest(w, r, "batteryId and transactionId are required", nil)
		return
	}

	ret, err := h.transactions.RegisterReturn(r.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, swaptx.ErrAlreadyReturned):
			response.Conflict(w, r, "battery already returned for this transaction")
		case errors.Is(err, swaptx.ErrTransactionNotFound):
			response.BadRequest(w, r, "transaction not found", nil)
		case errors.Is(err, battery.ErrBatteryNotFound):
			response.BadRequest(w, r, "battery not found", nil)
		default:
			response.InternalError(w, r, "failed to register battery return")
		}
		return
	}
	response.Created(w, r, "", ret)
}

// ListReturns handles GET /api/battery-returns.
func (h *TransactionHandler) ListReturns(w http.ResponseWriter, r *http.Request) {
	returns, err := h.transactions.ListReturns(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to list battery returns")
		return
	}
	response.JSON(w, r, http.StatusOK, returns)
}

// queryTime parses an optional from/to query parameter. Both RFC3339
// timestamps and plain dates are accepted.
func queryTime(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
