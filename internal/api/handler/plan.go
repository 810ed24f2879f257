package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/models"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/response"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/plan"
)

// PlanHandler handles package plan and user package endpoints.
type PlanHandler struct {
	plans *plan.Service
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(plans *plan.Service) *PlanHandler {
	return &PlanHandler{plans: plans}
}

// List handles GET /api/packages - list all package plans.
func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	plans, err := h.plans.List(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to list packages")
		return
	}
	response.JSON(w, r, http.StatusOK, plans)
}

// Get handles GET /api/packages/{packageId}.
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "packageId")
	if !ok {
		response.BadRequest(w, r, "packageId must be a positive integer", nil)
		return
	}

	p, err := h.plans.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, plan.ErrPlanNotFound) {
			response.NotFound(w, r, "package not found")
			return
		}
		response.InternalError(w, r, "failed to get package")
		return
	}
	response.JSON(w, r, http.StatusOK, p)
}

// Create handles POST /api/packages.
func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.PackagePlanCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if input.PackageName == "" {
		response.BadRequest(w, r, "packageName is required", []models.FieldError{
			{Field: "packageName", Message: "must not be empty"},
		})
		return
	}

	p, err := h.plans.Create(r.Context(), &input)
	if err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	location := fmt.Sprintf("/api/packages/%d", p.PackageID)
	response.Created(w, r, location, p)
}

// Update handles PUT /api/packages/{packageId}.
func (h *PlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "packageId")
	if !ok {
		response.BadRequest(w, r, "packageId must be a positive integer", nil)
		return
	}

	var input models.PackagePlanCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	p, err := h.plans.Update(r.Context(), id, &input)
	if err != nil {
		if errors.Is(err, plan.ErrPlanNotFound) {
			response.NotFound(w, r, "package not found")
			return
		}
		response.BadRequest(w, r, err.Error(), nil)
		return
	}
	response.JSON(w, r, http.StatusOK, p)
}

// Delete handles DELETE /api/packages/{packageId}.
func (h *PlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "packageId")
	if !ok {
		response.BadRequest(w, r, "packageId must be a positive integer", nil)
		return
	}

	if err := h.plans.Delete(r.Context(), id); err != nil {
		if errors.Is(err, plan.ErrPlanNotFound) {
			response.NotFound(w, r, "package not found")
			return
		}
		response.InternalError(w, r, "failed to delete package")
		return
	}
	response.NoContent(w, r)
}

// Purchase handles POST /api/user-packages - purchase a package.
func (h *PlanHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var input models.UserPackagePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if input.UserID <= 0 || input.PackageID <= 0 {
		response.BadRequest(w, r, "userId and packageId are required", nil)
		return
	}

	up, err := h.plans.Purchase(r.Context(), &input)
	if err != nil {
		if errors.Is(err, plan.ErrPlanNotFound) {
			response.BadRequest(w, r, "package not found", nil)
			return
		}
		response.InternalError(w, r, "failed to purchase package")
		return
	}

	location := fmt.Sprintf("/api/user-packages/%d", up.UserPackageID)
	response.Created(w, r, location, up)
}

// ListUserPackages handles GET /api/user-packages/user/{userId}.
func (h *PlanHandler) ListUserPackages(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		response.BadRequest(w, r, "userId must be a positive integer", nil)
		return
	}

	packages, err := h.plans.ListUserPackages(r.Context(), userID)
	if err != nil {
		response.InternalError(w, r, "failed to list user packages")
		return
	}
	response.JSON(w, r, http.StatusOK, packages)
}
