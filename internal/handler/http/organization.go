package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumahr/lms-backend-go/internal/domain/organization"
	"github.com/lumahr/lms-backend-go/internal/handler/http/response"
)

type OrganizationHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	ListUsers(w http.ResponseWriter, r *http.Request)

	ListHolidays(w http.ResponseWriter, r *http.Request)
	CreateHoliday(w http.ResponseWriter, r *http.Request)
	UpdateHoliday(w http.ResponseWriter, r *http.Request)
	DeleteHoliday(w http.ResponseWriter, r *http.Request)

	ListLeaveTypes(w http.ResponseWriter, r *http.Request)
	CreateLeaveType(w http.ResponseWriter, r *http.Request)
	UpdateLeaveType(w http.ResponseWriter, r *http.Request)
	DeleteLeaveType(w http.ResponseWriter, r *http.Request)
}

type OrganizationHandlerImpl struct {
	organizationService organization.OrganizationService
}

func NewOrganizationHandler(organizationService organization.OrganizationService) OrganizationHandler {
	return &OrganizationHandlerImpl{organizationService: organizationService}
}

// Get implements OrganizationHandler.
func (h *OrganizationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	organizationID, err := organizationIDFromClaims(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	org, err := h.organizationService.GetOrganization(r.Context(), organizationID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, org)
}

// ListUsers implements OrganizationHandler.
func (h *OrganizationHandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	organizationID, err := organizationIDFromClaims(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	users, err := h.organizationService.ListUsers(r.Context(), organizationID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, users)
}

// ListHolidays implements OrganizationHandler.
func (h *OrganizationHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	organizationID, err := organizationIDFromClaims(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	holidays, err := h.organizationService.ListHolidays(r.Context(), organizationID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, holidays)
}

// CreateHoliday implements OrganizationHandler.
func (h *OrganizationHandlerImpl) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	organizationID, err := organizationIDFromClaims(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req organization.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateHoliday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	holiday, err := h.organizationService.CreateHoliday(r.Context(), organizationID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created successfully", holiday)
}

// UpdateHoliday implements OrganizationHandler.
func (h *OrganizationHandlerImpl) UpdateHoliday(w http.ResponseWriter, r *http.Request) {
	organizationID, err := organizationIDFromClaims(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req organization.UpdateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateHoliday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	holiday, err := h.organizationService.UpdateHoliday(r.Context(), organizationID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday updated successfully", holiday)
}

// DeleteHoliday implements OrganizationHandler.
func (h *OrganizationHandlerImpl) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	organizationID, err := organizationIDFromClaims(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	holidayID := chi.URLParam(r, "id")
	if holidayID == "" {
		response.BadRequest(w, "Holiday ID is required", nil)
		return
	}

	if err := h.organizationService.DeleteHoliday(r.Context(), organizationID, holidayID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted successfully", nil)
}

// ListLeaveTypes implements OrganizationHandler.
func (h *OrganizationHandlerImpl) ListLeaveTypes(w http.ResponseWriter, r *http.Request) {
	organizationID, err := organizationIDFromClaims(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	leaveTypes, err := h.organizationService.ListLeaveTypes(r.Context(), organizationID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaveTypes)
}

// CreateLeaveType implements OrganizationHandler.
func (h *OrganizationHandlerImpl) CreateLeaveType(w http.ResponseWriter, r *http.Request) {
	organizationID, err := organizationIDFromClaims(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req organization.CreateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateLeaveType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	leaveType, err := h.organizationService.CreateLeaveType(r.Context(), organizationID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave type created successfully", leaveType)
}

// UpdateLeaveType implements OrganizationHandler.
func (h *OrganizationHandlerImpl) UpdateLeaveType(w http.ResponseWriter, r *http.Request) {
	organizationID, err := organizationIDFromClaims(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req organization.UpdateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateLeaveType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	leaveType, err := h.organizationService.UpdateLeaveType(r.Context(), organizationID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type updated successfully", leaveType)
}

// DeleteLeaveType implements OrganizationHandler.
func (h *OrganizationHandlerImpl) DeleteLeaveType(w http.ResponseWriter, r *http.Request) {
	organizationID, err := organizationIDFromClaims(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	leaveTypeID := chi.URLParam(r, "id")
	if leaveTypeID == "" {
		response.BadRequest(w, "Leave type ID is required", nil)
		return
	}

	if err := h.organizationService.DeleteLeaveType(r.Context(), organizationID, leaveTypeID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type deleted successfully", nil)
}
