package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lumahr/lms-backend-go/internal/domain/leave"
	"github.com/lumahr/lms-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	GetAuditLog(w http.ResponseWriter, r *http.Request)

	GetMyBalances(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// CreateRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	employeeID, err := userIDFromClaims(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.CreateLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", result)
}

// ListRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	organizationID, err := organizationIDFromClaims(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requests, err := h.leaveService.ListLeaveRequests(r.Context(), organizationID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// GetMyRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID, err := userIDFromClaims(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requests, err := h.leaveService.ListMyLeaveRequests(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ApproveRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	approverID, err := userIDFromClaims(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	req := leave.ApproveRequestRequest{RequestID: chi.URLParam(r, "id")}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("ApproveRequest decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
		req.RequestID = chi.URLParam(r, "id")
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.ApproveLeaveRequest(r.Context(), req, approverID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved successfully", result)
}

// RejectRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	approverID, err := userIDFromClaims(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req leave.RejectRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RejectRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.RejectLeaveRequest(r.Context(), req, approverID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected successfully", result)
}

// GetAuditLog implements LeaveHandler.
func (h *LeaveHandlerImpl) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	entries, err := h.leaveService.GetAuditLog(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

// GetMyBalances implements LeaveHandler.
func (h *LeaveHandlerImpl) GetMyBalances(w http.ResponseWriter, r *http.Request) {
	employeeID, err := userIDFromClaims(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		year = parsed
	}

	balances, err := h.leaveService.ListMyBalances(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}
