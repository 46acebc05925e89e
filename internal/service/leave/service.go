package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lumahr/lms-backend-go/internal/domain/leave"
	"github.com/lumahr/lms-backend-go/internal/domain/organization"
	"github.com/lumahr/lms-backend-go/internal/domain/user"
	"github.com/lumahr/lms-backend-go/internal/pkg/calendar"
	"github.com/lumahr/lms-backend-go/internal/pkg/database"
	"github.com/lumahr/lms-backend-go/internal/repository/postgresql"
)

type LeaveServiceImpl struct {
	db *database.DB
	leave.LeaveRequestRepository
	leave.AuditLogRepository
	organization.HolidayRepository
	organization.LeaveTypeRepository
	user.UserRepository

	// now is the calendar-day clock, swappable in tests.
	now func() calendar.Date
}

func NewLeaveService(
	db *database.DB,
	leaveRequestRepository leave.LeaveRequestRepository,
	auditLogRepository leave.AuditLogRepository,
	holidayRepository organization.HolidayRepository,
	leaveTypeRepository organization.LeaveTypeRepository,
	userRepository user.UserRepository,
) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		db:                     db,
		LeaveRequestRepository: leaveRequestRepository,
		AuditLogRepository:     auditLogRepository,
		HolidayRepository:      holidayRepository,
		LeaveTypeRepository:    leaveTypeRepository,
		UserRepository:         userRepository,
		now:                    calendar.Today,
	}
}

// CreateLeaveRequest implements leave.LeaveService.
//
// Holiday lookup fails closed: when the holiday calendar cannot be loaded
// the request is refused rather than evaluated against an empty calendar,
// which would wrongly validate holiday-only ranges.
func (l *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	emp, err := l.UserRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	leaveType, err := l.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequestResponse{}, organization.ErrLeaveTypeNotFound
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave type: %w", err)
	}
	if leaveType.OrganizationID != emp.OrganizationID {
		return leave.LeaveRequestResponse{}, organization.ErrLeaveTypeNotFound
	}

	startDate, err := calendar.ParseDate(req.StartDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	endDate, err := calendar.ParseDate(req.EndDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	holidays, err := l.HolidayRepository.GetByOrganizationID(ctx, emp.OrganizationID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("%w: %v", leave.ErrHolidaysUnavailable, err)
	}

	balance, err := l.balanceFor(ctx, emp, leaveType, startDate.Year)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to compute leave balance: %w", err)
	}

	draft := Draft{LeaveTypeID: leaveType.ID, StartDate: startDate, EndDate: endDate}
	ev := Evaluate(draft, holidays, &balance, leaveType.IsUnlimited(), l.now())
	if ev.Incomplete {
		return leave.LeaveRequestResponse{}, leave.ErrNotSubmittable
	}
	if !ev.Valid {
		return leave.LeaveRequestResponse{}, &leave.ValidationFailure{Reason: ev.Reason}
	}

	var created leave.LeaveRequest
	err = postgresql.WithTransaction(ctx, l.db, func(txCtx context.Context) error {
		hasOverlap, err := l.LeaveRequestRepository.CheckOverlapping(txCtx, emp.ID, startDate, endDate)
		if err != nil {
			return fmt.Errorf("failed to check overlapping leave requests: %w", err)
		}
		if hasOverlap {
			return leave.ErrOverlappingLeave
		}

		request := leave.LeaveRequest{
			EmployeeID:    emp.ID,
			LeaveTypeID:   leaveType.ID,
			StartDate:     startDate,
			EndDate:       endDate,
			EffectiveDays: ev.EffectiveDays,
			Reason:        req.Reason,
			Status:        leave.LeaveRequestStatusPending,
		}

		created, err = l.LeaveRequestRepository.Create(txCtx, request)
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}

		_, err = l.AuditLogRepository.Create(txCtx, leave.AuditLog{
			LeaveRequestID: created.ID,
			Action:         leave.AuditActionSubmitted,
			ActorID:        emp.ID,
		})
		if err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	created.EmployeeName = strPtr(emp.FullName())
	created.LeaveTypeName = &leaveType.Name
	return leave.NewLeaveRequestResponse(created), nil
}

// ApproveLeaveRequest implements leave.LeaveService. The pending-status
// guard lives in the UPDATE statement, so two racing approvers cannot both
// win; the loser gets ErrAlreadyProcessed.
func (l *LeaveServiceImpl) ApproveLeaveRequest(ctx context.Context, req leave.ApproveRequestRequest, approverID string) (leave.LeaveRequestResponse, error) {
	return l.decide(ctx, req.RequestID, approverID, req.Remarks, leave.LeaveRequestStatusApproved, leave.AuditActionApproved)
}

// RejectLeaveRequest implements leave.LeaveService. Remarks are mandatory,
// enforced by the DTO validation.
func (l *LeaveServiceImpl) RejectLeaveRequest(ctx context.Context, req leave.RejectRequestRequest, approverID string) (leave.LeaveRequestResponse, error) {
	return l.decide(ctx, req.RequestID, approverID, req.Remarks, leave.LeaveRequestStatusRejected, leave.AuditActionRejected)
}

func (l *LeaveServiceImpl) decide(ctx context.Context, requestID, approverID, remarks string, status leave.LeaveRequestStatus, action leave.AuditAction) (leave.LeaveRequestResponse, error) {
	request, err := l.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	if request.Status != leave.LeaveRequestStatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrAlreadyProcessed
	}

	var remarksPtr *string
	if remarks != "" {
		remarksPtr = &remarks
	}

	err = postgresql.WithTransaction(ctx, l.db, func(txCtx context.Context) error {
		updated, err := l.LeaveRequestRepository.UpdateStatus(txCtx, request.ID, status, approverID, remarksPtr)
		if err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		if !updated {
			return leave.ErrAlreadyProcessed
		}

		_, err = l.AuditLogRepository.Create(txCtx, leave.AuditLog{
			LeaveRequestID: request.ID,
			Action:         action,
			ActorID:        approverID,
			Remarks:        remarksPtr,
		})
		if err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request.Status = status
	request.Remarks = remarksPtr
	request.DecidedBy = &approverID
	now := time.Now()
	request.DecidedAt = &now
	return leave.NewLeaveRequestResponse(request), nil
}

// ListLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, organizationID string) ([]leave.LeaveRequestResponse, error) {
	requests, err := l.LeaveRequestRepository.GetByOrganizationID(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return toResponses(requests), nil
}

// ListMyLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListMyLeaveRequests(ctx context.Context, employeeID string) ([]leave.LeaveRequestResponse, error) {
	requests, err := l.LeaveRequestRepository.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave history: %w", err)
	}
	return toResponses(requests), nil
}

// GetAuditLog implements leave.LeaveService.
func (l *LeaveServiceImpl) GetAuditLog(ctx context.Context, leaveRequestID string) ([]leave.AuditLogResponse, error) {
	if _, err := l.LeaveRequestRepository.GetByID(ctx, leaveRequestID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, leave.ErrLeaveRequestNotFound
		}
		return nil, fmt.Errorf("failed to get leave request: %w", err)
	}

	entries, err := l.AuditLogRepository.GetByLeaveRequestID(ctx, leaveRequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log: %w", err)
	}

	responses := make([]leave.AuditLogResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, leave.NewAuditLogResponse(e))
	}
	return responses, nil
}

// ListMyBalances implements leave.LeaveService. Balances are derived, not
// stored: allocation comes from the leave type, usage from approved requests
// in the year, so approving a request consumes balance with no separate
// bookkeeping to drift.
func (l *LeaveServiceImpl) ListMyBalances(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalanceResponse, error) {
	emp, err := l.UserRepository.GetByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	leaveTypes, err := l.LeaveTypeRepository.GetByOrganizationID(ctx, emp.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	used, err := l.LeaveRequestRepository.UsedDays(ctx, emp.ID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to sum used leave days: %w", err)
	}

	balances := make([]leave.LeaveBalanceResponse, 0, len(leaveTypes))
	for _, lt := range leaveTypes {
		balances = append(balances, leave.NewLeaveBalanceResponse(buildBalance(lt, used[lt.ID], year)))
	}
	return balances, nil
}

func (l *LeaveServiceImpl) balanceFor(ctx context.Context, emp user.User, leaveType organization.LeaveType, year int) (leave.LeaveBalance, error) {
	used, err := l.LeaveRequestRepository.UsedDays(ctx, emp.ID, year)
	if err != nil {
		return leave.LeaveBalance{}, err
	}
	return buildBalance(leaveType, used[leaveType.ID], year), nil
}

func buildBalance(lt organization.LeaveType, usedDays, year int) leave.LeaveBalance {
	balance := leave.LeaveBalance{
		LeaveTypeID:    lt.ID,
		LeaveTypeName:  lt.Name,
		Year:           year,
		TotalAllocated: lt.MaxDaysPerYear,
		TotalUsed:      usedDays,
	}
	if !lt.IsUnlimited() {
		remaining := lt.MaxDaysPerYear - usedDays
		if remaining < 0 {
			remaining = 0
		}
		balance.Remaining = &remaining
	}
	return balance
}

func toResponses(requests []leave.LeaveRequest) []leave.LeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.NewLeaveRequestResponse(r))
	}
	return responses
}

func strPtr(s string) *string { return &s }
