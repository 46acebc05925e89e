package leave

import (
	"context"

	"github.com/lumahr/lms-backend-go/internal/pkg/calendar"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	GetByEmployeeID(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	GetByOrganizationID(ctx context.Context, organizationID string) ([]LeaveRequest, error)
	CheckOverlapping(ctx context.Context, employeeID string, start, end calendar.Date) (bool, error)
	// UpdateStatus transitions a pending request; it reports false when the
	// request was already decided, which resolves racing approvers.
	UpdateStatus(ctx context.Context, id string, status LeaveRequestStatus, decidedBy string, remarks *string) (bool, error)
	// UsedDays sums effective days of approved requests per leave type for
	// an employee within a calendar year.
	UsedDays(ctx context.Context, employeeID string, year int) (map[string]int, error)
	CountByLeaveTypeID(ctx context.Context, leaveTypeID string) (int64, error)
}

// AuditLogRepository - interface for leave_audit_logs table
type AuditLogRepository interface {
	Create(ctx context.Context, entry AuditLog) (AuditLog, error)
	GetByLeaveRequestID(ctx context.Context, leaveRequestID string) ([]AuditLog, error)
}
