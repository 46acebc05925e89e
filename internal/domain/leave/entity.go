package leave

import (
	"time"

	"github.com/lumahr/lms-backend-go/internal/pkg/calendar"
)

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending   LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved  LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected  LeaveRequestStatus = "rejected"
	LeaveRequestStatusCancelled LeaveRequestStatus = "cancelled"
)

// LeaveRequest entity
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string

	StartDate calendar.Date
	EndDate   calendar.Date

	// EffectiveDays is the chargeable day count: calendar days in the
	// range minus weekends and organizational holidays.
	EffectiveDays int

	Reason string

	Status    LeaveRequestStatus
	Remarks   *string
	DecidedBy *string
	DecidedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Join fields for responses
	EmployeeName  *string
	LeaveTypeName *string
}

// LeaveBalance is the per-employee, per-leave-type, per-year tally.
// Remaining is nil for unlimited (loss of pay) types.
type LeaveBalance struct {
	LeaveTypeID    string
	LeaveTypeName  string
	Year           int
	TotalAllocated int
	TotalUsed      int
	Remaining      *int
}

type AuditAction string

const (
	AuditActionSubmitted AuditAction = "submitted"
	AuditActionApproved  AuditAction = "approved"
	AuditActionRejected  AuditAction = "rejected"
	AuditActionCancelled AuditAction = "cancelled"
)

// AuditLog entry for a leave request's decision trail.
type AuditLog struct {
	ID             string
	LeaveRequestID string
	Action         AuditAction
	ActorID        string
	Remarks        *string
	CreatedAt      time.Time

	// Join fields for responses
	ActorName *string
}
