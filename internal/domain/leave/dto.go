package leave

import (
	"time"

	"github.com/lumahr/lms-backend-go/internal/pkg/calendar"
	"github.com/lumahr/lms-backend-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	EmployeeID  string `json:"-"`
	LeaveTypeID string `json:"leave_type_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Reason      string `json:"reason"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if _, err := calendar.ParseDate(r.StartDate); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if _, err := calendar.ParseDate(r.EndDate); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApproveRequestRequest struct {
	RequestID string `json:"-"`
	Remarks   string `json:"remarks"`
}

func (r *ApproveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectRequestRequest struct {
	RequestID string `json:"-"`
	Remarks   string `json:"remarks"`
}

func (r *RejectRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	// Rejection remarks are mandatory so the employee always sees why.
	if validator.IsEmpty(r.Remarks) {
		errs = append(errs, validator.ValidationError{
			Field:   "remarks",
			Message: "remarks is required when rejecting a leave request",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveRequestResponse struct {
	ID            string        `json:"leave_request_id"`
	EmployeeID    string        `json:"employee_id"`
	EmployeeName  *string       `json:"employee_name,omitempty"`
	LeaveTypeID   string        `json:"leave_type_id"`
	LeaveTypeName *string       `json:"leave_type_name,omitempty"`
	StartDate     calendar.Date `json:"start_date"`
	EndDate       calendar.Date `json:"end_date"`
	EffectiveDays int           `json:"effective_days"`
	Reason        string        `json:"reason"`
	Status        string        `json:"status"`
	Remarks       *string       `json:"remarks,omitempty"`
	DecidedBy     *string       `json:"decided_by,omitempty"`
	DecidedAt     *time.Time    `json:"decided_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

func NewLeaveRequestResponse(lr LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:            lr.ID,
		EmployeeID:    lr.EmployeeID,
		EmployeeName:  lr.EmployeeName,
		LeaveTypeID:   lr.LeaveTypeID,
		LeaveTypeName: lr.LeaveTypeName,
		StartDate:     lr.StartDate,
		EndDate:       lr.EndDate,
		EffectiveDays: lr.EffectiveDays,
		Reason:        lr.Reason,
		Status:        string(lr.Status),
		Remarks:       lr.Remarks,
		DecidedBy:     lr.DecidedBy,
		DecidedAt:     lr.DecidedAt,
		CreatedAt:     lr.CreatedAt,
	}
}

type LeaveBalanceResponse struct {
	LeaveTypeID    string `json:"leave_type_id"`
	LeaveTypeName  string `json:"leave_type_name"`
	Year           int    `json:"year"`
	TotalAllocated int    `json:"total_allocated"`
	TotalUsed      int    `json:"total_used"`
	Remaining      *int   `json:"remaining"`
}

func NewLeaveBalanceResponse(b LeaveBalance) LeaveBalanceResponse {
	return LeaveBalanceResponse{
		LeaveTypeID:    b.LeaveTypeID,
		LeaveTypeName:  b.LeaveTypeName,
		Year:           b.Year,
		TotalAllocated: b.TotalAllocated,
		TotalUsed:      b.TotalUsed,
		Remaining:      b.Remaining,
	}
}

type AuditLogResponse struct {
	ID        string    `json:"audit_log_id"`
	Action    string    `json:"action"`
	ActorID   string    `json:"actor_id"`
	ActorName *string   `json:"actor_name,omitempty"`
	Remarks   *string   `json:"remarks,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewAuditLogResponse(a AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:        a.ID,
		Action:    string(a.Action),
		ActorID:   a.ActorID,
		ActorName: a.ActorName,
		Remarks:   a.Remarks,
		CreatedAt: a.CreatedAt,
	}
}
