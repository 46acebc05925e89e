package response

import (
	"errors"
	"net/http"

	"github.com/lumahr/lms-backend-go/internal/domain/auth"
	"github.com/lumahr/lms-backend-go/internal/domain/leave"
	"github.com/lumahr/lms-backend-go/internal/domain/organization"
	"github.com/lumahr/lms-backend-go/internal/domain/user"
	"github.com/lumahr/lms-backend-go/internal/pkg/calendar"
	"github.com/lumahr/lms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Field-level input errors
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Leave range evaluation failures carry a user-facing reason.
	var failure *leave.ValidationFailure
	if errors.As(err, &failure) {
		BadRequest(w, failure.Reason, nil)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Session expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid session token")
	case errors.Is(err, auth.ErrUserInactive):
		Forbidden(w, "User account is deactivated")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrApproverAccessRequired):
		Forbidden(w, "Approver access required")

	// Organization domain errors
	case errors.Is(err, organization.ErrOrganizationNotFound):
		NotFound(w, "Organization not found")
	case errors.Is(err, organization.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, organization.ErrHolidayDateTaken):
		Conflict(w, "A holiday already exists on that date")
	case errors.Is(err, organization.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, organization.ErrLeaveTypeInUse):
		Conflict(w, "Leave type is referenced by existing leave requests")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "An overlapping leave request already exists")
	case errors.Is(err, leave.ErrNotSubmittable):
		BadRequest(w, "Leave request is incomplete", nil)
	case errors.Is(err, leave.ErrHolidaysUnavailable):
		ServiceUnavailable(w, "Holiday calendar is unavailable, please try again")

	// Shared errors
	case errors.Is(err, calendar.ErrInvalidDate):
		BadRequest(w, "Invalid date, expected YYYY-MM-DD", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
