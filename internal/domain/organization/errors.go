package organization

import "errors"

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrHolidayNotFound      = errors.New("holiday not found")
	ErrHolidayDateTaken     = errors.New("a holiday already exists on that date")
	ErrLeaveTypeNotFound    = errors.New("leave type not found")
	ErrLeaveTypeInUse       = errors.New("leave type has leave requests and cannot be deleted")
)
