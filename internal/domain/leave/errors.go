package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrAlreadyProcessed     = errors.New("leave request already processed")
	ErrOverlappingLeave     = errors.New("an overlapping leave request already exists")
	ErrHolidaysUnavailable  = errors.New("holiday calendar could not be loaded")
	ErrNotSubmittable       = errors.New("leave request is not submittable")
)

// ValidationFailure is a business-rule rejection of a leave request draft.
// Always recoverable by the user changing input, never fatal.
type ValidationFailure struct {
	Reason string
}

func (e *ValidationFailure) Error() string {
	return e.Reason
}
