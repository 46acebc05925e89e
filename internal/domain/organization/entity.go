package organization

import (
	"time"

	"github.com/lumahr/lms-backend-go/internal/pkg/calendar"
)

// Organization entity
type Organization struct {
	ID        string
	Name      string
	Subdomain string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Holiday entity. Recurring holidays are materialized per year by a
// background job, so Date is always a concrete calendar date and the
// evaluator never shifts years itself.
type Holiday struct {
	ID             string
	OrganizationID string
	Name           string
	Date           calendar.Date
	IsRecurring    bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LeaveType entity
type LeaveType struct {
	ID             string
	OrganizationID string
	Name           string
	Description    string
	MaxDaysPerYear int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsUnlimited reports whether the type is unpaid leave, exempt from
// balance-sufficiency checks. The marker is the type name containing
// "loss of pay", matching the original product convention.
func (lt *LeaveType) IsUnlimited() bool {
	return IsLossOfPayName(lt.Name)
}
