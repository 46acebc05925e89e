package organization

import "context"

type OrganizationService interface {
	GetOrganization(ctx context.Context, id string) (OrganizationResponse, error)
	ListUsers(ctx context.Context, organizationID string) ([]UserListItem, error)

	// Holidays
	ListHolidays(ctx context.Context, organizationID string) ([]HolidayResponse, error)
	CreateHoliday(ctx context.Context, organizationID string, req CreateHolidayRequest) (HolidayResponse, error)
	UpdateHoliday(ctx context.Context, organizationID string, req UpdateHolidayRequest) (HolidayResponse, error)
	DeleteHoliday(ctx context.Context, organizationID, id string) error

	// Leave types
	ListLeaveTypes(ctx context.Context, organizationID string) ([]LeaveTypeResponse, error)
	CreateLeaveType(ctx context.Context, organizationID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	UpdateLeaveType(ctx context.Context, organizationID string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	DeleteLeaveType(ctx context.Context, organizationID, id string) error

	// ExpandRecurringHolidays materializes recurring holidays into concrete
	// rows for the given year across all organizations.
	ExpandRecurringHolidays(ctx context.Context, year int) (int, error)
}
