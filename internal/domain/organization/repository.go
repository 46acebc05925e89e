package organization

import (
	"context"

	"github.com/lumahr/lms-backend-go/internal/pkg/calendar"
)

// OrganizationRepository - interface for organizations table
type OrganizationRepository interface {
	GetByID(ctx context.Context, id string) (Organization, error)
}

// HolidayRepository - interface for holidays table
type HolidayRepository interface {
	Create(ctx context.Context, holiday Holiday) (Holiday, error)
	GetByID(ctx context.Context, id string) (Holiday, error)
	GetByOrganizationID(ctx context.Context, organizationID string) ([]Holiday, error)
	GetByDate(ctx context.Context, organizationID string, date calendar.Date) (Holiday, error)
	ListRecurring(ctx context.Context) ([]Holiday, error)
	Update(ctx context.Context, holiday Holiday) error
	Delete(ctx context.Context, id string) error
}

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	GetByOrganizationID(ctx context.Context, organizationID string) ([]LeaveType, error)
	Update(ctx context.Context, leaveType LeaveType) error
	Delete(ctx context.Context, id string) error
}
