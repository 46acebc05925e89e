package organization

import (
	"github.com/lumahr/lms-backend-go/internal/pkg/calendar"
	"github.com/lumahr/lms-backend-go/internal/pkg/validator"
)

type HolidayResponse struct {
	ID          string        `json:"holiday_id"`
	Name        string        `json:"name"`
	Date        calendar.Date `json:"holiday_date"`
	IsRecurring bool          `json:"is_recurring"`
}

func NewHolidayResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID,
		Name:        h.Name,
		Date:        h.Date,
		IsRecurring: h.IsRecurring,
	}
}

type CreateHolidayRequest struct {
	Name        string `json:"name"`
	Date        string `json:"holiday_date"`
	IsRecurring bool   `json:"is_recurring"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "holiday_date",
			Message: "holiday_date is required",
		})
	} else if _, err := calendar.ParseDate(r.Date); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "holiday_date",
			Message: "holiday_date must be a valid date in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateHolidayRequest struct {
	ID          string `json:"-"`
	Name        string `json:"name"`
	Date        string `json:"holiday_date"`
	IsRecurring bool   `json:"is_recurring"`
}

func (r *UpdateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "holiday_id",
			Message: "holiday_id is required",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "holiday_date",
			Message: "holiday_date is required",
		})
	} else if _, err := calendar.ParseDate(r.Date); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "holiday_date",
			Message: "holiday_date must be a valid date in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveTypeResponse struct {
	ID             string `json:"leave_type_id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	MaxDaysPerYear int    `json:"max_days_per_year"`
	IsUnlimited    bool   `json:"is_unlimited"`
}

func NewLeaveTypeResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:             lt.ID,
		Name:           lt.Name,
		Description:    lt.Description,
		MaxDaysPerYear: lt.MaxDaysPerYear,
		IsUnlimited:    lt.IsUnlimited(),
	}
}

type CreateLeaveTypeRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	MaxDaysPerYear int    `json:"max_days_per_year"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}
	if r.MaxDaysPerYear < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_days_per_year",
			Message: "max_days_per_year must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLeaveTypeRequest struct {
	ID             string `json:"-"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	MaxDaysPerYear int    `json:"max_days_per_year"`
}

func (r *UpdateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if r.MaxDaysPerYear < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_days_per_year",
			Message: "max_days_per_year must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type OrganizationResponse struct {
	ID        string `json:"organization_id"`
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
}

type UserListItem struct {
	UserID      string  `json:"user_id"`
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Role        string  `json:"role"`
	ManagerID   *string `json:"manager_id,omitempty"`
	ManagerName *string `json:"manager_name,omitempty"`
	IsActive    bool    `json:"is_active"`
}
