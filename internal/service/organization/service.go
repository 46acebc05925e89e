package organization

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lumahr/lms-backend-go/internal/domain/leave"
	"github.com/lumahr/lms-backend-go/internal/domain/organization"
	"github.com/lumahr/lms-backend-go/internal/domain/user"
	"github.com/lumahr/lms-backend-go/internal/pkg/calendar"
)

type OrganizationServiceImpl struct {
	organization.OrganizationRepository
	organization.HolidayRepository
	organization.LeaveTypeRepository
	leave.LeaveRequestRepository
	user.UserRepository
}

func NewOrganizationService(
	organizationRepository organization.OrganizationRepository,
	holidayRepository organization.HolidayRepository,
	leaveTypeRepository organization.LeaveTypeRepository,
	leaveRequestRepository leave.LeaveRequestRepository,
	userRepository user.UserRepository,
) *OrganizationServiceImpl {
	return &OrganizationServiceImpl{
		OrganizationRepository: organizationRepository,
		HolidayRepository:      holidayRepository,
		LeaveTypeRepository:    leaveTypeRepository,
		LeaveRequestRepository: leaveRequestRepository,
		UserRepository:         userRepository,
	}
}

func (s *OrganizationServiceImpl) GetOrganization(ctx context.Context, id string) (organization.OrganizationResponse, error) {
	org, err := s.OrganizationRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.OrganizationResponse{}, organization.ErrOrganizationNotFound
		}
		return organization.OrganizationResponse{}, fmt.Errorf("failed to get organization: %w", err)
	}
	return organization.OrganizationResponse{ID: org.ID, Name: org.Name, Subdomain: org.Subdomain}, nil
}

func (s *OrganizationServiceImpl) ListUsers(ctx context.Context, organizationID string) ([]organization.UserListItem, error) {
	users, err := s.UserRepository.GetByOrganizationID(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	items := make([]organization.UserListItem, 0, len(users))
	for _, u := range users {
		items = append(items, organization.UserListItem{
			UserID:      u.ID,
			Email:       u.Email,
			FirstName:   u.FirstName,
			LastName:    u.LastName,
			Role:        string(u.Role),
			ManagerID:   u.ManagerID,
			ManagerName: u.ManagerName,
			IsActive:    u.IsActive,
		})
	}
	return items, nil
}

func (s *OrganizationServiceImpl) ListHolidays(ctx context.Context, organizationID string) ([]organization.HolidayResponse, error) {
	holidays, err := s.HolidayRepository.GetByOrganizationID(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]organization.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, organization.NewHolidayResponse(h))
	}
	return responses, nil
}

func (s *OrganizationServiceImpl) CreateHoliday(ctx context.Context, organizationID string, req organization.CreateHolidayRequest) (organization.HolidayResponse, error) {
	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		return organization.HolidayResponse{}, err
	}

	if _, err := s.HolidayRepository.GetByDate(ctx, organizationID, date); err == nil {
		return organization.HolidayResponse{}, organization.ErrHolidayDateTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return organization.HolidayResponse{}, fmt.Errorf("failed to check holiday date: %w", err)
	}

	created, err := s.HolidayRepository.Create(ctx, organization.Holiday{
		OrganizationID: organizationID,
		Name:           req.Name,
		Date:           date,
		IsRecurring:    req.IsRecurring,
	})
	if err != nil {
		return organization.HolidayResponse{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return organization.NewHolidayResponse(created), nil
}

func (s *OrganizationServiceImpl) UpdateHoliday(ctx context.Context, organizationID string, req organization.UpdateHolidayRequest) (organization.HolidayResponse, error) {
	holiday, err := s.HolidayRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.HolidayResponse{}, organization.ErrHolidayNotFound
		}
		return organization.HolidayResponse{}, fmt.Errorf("failed to get holiday: %w", err)
	}
	if holiday.OrganizationID != organizationID {
		return organization.HolidayResponse{}, organization.ErrHolidayNotFound
	}

	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		return organization.HolidayResponse{}, err
	}

	holiday.Name = req.Name
	holiday.Date = date
	holiday.IsRecurring = req.IsRecurring
	if err := s.HolidayRepository.Update(ctx, holiday); err != nil {
		return organization.HolidayResponse{}, fmt.Errorf("failed to update holiday: %w", err)
	}
	return organization.NewHolidayResponse(holiday), nil
}

func (s *OrganizationServiceImpl) DeleteHoliday(ctx context.Context, organizationID, id string) error {
	holiday, err := s.HolidayRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.ErrHolidayNotFound
		}
		return fmt.Errorf("failed to get holiday: %w", err)
	}
	if holiday.OrganizationID != organizationID {
		return organization.ErrHolidayNotFound
	}

	if err := s.HolidayRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	return nil
}

func (s *OrganizationServiceImpl) ListLeaveTypes(ctx context.Context, organizationID string) ([]organization.LeaveTypeResponse, error) {
	leaveTypes, err := s.LeaveTypeRepository.GetByOrganizationID(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	responses := make([]organization.LeaveTypeResponse, 0, len(leaveTypes))
	for _, lt := range leaveTypes {
		responses = append(responses, organization.NewLeaveTypeResponse(lt))
	}
	return responses, nil
}

func (s *OrganizationServiceImpl) CreateLeaveType(ctx context.Context, organizationID string, req organization.CreateLeaveTypeRequest) (organization.LeaveTypeResponse, error) {
	created, err := s.LeaveTypeRepository.Create(ctx, organization.LeaveType{
		OrganizationID: organizationID,
		Name:           req.Name,
		Description:    req.Description,
		MaxDaysPerYear: req.MaxDaysPerYear,
	})
	if err != nil {
		return organization.LeaveTypeResponse{}, fmt.Errorf("failed to create leave type: %w", err)
	}
	return organization.NewLeaveTypeResponse(created), nil
}

func (s *OrganizationServiceImpl) UpdateLeaveType(ctx context.Context, organizationID string, req organization.UpdateLeaveTypeRequest) (organization.LeaveTypeResponse, error) {
	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.LeaveTypeResponse{}, organization.ErrLeaveTypeNotFound
		}
		return organization.LeaveTypeResponse{}, fmt.Errorf("failed to get leave type: %w", err)
	}
	if leaveType.OrganizationID != organizationID {
		return organization.LeaveTypeResponse{}, organization.ErrLeaveTypeNotFound
	}

	leaveType.Name = req.Name
	leaveType.Description = req.Description
	leaveType.MaxDaysPerYear = req.MaxDaysPerYear
	if err := s.LeaveTypeRepository.Update(ctx, leaveType); err != nil {
		return organization.LeaveTypeResponse{}, fmt.Errorf("failed to update leave type: %w", err)
	}
	return organization.NewLeaveTypeResponse(leaveType), nil
}

// DeleteLeaveType refuses to delete a type that leave requests reference;
// history must stay resolvable.
func (s *OrganizationServiceImpl) DeleteLeaveType(ctx context.Context, organizationID, id string) error {
	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.ErrLeaveTypeNotFound
		}
		return fmt.Errorf("failed to get leave type: %w", err)
	}
	if leaveType.OrganizationID != organizationID {
		return organization.ErrLeaveTypeNotFound
	}

	count, err := s.LeaveRequestRepository.CountByLeaveTypeID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count leave requests: %w", err)
	}
	if count > 0 {
		return organization.ErrLeaveTypeInUse
	}

	if err := s.LeaveTypeRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete leave type: %w", err)
	}
	return nil
}

// ExpandRecurringHolidays materializes each recurring holiday into the given
// year when no holiday exists on the shifted date yet. Run by the scheduler
// so the evaluator only ever compares concrete dates.
func (s *OrganizationServiceImpl) ExpandRecurringHolidays(ctx context.Context, year int) (int, error) {
	recurring, err := s.HolidayRepository.ListRecurring(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list recurring holidays: %w", err)
	}

	created := 0
	for _, h := range recurring {
		if h.Date.Year >= year {
			continue
		}

		target := calendar.Date{Year: year, Month: h.Date.Month, Day: h.Date.Day}
		// Feb 29 in a non-leap year lands on Feb 28.
		if target.Month == 2 && target.Day == 29 && !isLeapYear(year) {
			target.Day = 28
		}

		if _, err := s.HolidayRepository.GetByDate(ctx, h.OrganizationID, target); err == nil {
			continue
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return created, fmt.Errorf("failed to check holiday date: %w", err)
		}

		_, err := s.HolidayRepository.Create(ctx, organization.Holiday{
			OrganizationID: h.OrganizationID,
			Name:           h.Name,
			Date:           target,
			IsRecurring:    true,
		})
		if err != nil {
			return created, fmt.Errorf("failed to materialize holiday %q for %d: %w", h.Name, year, err)
		}
		created++
	}
	return created, nil
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
