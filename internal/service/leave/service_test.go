package leave

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumahr/lms-backend-go/internal/domain/leave"
	"github.com/lumahr/lms-backend-go/internal/domain/organization"
	"github.com/lumahr/lms-backend-go/internal/domain/user"
	"github.com/lumahr/lms-backend-go/internal/pkg/calendar"
)

func mustParseDate(s string) calendar.Date {
	d, err := calendar.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// In-memory repositories so service behavior is testable without Postgres.
// Transactions degrade to plain calls because the service runs with a nil DB.

type memUserRepo struct {
	users map[string]user.User
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, pgx.ErrNoRows
}

func (r *memUserRepo) GetByOrganizationID(_ context.Context, organizationID string) ([]user.User, error) {
	var out []user.User
	for _, u := range r.users {
		if u.OrganizationID == organizationID {
			out = append(out, u)
		}
	}
	return out, nil
}

type memHolidayRepo struct {
	holidays []organization.Holiday
	listErr  error
}

func (r *memHolidayRepo) Create(_ context.Context, h organization.Holiday) (organization.Holiday, error) {
	h.ID = fmt.Sprintf("holiday-%d", len(r.holidays)+1)
	r.holidays = append(r.holidays, h)
	return h, nil
}

func (r *memHolidayRepo) GetByID(_ context.Context, id string) (organization.Holiday, error) {
	for _, h := range r.holidays {
		if h.ID == id {
			return h, nil
		}
	}
	return organization.Holiday{}, pgx.ErrNoRows
}

func (r *memHolidayRepo) GetByOrganizationID(_ context.Context, organizationID string) ([]organization.Holiday, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []organization.Holiday
	for _, h := range r.holidays {
		if h.OrganizationID == organizationID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *memHolidayRepo) GetByDate(_ context.Context, organizationID string, date calendar.Date) (organization.Holiday, error) {
	for _, h := range r.holidays {
		if h.OrganizationID == organizationID && h.Date.Equal(date) {
			return h, nil
		}
	}
	return organization.Holiday{}, pgx.ErrNoRows
}

func (r *memHolidayRepo) ListRecurring(_ context.Context) ([]organization.Holiday, error) {
	var out []organization.Holiday
	for _, h := range r.holidays {
		if h.IsRecurring {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *memHolidayRepo) Update(_ context.Context, holiday organization.Holiday) error {
	for i, h := range r.holidays {
		if h.ID == holiday.ID {
			r.holidays[i] = holiday
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *memHolidayRepo) Delete(_ context.Context, id string) error {
	for i, h := range r.holidays {
		if h.ID == id {
			r.holidays = append(r.holidays[:i], r.holidays[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type memLeaveTypeRepo struct {
	types map[string]organization.LeaveType
}

func (r *memLeaveTypeRepo) Create(_ context.Context, lt organization.LeaveType) (organization.LeaveType, error) {
	lt.ID = fmt.Sprintf("type-%d", len(r.types)+1)
	r.types[lt.ID] = lt
	return lt, nil
}

func (r *memLeaveTypeRepo) GetByID(_ context.Context, id string) (organization.LeaveType, error) {
	lt, ok := r.types[id]
	if !ok {
		return organization.LeaveType{}, pgx.ErrNoRows
	}
	return lt, nil
}

func (r *memLeaveTypeRepo) GetByOrganizationID(_ context.Context, organizationID string) ([]organization.LeaveType, error) {
	var out []organization.LeaveType
	for _, lt := range r.types {
		if lt.OrganizationID == organizationID {
			out = append(out, lt)
		}
	}
	return out, nil
}

func (r *memLeaveTypeRepo) Update(_ context.Context, lt organization.LeaveType) error {
	if _, ok := r.types[lt.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.types[lt.ID] = lt
	return nil
}

func (r *memLeaveTypeRepo) Delete(_ context.Context, id string) error {
	delete(r.types, id)
	return nil
}

type memLeaveRequestRepo struct {
	requests map[string]leave.LeaveRequest
	seq      int
}

func (r *memLeaveRequestRepo) Create(_ context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.seq++
	request.ID = fmt.Sprintf("request-%d", r.seq)
	r.requests[request.ID] = request
	return request, nil
}

func (r *memLeaveRequestRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	lr, ok := r.requests[id]
	if !ok {
		return leave.LeaveRequest{}, pgx.ErrNoRows
	}
	return lr, nil
}

func (r *memLeaveRequestRepo) GetByEmployeeID(_ context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, lr := range r.requests {
		if lr.EmployeeID == employeeID {
			out = append(out, lr)
		}
	}
	return out, nil
}

func (r *memLeaveRequestRepo) GetByOrganizationID(_ context.Context, _ string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, lr := range r.requests {
		out = append(out, lr)
	}
	return out, nil
}

func (r *memLeaveRequestRepo) CheckOverlapping(_ context.Context, employeeID string, start, end calendar.Date) (bool, error) {
	for _, lr := range r.requests {
		if lr.EmployeeID != employeeID {
			continue
		}
		if lr.Status != leave.LeaveRequestStatusPending && lr.Status != leave.LeaveRequestStatusApproved {
			continue
		}
		if !lr.StartDate.After(end) && !lr.EndDate.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memLeaveRequestRepo) UpdateStatus(_ context.Context, id string, status leave.LeaveRequestStatus, decidedBy string, remarks *string) (bool, error) {
	lr, ok := r.requests[id]
	if !ok || lr.Status != leave.LeaveRequestStatusPending {
		return false, nil
	}
	lr.Status = status
	lr.DecidedBy = &decidedBy
	lr.Remarks = remarks
	r.requests[id] = lr
	return true, nil
}

func (r *memLeaveRequestRepo) UsedDays(_ context.Context, employeeID string, year int) (map[string]int, error) {
	used := make(map[string]int)
	for _, lr := range r.requests {
		if lr.EmployeeID == employeeID && lr.Status == leave.LeaveRequestStatusApproved && lr.StartDate.Year == year {
			used[lr.LeaveTypeID] += lr.EffectiveDays
		}
	}
	return used, nil
}

func (r *memLeaveRequestRepo) CountByLeaveTypeID(_ context.Context, leaveTypeID string) (int64, error) {
	var count int64
	for _, lr := range r.requests {
		if lr.LeaveTypeID == leaveTypeID {
			count++
		}
	}
	return count, nil
}

type memAuditLogRepo struct {
	entries []leave.AuditLog
}

func (r *memAuditLogRepo) Create(_ context.Context, entry leave.AuditLog) (leave.AuditLog, error) {
	entry.ID = fmt.Sprintf("audit-%d", len(r.entries)+1)
	r.entries = append(r.entries, entry)
	return entry, nil
}

func (r *memAuditLogRepo) GetByLeaveRequestID(_ context.Context, leaveRequestID string) ([]leave.AuditLog, error) {
	var out []leave.AuditLog
	for _, e := range r.entries {
		if e.LeaveRequestID == leaveRequestID {
			out = append(out, e)
		}
	}
	return out, nil
}

type serviceFixture struct {
	svc      *LeaveServiceImpl
	users    *memUserRepo
	holidays *memHolidayRepo
	types    *memLeaveTypeRepo
	requests *memLeaveRequestRepo
	audits   *memAuditLogRepo
}

const (
	testEmployeeID = "employee-1"
	testApproverID = "approver-1"
	testOrgID      = "org-1"
	testTypeID     = "type-annual"
)

// newServiceFixture seeds one employee, one approver and a 12-day annual
// leave type. The clock is pinned to Monday 2026-03-02.
func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		users: &memUserRepo{users: map[string]user.User{
			testEmployeeID: {
				ID:             testEmployeeID,
				OrganizationID: testOrgID,
				Email:          "jane@example.com",
				FirstName:      "Jane",
				LastName:       "Doe",
				Role:           user.RoleEmployee,
				IsActive:       true,
			},
			testApproverID: {
				ID:             testApproverID,
				OrganizationID: testOrgID,
				Email:          "mark@example.com",
				FirstName:      "Mark",
				LastName:       "Lee",
				Role:           user.RoleAdmin,
				IsActive:       true,
			},
		}},
		holidays: &memHolidayRepo{},
		types: &memLeaveTypeRepo{types: map[string]organization.LeaveType{
			testTypeID: {
				ID:             testTypeID,
				OrganizationID: testOrgID,
				Name:           "Annual Leave",
				MaxDaysPerYear: 12,
			},
		}},
		requests: &memLeaveRequestRepo{requests: map[string]leave.LeaveRequest{}},
		audits:   &memAuditLogRepo{},
	}

	f.svc = NewLeaveService(nil, f.requests, f.audits, f.holidays, f.types, f.users)
	f.svc.now = func() calendar.Date { return mustParseDate("2026-03-02") }
	return f
}

func createReq(start, end string) leave.CreateLeaveRequestRequest {
	return leave.CreateLeaveRequestRequest{
		EmployeeID:  testEmployeeID,
		LeaveTypeID: testTypeID,
		StartDate:   start,
		EndDate:     end,
		Reason:      "family trip",
	}
}

func TestCreateLeaveRequest_FullWeek(t *testing.T) {
	f := newServiceFixture()

	result, err := f.svc.CreateLeaveRequest(context.Background(), createReq("2026-03-02", "2026-03-06"))
	require.NoError(t, err)

	assert.Equal(t, 5, result.EffectiveDays)
	assert.Equal(t, string(leave.LeaveRequestStatusPending), result.Status)
	require.NotNil(t, result.EmployeeName)
	assert.Equal(t, "Jane Doe", *result.EmployeeName)

	require.Len(t, f.audits.entries, 1)
	assert.Equal(t, leave.AuditActionSubmitted, f.audits.entries[0].Action)
	assert.Equal(t, testEmployeeID, f.audits.entries[0].ActorID)
}

func TestCreateLeaveRequest_HolidayReducesEffectiveDays(t *testing.T) {
	f := newServiceFixture()
	f.holidays.holidays = append(f.holidays.holidays, organization.Holiday{
		ID:             "holiday-1",
		OrganizationID: testOrgID,
		Name:           "Founders Day",
		Date:           mustParseDate("2026-03-04"),
	})

	result, err := f.svc.CreateLeaveRequest(context.Background(), createReq("2026-03-02", "2026-03-06"))
	require.NoError(t, err)
	assert.Equal(t, 4, result.EffectiveDays)
}

func TestCreateLeaveRequest_HolidayLoadFailureRefusesRequest(t *testing.T) {
	f := newServiceFixture()
	f.holidays.listErr = errors.New("connection refused")

	_, err := f.svc.CreateLeaveRequest(context.Background(), createReq("2026-03-02", "2026-03-06"))
	assert.ErrorIs(t, err, leave.ErrHolidaysUnavailable)
	assert.Empty(t, f.requests.requests)
}

func TestCreateLeaveRequest_OverlapConflict(t *testing.T) {
	f := newServiceFixture()
	_, err := f.svc.CreateLeaveRequest(context.Background(), createReq("2026-03-02", "2026-03-06"))
	require.NoError(t, err)

	_, err = f.svc.CreateLeaveRequest(context.Background(), createReq("2026-03-05", "2026-03-10"))
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
}

func TestCreateLeaveRequest_RejectedRequestDoesNotBlock(t *testing.T) {
	f := newServiceFixture()
	result, err := f.svc.CreateLeaveRequest(context.Background(), createReq("2026-03-02", "2026-03-06"))
	require.NoError(t, err)

	_, err = f.svc.RejectLeaveRequest(context.Background(), leave.RejectRequestRequest{
		RequestID: result.ID,
		Remarks:   "coverage conflict",
	}, testApproverID)
	require.NoError(t, err)

	_, err = f.svc.CreateLeaveRequest(context.Background(), createReq("2026-03-02", "2026-03-06"))
	assert.NoError(t, err)
}

func TestCreateLeaveRequest_PastDated(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.CreateLeaveRequest(context.Background(), createReq("2026-02-23", "2026-02-25"))

	var failure *leave.ValidationFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, ReasonPastDated, failure.Reason)
}

func TestCreateLeaveRequest_SingleWeekendDay(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.CreateLeaveRequest(context.Background(), createReq("2026-03-07", "2026-03-07"))

	var failure *leave.ValidationFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, ReasonSingleNonWorking, failure.Reason)
}

func TestCreateLeaveRequest_InsufficientBalance(t *testing.T) {
	f := newServiceFixture()
	lt := f.types.types[testTypeID]
	lt.MaxDaysPerYear = 3
	f.types.types[testTypeID] = lt

	_, err := f.svc.CreateLeaveRequest(context.Background(), createReq("2026-03-02", "2026-03-06"))

	var failure *leave.ValidationFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "Insufficient balance: you have 3 days remaining but selected 5 leave days.", failure.Reason)
}

func TestCreateLeaveRequest_UnlimitedTypeSkipsBalance(t *testing.T) {
	f := newServiceFixture()
	f.types.types["type-lop"] = organization.LeaveType{
		ID:             "type-lop",
		OrganizationID: testOrgID,
		Name:           "Loss of Pay",
		MaxDaysPerYear: 0,
	}

	req := createReq("2026-03-02", "2026-03-06")
	req.LeaveTypeID = "type-lop"
	result, err := f.svc.CreateLeaveRequest(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 5, result.EffectiveDays)
}

func TestCreateLeaveRequest_ForeignLeaveType(t *testing.T) {
	f := newServiceFixture()
	f.types.types["type-other"] = organization.LeaveType{
		ID:             "type-other",
		OrganizationID: "org-2",
		Name:           "Annual Leave",
		MaxDaysPerYear: 12,
	}

	req := createReq("2026-03-02", "2026-03-06")
	req.LeaveTypeID = "type-other"
	_, err := f.svc.CreateLeaveRequest(context.Background(), req)
	assert.ErrorIs(t, err, organization.ErrLeaveTypeNotFound)
}

func TestApproveLeaveRequest(t *testing.T) {
	f := newServiceFixture()
	created, err := f.svc.CreateLeaveRequest(context.Background(), createReq("2026-03-02", "2026-03-06"))
	require.NoError(t, err)

	result, err := f.svc.ApproveLeaveRequest(context.Background(), leave.ApproveRequestRequest{
		RequestID: created.ID,
		Remarks:   "enjoy",
	}, testApproverID)
	require.NoError(t, err)

	assert.Equal(t, string(leave.LeaveRequestStatusApproved), result.Status)
	require.NotNil(t, result.DecidedBy)
	assert.Equal(t, testApproverID, *result.DecidedBy)

	// submitted + approved
	require.Len(t, f.audits.entries, 2)
	assert.Equal(t, leave.AuditActionApproved, f.audits.entries[1].Action)
}

func TestApproveLeaveRequest_AlreadyProcessed(t *testing.T) {
	f := newServiceFixture()
	created, err := f.svc.CreateLeaveRequest(context.Background(), createReq("2026-03-02", "2026-03-06"))
	require.NoError(t, err)

	req := leave.ApproveRequestRequest{RequestID: created.ID}
	_, err = f.svc.ApproveLeaveRequest(context.Background(), req, testApproverID)
	require.NoError(t, err)

	_, err = f.svc.ApproveLeaveRequest(context.Background(), req, testApproverID)
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestApproveLeaveRequest_NotFound(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.ApproveLeaveRequest(context.Background(), leave.ApproveRequestRequest{
		RequestID: "missing",
	}, testApproverID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestRejectLeaveRequest_StoresRemarks(t *testing.T) {
	f := newServiceFixture()
	created, err := f.svc.CreateLeaveRequest(context.Background(), createReq("2026-03-02", "2026-03-06"))
	require.NoError(t, err)

	result, err := f.svc.RejectLeaveRequest(context.Background(), leave.RejectRequestRequest{
		RequestID: created.ID,
		Remarks:   "short staffed that week",
	}, testApproverID)
	require.NoError(t, err)

	assert.Equal(t, string(leave.LeaveRequestStatusRejected), result.Status)
	require.NotNil(t, result.Remarks)
	assert.Equal(t, "short staffed that week", *result.Remarks)

	stored := f.requests.requests[created.ID]
	assert.Equal(t, leave.LeaveRequestStatusRejected, stored.Status)
}

func TestGetAuditLog(t *testing.T) {
	f := newServiceFixture()
	created, err := f.svc.CreateLeaveRequest(context.Background(), createReq("2026-03-02", "2026-03-06"))
	require.NoError(t, err)

	_, err = f.svc.ApproveLeaveRequest(context.Background(), leave.ApproveRequestRequest{RequestID: created.ID}, testApproverID)
	require.NoError(t, err)

	entries, err := f.svc.GetAuditLog(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, string(leave.AuditActionSubmitted), entries[0].Action)
	assert.Equal(t, string(leave.AuditActionApproved), entries[1].Action)
}

func TestGetAuditLog_UnknownRequest(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.GetAuditLog(context.Background(), "missing")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestListMyBalances_ApprovedRequestsConsumeBalance(t *testing.T) {
	f := newServiceFixture()
	created, err := f.svc.CreateLeaveRequest(context.Background(), createReq("2026-03-02", "2026-03-06"))
	require.NoError(t, err)
	_, err = f.svc.ApproveLeaveRequest(context.Background(), leave.ApproveRequestRequest{RequestID: created.ID}, testApproverID)
	require.NoError(t, err)

	balances, err := f.svc.ListMyBalances(context.Background(), testEmployeeID, 2026)
	require.NoError(t, err)
	require.Len(t, balances, 1)

	assert.Equal(t, 12, balances[0].TotalAllocated)
	assert.Equal(t, 5, balances[0].TotalUsed)
	require.NotNil(t, balances[0].Remaining)
	assert.Equal(t, 7, *balances[0].Remaining)
}

func TestListMyBalances_PendingRequestsDoNotConsume(t *testing.T) {
	f := newServiceFixture()
	_, err := f.svc.CreateLeaveRequest(context.Background(), createReq("2026-03-02", "2026-03-06"))
	require.NoError(t, err)

	balances, err := f.svc.ListMyBalances(context.Background(), testEmployeeID, 2026)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, 0, balances[0].TotalUsed)
}

func TestListMyBalances_UnlimitedTypeHasNoRemaining(t *testing.T) {
	f := newServiceFixture()
	f.types.types["type-lop"] = organization.LeaveType{
		ID:             "type-lop",
		OrganizationID: testOrgID,
		Name:           "Loss of Pay",
		MaxDaysPerYear: 0,
	}

	balances, err := f.svc.ListMyBalances(context.Background(), testEmployeeID, 2026)
	require.NoError(t, err)
	require.Len(t, balances, 2)

	for _, b := range balances {
		if b.LeaveTypeID == "type-lop" {
			assert.Nil(t, b.Remaining)
		} else {
			assert.NotNil(t, b.Remaining)
		}
	}
}
