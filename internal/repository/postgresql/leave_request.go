package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lumahr/lms-backend-go/internal/domain/leave"
	"github.com/lumahr/lms-backend-go/internal/pkg/calendar"
	"github.com/lumahr/lms-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.employee_id, lr.leave_type_id, lr.start_date, lr.end_date,
	lr.effective_days, lr.reason, lr.status, lr.remarks, lr.decided_by,
	lr.decided_at, lr.created_at, lr.updated_at,
	TRIM(u.first_name || ' ' || u.last_name) AS employee_name,
	lt.name AS leave_type_name
`

const leaveRequestJoins = `
	FROM leave_requests lr
	JOIN users u ON u.id = lr.employee_id
	JOIN leave_types lt ON lt.id = lr.leave_type_id
`

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	request.ID = uuid.NewString()
	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type_id, start_date, end_date,
			effective_days, reason, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		request.ID, request.EmployeeID, request.LeaveTypeID,
		request.StartDate.String(), request.EndDate.String(),
		request.EffectiveDays, request.Reason, request.Status,
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + leaveRequestColumns + leaveRequestJoins + ` WHERE lr.id = $1`
	return scanLeaveRequest(q.QueryRow(ctx, query, id))
}

// GetByEmployeeID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + leaveRequestColumns + leaveRequestJoins + `
		WHERE lr.employee_id = $1
		ORDER BY lr.created_at DESC
	`
	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLeaveRequests(rows)
}

// GetByOrganizationID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByOrganizationID(ctx context.Context, organizationID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + leaveRequestColumns + leaveRequestJoins + `
		WHERE u.organization_id = $1
		ORDER BY lr.created_at DESC
	`
	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLeaveRequests(rows)
}

// CheckOverlapping implements leave.LeaveRequestRepository. Cancelled and
// rejected requests do not block a new range.
func (r *leaveRequestRepositoryImpl) CheckOverlapping(ctx context.Context, employeeID string, start, end calendar.Date) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`
	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, start.String(), end.String()).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check overlapping leave: %w", err)
	}
	return exists, nil
}

// UpdateStatus implements leave.LeaveRequestRepository. The pending guard in
// the WHERE clause makes concurrent decisions on the same request settle to
// exactly one winner.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.LeaveRequestStatus, decidedBy string, remarks *string) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_requests
		SET status = $2, decided_by = $3, remarks = $4, decided_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`
	result, err := q.Exec(ctx, query, id, status, decidedBy, remarks)
	if err != nil {
		return false, fmt.Errorf("failed to update leave request status: %w", err)
	}
	return result.RowsAffected() == 1, nil
}

// UsedDays implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UsedDays(ctx context.Context, employeeID string, year int) (map[string]int, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT leave_type_id, COALESCE(SUM(effective_days), 0)
		FROM leave_requests
		WHERE employee_id = $1
		  AND status = 'approved'
		  AND EXTRACT(YEAR FROM start_date) = $2
		GROUP BY leave_type_id
	`
	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to sum used leave days: %w", err)
	}
	defer rows.Close()

	used := make(map[string]int)
	for rows.Next() {
		var leaveTypeID string
		var days int
		if err := rows.Scan(&leaveTypeID, &days); err != nil {
			return nil, err
		}
		used[leaveTypeID] = days
	}
	return used, rows.Err()
}

// CountByLeaveTypeID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) CountByLeaveTypeID(ctx context.Context, leaveTypeID string) (int64, error) {
	q := GetQuerier(ctx, r.db)
	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests WHERE leave_type_id = $1`, leaveTypeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count leave requests: %w", err)
	}
	return count, nil
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

func scanLeaveRequest(row rowScanner) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	var startDate, endDate time.Time
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.LeaveTypeID, &startDate, &endDate,
		&lr.EffectiveDays, &lr.Reason, &lr.Status, &lr.Remarks, &lr.DecidedBy,
		&lr.DecidedAt, &lr.CreatedAt, &lr.UpdatedAt,
		&lr.EmployeeName, &lr.LeaveTypeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, err
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to scan leave request: %w", err)
	}
	lr.StartDate = calendar.FromTime(startDate)
	lr.EndDate = calendar.FromTime(endDate)
	return lr, nil
}
