package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lumahr/lms-backend-go/internal/domain/organization"
	"github.com/lumahr/lms-backend-go/internal/pkg/database"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) organization.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

// Create implements organization.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, leaveType organization.LeaveType) (organization.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_types (id, organization_id, name, description, max_days_per_year, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	leaveType.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		leaveType.ID, leaveType.OrganizationID, leaveType.Name, leaveType.Description, leaveType.MaxDaysPerYear,
	).Scan(&leaveType.CreatedAt, &leaveType.UpdatedAt)
	if err != nil {
		return organization.LeaveType{}, err
	}
	return leaveType, nil
}

// GetByID implements organization.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (organization.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, organization_id, name, description, max_days_per_year, created_at, updated_at
		FROM leave_types
		WHERE id = $1
	`
	var lt organization.LeaveType
	err := q.QueryRow(ctx, query, id).Scan(
		&lt.ID, &lt.OrganizationID, &lt.Name, &lt.Description, &lt.MaxDaysPerYear, &lt.CreatedAt, &lt.UpdatedAt,
	)
	if err != nil {
		return organization.LeaveType{}, err
	}
	return lt, nil
}

// GetByOrganizationID implements organization.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByOrganizationID(ctx context.Context, organizationID string) ([]organization.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, organization_id, name, description, max_days_per_year, created_at, updated_at
		FROM leave_types
		WHERE organization_id = $1
		ORDER BY name
	`
	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaveTypes []organization.LeaveType
	for rows.Next() {
		var lt organization.LeaveType
		if err := rows.Scan(
			&lt.ID, &lt.OrganizationID, &lt.Name, &lt.Description, &lt.MaxDaysPerYear, &lt.CreatedAt, &lt.UpdatedAt,
		); err != nil {
			return nil, err
		}
		leaveTypes = append(leaveTypes, lt)
	}
	return leaveTypes, rows.Err()
}

// Update implements organization.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Update(ctx context.Context, leaveType organization.LeaveType) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_types
		SET name = $2, description = $3, max_days_per_year = $4, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, leaveType.ID, leaveType.Name, leaveType.Description, leaveType.MaxDaysPerYear)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("leave type with id %s not found", leaveType.ID)
	}
	return nil
}

// Delete implements organization.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		DELETE FROM leave_types
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("leave type with id %s not found", id)
	}
	return nil
}
