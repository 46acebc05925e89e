package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lumahr/lms-backend-go/internal/domain/organization"
	"github.com/lumahr/lms-backend-go/internal/pkg/calendar"
	"github.com/lumahr/lms-backend-go/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) organization.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// Create implements organization.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, holiday organization.Holiday) (organization.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO holidays (id, organization_id, name, holiday_date, is_recurring, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	holiday.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		holiday.ID, holiday.OrganizationID, holiday.Name, holiday.Date.String(), holiday.IsRecurring,
	).Scan(&holiday.CreatedAt, &holiday.UpdatedAt)
	if err != nil {
		return organization.Holiday{}, err
	}
	return holiday, nil
}

// GetByID implements organization.HolidayRepository.
func (r *holidayRepositoryImpl) GetByID(ctx context.Context, id string) (organization.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, organization_id, name, holiday_date, is_recurring, created_at, updated_at
		FROM holidays
		WHERE id = $1
	`
	return scanHoliday(q.QueryRow(ctx, query, id))
}

// GetByOrganizationID implements organization.HolidayRepository.
func (r *holidayRepositoryImpl) GetByOrganizationID(ctx context.Context, organizationID string) ([]organization.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, organization_id, name, holiday_date, is_recurring, created_at, updated_at
		FROM holidays
		WHERE organization_id = $1
		ORDER BY holiday_date
	`
	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []organization.Holiday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// GetByDate implements organization.HolidayRepository.
func (r *holidayRepositoryImpl) GetByDate(ctx context.Context, organizationID string, date calendar.Date) (organization.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, organization_id, name, holiday_date, is_recurring, created_at, updated_at
		FROM holidays
		WHERE organization_id = $1 AND holiday_date = $2
	`
	return scanHoliday(q.QueryRow(ctx, query, organizationID, date.String()))
}

// ListRecurring implements organization.HolidayRepository.
func (r *holidayRepositoryImpl) ListRecurring(ctx context.Context) ([]organization.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT DISTINCT ON (organization_id, EXTRACT(MONTH FROM holiday_date), EXTRACT(DAY FROM holiday_date))
			id, organization_id, name, holiday_date, is_recurring, created_at, updated_at
		FROM holidays
		WHERE is_recurring = TRUE
		ORDER BY organization_id, EXTRACT(MONTH FROM holiday_date), EXTRACT(DAY FROM holiday_date), holiday_date DESC
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []organization.Holiday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// Update implements organization.HolidayRepository.
func (r *holidayRepositoryImpl) Update(ctx context.Context, holiday organization.Holiday) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE holidays
		SET name = $2, holiday_date = $3, is_recurring = $4, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, holiday.ID, holiday.Name, holiday.Date.String(), holiday.IsRecurring)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("holiday with id %s not found", holiday.ID)
	}
	return nil
}

// Delete implements organization.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		DELETE FROM holidays
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("holiday with id %s not found", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHoliday(row rowScanner) (organization.Holiday, error) {
	var h organization.Holiday
	var date time.Time
	err := row.Scan(&h.ID, &h.OrganizationID, &h.Name, &date, &h.IsRecurring, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return organization.Holiday{}, err
	}
	h.Date = calendar.FromTime(date)
	return h, nil
}
