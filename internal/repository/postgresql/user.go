package postgresql

import (
	"context"

	"github.com/lumahr/lms-backend-go/internal/domain/user"
	"github.com/lumahr/lms-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `
	u.id, u.organization_id, u.email, u.password_hash, u.first_name, u.last_name,
	u.role, u.manager_id, u.is_active, u.created_at, u.updated_at,
	CASE WHEN m.id IS NULL THEN NULL ELSE TRIM(m.first_name || ' ' || m.last_name) END AS manager_name
`

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN users m ON m.id = u.manager_id
		WHERE u.id = $1
	`
	return scanUser(q.QueryRow(ctx, query, id))
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN users m ON m.id = u.manager_id
		WHERE LOWER(u.email) = LOWER($1)
	`
	return scanUser(q.QueryRow(ctx, query, email))
}

// GetByOrganizationID implements user.UserRepository.
func (r *userRepositoryImpl) GetByOrganizationID(ctx context.Context, organizationID string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN users m ON m.id = u.manager_id
		WHERE u.organization_id = $1
		ORDER BY u.first_name, u.last_name
	`
	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func scanUser(row rowScanner) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.OrganizationID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Role, &u.ManagerID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
		&u.ManagerName,
	)
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}
