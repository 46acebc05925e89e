package postgresql

import (
	"context"

	"github.com/lumahr/lms-backend-go/internal/domain/organization"
	"github.com/lumahr/lms-backend-go/internal/pkg/database"
)

type organizationRepositoryImpl struct {
	db *database.DB
}

func NewOrganizationRepository(db *database.DB) organization.OrganizationRepository {
	return &organizationRepositoryImpl{db: db}
}

// GetByID implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) GetByID(ctx context.Context, id string) (organization.Organization, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, subdomain, created_at, updated_at
		FROM organizations
		WHERE id = $1
	`
	var org organization.Organization
	err := q.QueryRow(ctx, query, id).Scan(
		&org.ID, &org.Name, &org.Subdomain, &org.CreatedAt, &org.UpdatedAt,
	)
	if err != nil {
		return organization.Organization{}, err
	}
	return org, nil
}
