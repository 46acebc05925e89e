package user

import "context"

// UserRepository - interface for users table
type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByOrganizationID(ctx context.Context, organizationID string) ([]User, error)
}
