package auth

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumahr/lms-backend-go/internal/domain/auth"
	"github.com/lumahr/lms-backend-go/internal/domain/user"
	"github.com/lumahr/lms-backend-go/internal/pkg/jwt"
)

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

const (
	testSecret    = "test-secret-key-for-jwt"
	testAccessExp = "1h"
	testPassword  = "password123"
)

func newTestService(t *testing.T, active bool) *AuthServiceImpl {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := &memUserRepo{users: map[string]user.User{
		"user-1": {
			ID:             "user-1",
			OrganizationID: "org-1",
			Email:          "jane@example.com",
			PasswordHash:   string(hashed),
			FirstName:      "Jane",
			LastName:       "Doe",
			Role:           user.RoleEmployee,
			IsActive:       active,
		},
	}}
	return NewAuthService(repo, jwt.NewJWTService(testSecret, testAccessExp))
}

func TestLogin_Success(t *testing.T) {
	svc := newTestService(t, true)

	response, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, response.AccessToken)
	assert.Greater(t, response.ExpiresAt, int64(0))
	assert.Equal(t, "user-1", response.User.UserID)
	assert.Equal(t, "org-1", response.User.OrganizationID)
	assert.Equal(t, "employee", response.User.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(t, true)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrongpassword",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestService(t, true)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: testPassword,
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	svc := newTestService(t, false)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: testPassword,
	})
	assert.ErrorIs(t, err, auth.ErrUserInactive)
}

func TestGetProfile(t *testing.T) {
	svc := newTestService(t, true)

	profile, err := svc.GetProfile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Jane", profile.FirstName)
	assert.Equal(t, "Doe", profile.LastName)
}

func TestGetProfile_NotFound(t *testing.T) {
	svc := newTestService(t, true)

	_, err := svc.GetProfile(context.Background(), "missing")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
