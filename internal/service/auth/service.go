package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumahr/lms-backend-go/internal/domain/auth"
	"github.com/lumahr/lms-backend-go/internal/domain/user"
	"github.com/lumahr/lms-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwtService jwt.Service
}

func NewAuthService(userRepository user.UserRepository, jwtService jwt.Service) *AuthServiceImpl {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		jwtService:     jwtService,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	u, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if !u.IsActive {
		return auth.LoginResponse{}, auth.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.OrganizationID, u.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        profileOf(u),
	}, nil
}

func (s *AuthServiceImpl) GetProfile(ctx context.Context, userID string) (auth.UserProfile, error) {
	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.UserProfile{}, user.ErrUserNotFound
		}
		return auth.UserProfile{}, fmt.Errorf("failed to get user: %w", err)
	}
	return profileOf(u), nil
}

func profileOf(u user.User) auth.UserProfile {
	return auth.UserProfile{
		UserID:         u.ID,
		OrganizationID: u.OrganizationID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Role:           string(u.Role),
		ManagerID:      u.ManagerID,
		ManagerName:    u.ManagerName,
	}
}
