package auth

import "context"

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	GetProfile(ctx context.Context, userID string) (UserProfile, error)
}
