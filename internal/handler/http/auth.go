package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/lumahr/lms-backend-go/internal/domain/auth"
	"github.com/lumahr/lms-backend-go/internal/handler/http/response"
	"github.com/lumahr/lms-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
	jwtService  jwt.Service
}

func NewAuthHandler(authService auth.AuthService, jwtService jwt.Service) AuthHandler {
	return &AuthHandlerImpl{
		authService: authService,
		jwtService:  jwtService,
	}
}

// Login implements AuthHandler.
func (h *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.AccessTokenCookie(result.AccessToken, result.ExpiresAt))
	response.SuccessWithMessage(w, "Login successful", result)
}

// Logout implements AuthHandler.
func (h *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.jwtService.ClearedAccessTokenCookie())
	response.SuccessWithMessage(w, "Logged out successfully", nil)
}

// Me implements AuthHandler.
func (h *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromClaims(r)
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	profile, err := h.authService.GetProfile(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, profile)
}

// userIDFromClaims pulls the authenticated user's ID from the verified token.
func userIDFromClaims(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", err
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", auth.ErrInvalidToken
	}
	return userID, nil
}

// organizationIDFromClaims pulls the tenant scope from the verified token.
func organizationIDFromClaims(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", err
	}
	organizationID, ok := claims["organization_id"].(string)
	if !ok || organizationID == "" {
		return "", auth.ErrInvalidToken
	}
	return organizationID, nil
}
