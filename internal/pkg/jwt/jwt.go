package jwt

import (
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/lumahr/lms-backend-go/internal/domain/user"
)

type Service interface {
	GenerateAccessToken(userID, email, organizationID string, role user.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	AccessTokenCookie(token string, expiresAt int64) *http.Cookie
	ClearedAccessTokenCookie() *http.Cookie
}

// CookieName is the session cookie the browser front end sends with
// credentials: "include".
const CookieName = "lms_session"

type JWTService struct {
	secretKey            string
	accessExpirationTime string
	tokenAuth            *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessExpirationTime string) Service {
	return &JWTService{
		secretKey:            secretKey,
		accessExpirationTime: accessExpirationTime,
		tokenAuth:            jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID, email, organizationID string, role user.Role) (string, int64, error) {
	expDuration, err := time.ParseDuration(j.accessExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt := time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":         userID,
		"email":           email,
		"organization_id": organizationID,
		"role":            string(role),
		"type":            "access",
		"exp":             expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, err
	}
	return tokenString, expiresAt, nil
}

func (j *JWTService) AccessTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

func (j *JWTService) ClearedAccessTokenCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}
