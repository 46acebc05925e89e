package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/lumahr/lms-backend-go/internal/domain/user"
	"github.com/lumahr/lms-backend-go/internal/handler/http/response"
)

// AdminOnly requires the admin role
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}

		role, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}

		if user.Role(role) != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ApproverOnly requires the admin or manager role
func ApproverOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrApproverAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrApproverAccessRequired)
			return
		}

		u := user.User{Role: user.Role(roleStr)}
		if !u.CanApprove() {
			response.HandleError(w, user.ErrApproverAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
