package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumahr/lms-backend-go/internal/config"
	"github.com/lumahr/lms-backend-go/internal/domain/leave"
	"github.com/lumahr/lms-backend-go/internal/domain/user"
	"github.com/lumahr/lms-backend-go/internal/pkg/jwt"
)

type stubAuthHandler struct{}

func (s *stubAuthHandler) Login(w http.ResponseWriter, r *http.Request)  {}
func (s *stubAuthHandler) Logout(w http.ResponseWriter, r *http.Request) {}
func (s *stubAuthHandler) Me(w http.ResponseWriter, r *http.Request)     {}

type stubOrganizationHandler struct{}

func (s *stubOrganizationHandler) Get(w http.ResponseWriter, r *http.Request)             {}
func (s *stubOrganizationHandler) ListUsers(w http.ResponseWriter, r *http.Request)       {}
func (s *stubOrganizationHandler) ListHolidays(w http.ResponseWriter, r *http.Request)    {}
func (s *stubOrganizationHandler) CreateHoliday(w http.ResponseWriter, r *http.Request)   {}
func (s *stubOrganizationHandler) UpdateHoliday(w http.ResponseWriter, r *http.Request)   {}
func (s *stubOrganizationHandler) DeleteHoliday(w http.ResponseWriter, r *http.Request)   {}
func (s *stubOrganizationHandler) ListLeaveTypes(w http.ResponseWriter, r *http.Request)  {}
func (s *stubOrganizationHandler) CreateLeaveType(w http.ResponseWriter, r *http.Request) {}
func (s *stubOrganizationHandler) UpdateLeaveType(w http.ResponseWriter, r *http.Request) {}
func (s *stubOrganizationHandler) DeleteLeaveType(w http.ResponseWriter, r *http.Request) {}

// newTestRouter wires the full router with a stub leave service so route
// registrations and middleware chains are exercised end to end.
func newTestRouter(t *testing.T) (http.Handler, jwt.Service) {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.App.AllowedOrigins = []string{"http://localhost:5173"}

	jwtService := jwt.NewJWTService(handlerTestSecret, "1h")
	leaveHandler := NewLeaveHandler(&stubLeaveService{
		approveFn: func(_ context.Context, req leave.ApproveRequestRequest, _ string) (leave.LeaveRequestResponse, error) {
			return leave.LeaveRequestResponse{ID: req.RequestID, Status: "approved"}, nil
		},
	})

	return NewRouter(cfg, jwtService, &stubAuthHandler{}, &stubOrganizationHandler{}, leaveHandler), jwtService
}

func sessionCookieFor(t *testing.T, jwtService jwt.Service, role user.Role) *http.Cookie {
	t.Helper()
	token, expiresAt, err := jwtService.GenerateAccessToken(handlerTestUserID, "jane@example.com", handlerTestOrgID, role)
	require.NoError(t, err)
	return jwtService.AccessTokenCookie(token, expiresAt)
}

func TestRouter_ApproveIsPatch(t *testing.T) {
	router, jwtService := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/request-leave/approve/request-1", nil)
	req.AddCookie(sessionCookieFor(t, jwtService, user.RoleManager))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Success)
}

func TestRouter_ApproveRejectsPost(t *testing.T) {
	router, jwtService := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/request-leave/approve/request-1", nil)
	req.AddCookie(sessionCookieFor(t, jwtService, user.RoleManager))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_RejectIsPatch(t *testing.T) {
	router, jwtService := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/request-leave/reject/request-1", bytes.NewReader([]byte(`{}`)))
	req.AddCookie(sessionCookieFor(t, jwtService, user.RoleAdmin))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Reaches the handler: remarks are mandatory, so validation rejects it
	// rather than the router.
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_ManagerMayDecide(t *testing.T) {
	router, jwtService := newTestRouter(t)

	for _, role := range []user.Role{user.RoleAdmin, user.RoleManager} {
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/request-leave/approve/request-1", nil)
		req.AddCookie(sessionCookieFor(t, jwtService, role))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, "role %s must reach the approve handler", role)
	}
}

func TestRouter_EmployeeMayNotDecide(t *testing.T) {
	router, jwtService := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/request-leave/approve/request-1", nil)
	req.AddCookie(sessionCookieFor(t, jwtService, user.RoleEmployee))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_EmployeeMayNotListAllRequests(t *testing.T) {
	router, jwtService := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/request-leave/requests", nil)
	req.AddCookie(sessionCookieFor(t, jwtService, user.RoleEmployee))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_NoSessionCookie(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/request-leave/approve/request-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
