package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/lumahr/lms-backend-go/internal/config"
	"github.com/lumahr/lms-backend-go/internal/handler/http/middleware"
	"github.com/lumahr/lms-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	organizationHandler OrganizationHandler,
	leaveHandler LeaveHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "lms-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verify(jwtService.JWTAuth(), jwtauth.TokenFromHeader, sessionCookieToken))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
				r.Get("/me", authHandler.Me)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verify(jwtService.JWTAuth(), jwtauth.TokenFromHeader, sessionCookieToken))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/organization", func(r chi.Router) {
				r.Get("/", organizationHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/users", organizationHandler.ListUsers)
				})

				r.Route("/holidays", func(r chi.Router) {
					r.Get("/", organizationHandler.ListHolidays)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Post("/", organizationHandler.CreateHoliday)
						r.Put("/{id}", organizationHandler.UpdateHoliday)
						r.Delete("/{id}", organizationHandler.DeleteHoliday)
					})
				})

				r.Route("/leave-types", func(r chi.Router) {
					r.Get("/", organizationHandler.ListLeaveTypes)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Post("/", organizationHandler.CreateLeaveType)
						r.Put("/{id}", organizationHandler.UpdateLeaveType)
						r.Delete("/{id}", organizationHandler.DeleteLeaveType)
					})
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Get("/leave-balances", leaveHandler.GetMyBalances)
			})

			r.Route("/request-leave", func(r chi.Router) {
				r.Post("/request", leaveHandler.CreateRequest)
				r.Get("/history", leaveHandler.GetMyRequests)
				r.Get("/{id}/auditlog", leaveHandler.GetAuditLog)

				// Admins and managers decide requests
				r.Group(func(r chi.Router) {
					r.Use(middleware.ApproverOnly)
					r.Get("/requests", leaveHandler.ListRequests)
					r.Patch("/approve/{id}", leaveHandler.ApproveRequest)
					r.Patch("/reject/{id}", leaveHandler.RejectRequest)
				})
			})
		})
	})
	return r
}

// sessionCookieToken reads the access token from the session cookie, which is
// how the browser front end authenticates.
func sessionCookieToken(r *http.Request) string {
	cookie, err := r.Cookie(jwt.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
