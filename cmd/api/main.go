package main

import (
	"fmt"
	"net/http"

	"github.com/lumahr/lms-backend-go/internal/config"
	appHTTP "github.com/lumahr/lms-backend-go/internal/handler/http"
	"github.com/lumahr/lms-backend-go/internal/pkg/cron"
	"github.com/lumahr/lms-backend-go/internal/pkg/database"
	"github.com/lumahr/lms-backend-go/internal/pkg/jwt"
	"github.com/lumahr/lms-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/lumahr/lms-backend-go/internal/service/auth"
	serviceLeave "github.com/lumahr/lms-backend-go/internal/service/leave"
	serviceOrganization "github.com/lumahr/lms-backend-go/internal/service/organization"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	organizationRepo := postgresql.NewOrganizationRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	auditLogRepo := postgresql.NewAuditLogRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	authService := serviceAuth.NewAuthService(userRepo, jwtService)
	organizationService := serviceOrganization.NewOrganizationService(
		organizationRepo,
		holidayRepo,
		leaveTypeRepo,
		leaveRequestRepo,
		userRepo,
	)
	leaveService := serviceLeave.NewLeaveService(
		db,
		leaveRequestRepo,
		auditLogRepo,
		holidayRepo,
		leaveTypeRepo,
		userRepo,
	)

	authHandler := appHTTP.NewAuthHandler(authService, jwtService)
	organizationHandler := appHTTP.NewOrganizationHandler(organizationService)
	leaveHandler := appHTTP.NewLeaveHandler(leaveService)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		organizationHandler,
		leaveHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewHolidayJobs(organizationService).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
