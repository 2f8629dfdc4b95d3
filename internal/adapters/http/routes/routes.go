package routes

import (
	"time"

	"hrm-location/internal/adapters/http/handlers"
	"hrm-location/internal/adapters/http/middleware"
	"hrm-location/internal/adapters/persistence/repositories"
	"hrm-location/internal/config"
	"hrm-location/internal/core/services"
	"hrm-location/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Services are the wired services, exposed for background jobs
type Services struct {
	Auth       *services.AuthService
	Attendance *services.AttendanceService
	Office     *services.OfficeService
	Employee   *services.EmployeeService
	Dashboard  *services.DashboardService
}

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *Services {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	officeRepo := repositories.NewOfficeLocationRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)

	// Initialize services
	svc := &Services{
		Auth:       services.NewAuthService(userRepo, cfg),
		Attendance: services.NewAttendanceService(attendanceRepo, officeRepo, cfg),
		Office:     services.NewOfficeService(officeRepo),
		Employee:   services.NewEmployeeService(userRepo, cfg),
		Dashboard:  services.NewDashboardService(attendanceRepo, userRepo, cfg),
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(svc.Auth)
	attendanceHandler := handlers.NewAttendanceHandler(svc.Attendance)
	employeeHandler := handlers.NewEmployeeHandler(svc.Employee, svc.Office)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Prometheus metrics
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API group
	api := app.Group("/api")
	api.Get("/", healthHandler.APIInfo)

	requireAuth := middleware.AuthMiddleware(svc.Auth)

	setupAuthRoutes(api.Group("/auth", middleware.NoCacheHeaders()), authHandler, requireAuth)
	setupAttendanceRoutes(api.Group("/attendance", requireAuth, middleware.NoCacheHeaders()), attendanceHandler)
	setupEmployeeRoutes(api.Group("/employees", requireAuth), employeeHandler)
	setupAdminRoutes(api.Group("/admin", requireAuth, middleware.AdminOnly()), dashboardHandler)

	return svc
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, requireAuth fiber.Handler) {
	// Public routes
	router.Post("/register", handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.Refresh)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", requireAuth, handler.Me)
}

// setupAttendanceRoutes configures check-in/out routes (employee or admin)
func setupAttendanceRoutes(router fiber.Router, handler *handlers.AttendanceHandler) {
	router.Use(middleware.EmployeeOrAdmin())

	router.Post("/checkin", handler.CheckIn)
	router.Post("/checkout", handler.CheckOut)
	router.Get("/me", handler.History)
}

// setupEmployeeRoutes configures employee management routes
func setupEmployeeRoutes(router fiber.Router, handler *handlers.EmployeeHandler) {
	adminOnly := middleware.AdminOnly()

	// Any authenticated user
	router.Get("/me", middleware.PrivateCacheHeaders(30*time.Second), handler.Me)

	// Office location (Admin only)
	router.Get("/office", adminOnly, handler.GetOffice)
	router.Post("/office", adminOnly, handler.SetOffice)

	// Employee CRUD (Admin only)
	router.Post("/", adminOnly, handler.Create)
	router.Get("/", adminOnly, handler.List)
	router.Get("/:id", adminOnly, handler.Get)
	router.Put("/:id", adminOnly, handler.Update)
	router.Delete("/:id", adminOnly, handler.Delete)
}

// setupAdminRoutes configures admin reporting routes
func setupAdminRoutes(router fiber.Router, handler *handlers.DashboardHandler) {
	router.Get("/attendance", handler.ListAttendance)
	router.Get("/summary", handler.Summary)
}
