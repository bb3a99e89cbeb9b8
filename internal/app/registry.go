package app

import (
	"net/http"
	"time"

	"payroll-pro/internal/attendance"
	"payroll-pro/internal/auth"
	"payroll-pro/internal/config"
	"payroll-pro/internal/dashboard"
	"payroll-pro/internal/department"
	"payroll-pro/internal/employee"
	"payroll-pro/internal/middleware"
	"payroll-pro/internal/notification"
	"payroll-pro/internal/payroll"
	"payroll-pro/internal/position"
	"payroll-pro/internal/rbac"
	"payroll-pro/internal/rbac/infra"
	"payroll-pro/internal/shared/response"
	"payroll-pro/internal/system"
	"payroll-pro/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	logger *zap.Logger,
	a *App,
	notifier notification.Sink,
) error {
	st := a.Store
	rdb := a.Redis

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(st)
	authRepo := auth.NewRepository(st)
	dashboardRepo := dashboard.NewRepository(st)
	departmentRepo := department.NewRepository(st)
	employeeRepo := employee.NewRepository(st)
	payrollRepo := payroll.NewRepository(st)
	positionRepo := position.NewRepository(st)
	systemRepo := system.NewRepository(st)
	userRepo := user.NewRepository(st)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Sessions ---
	var sessions auth.SessionStore
	if rdb != nil {
		sessions = auth.NewRedisSessionStore(rdb)
	} else {
		sessions = auth.NewMemorySessionStore()
	}

	// --- Services ---
	authService := auth.NewService(authRepo, sessions, rbacService, cfg.Session.Secret, cfg.Session.TTL)
	attendanceService := attendance.NewService(attendanceRepo, rbacService, notifier, time.Now)
	dashboardService := dashboard.NewService(dashboardRepo, rbacService, time.Now)
	departmentService := department.NewService(departmentRepo)
	employeeService := employee.NewService(employeeRepo, rdb, employee.NewOutboxEventPublisher(a.Outbox), notifier, logger)
	payrollService := payroll.NewService(payrollRepo, rbacService, notifier, time.Now)
	positionService := position.NewService(positionRepo, rdb, logger)
	systemService := system.NewService(systemRepo, cfg.App.Env, time.Now())
	userService := user.NewService(userRepo, rdb, notifier)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	authHandler := auth.NewHandler(authService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	departmentHandler := department.NewHandler(departmentService)
	employeeHandler := employee.NewHandler(employeeService, logger)
	notificationHandler := notification.NewHandler(a.Feed)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	positionHandler := position.NewHandler(positionService)
	rbacHandler := rbac.NewHandler(rbacService)
	systemHandler := system.NewHandler(systemService)
	userHandler := user.NewHandler(userService, logger)

	// --- Global middleware ---
	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.CORS(cfg.CORSOrigins),
		middleware.RateLimitByIP(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst),
		middleware.Session(authService),
	)

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	})

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		attendance.RegisterRoutes(api, attendanceHandler)
		dashboard.RegisterRoutes(api, dashboardHandler)
		department.RegisterRoutes(api, departmentHandler)
		employee.RegisterRoutes(api, employeeHandler)
		notification.RegisterRoutes(api, notificationHandler)
		payroll.RegisterRoutes(api, payrollHandler, rdb)
		position.RegisterRoutes(api, positionHandler)
		rbac.RegisterRoutes(api, rbacHandler)
		system.RegisterRoutes(api, systemHandler)
		user.RegisterRoutes(api, userHandler)
	}

	return nil
}
