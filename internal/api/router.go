package api

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/entitydesk/entity-api/internal/api/handler"
	"github.com/entitydesk/entity-api/internal/api/middleware"
	"github.com/entitydesk/entity-api/internal/core/domain"
	"github.com/entitydesk/entity-api/internal/core/service"
	pgdb "github.com/entitydesk/entity-api/internal/infrastructure/db/postgres"
	redisdb "github.com/entitydesk/entity-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(pool *pgxpool.Pool, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("entity_api"))

	// --- Repositories ---
	userRepo := pgdb.NewUserRepository(pool)
	companyRepo := pgdb.NewCompanyRepository(pool)
	clientRepo := pgdb.NewClientRepository(pool)
	idemGuard := redisdb.NewIdempotencyGuard(rdb)

	// --- Services ---
	authService := service.NewAuthService(userRepo, jwtSecret, 24*time.Hour)
	userService := service.NewUserService(userRepo, log)
	companyService := service.NewCompanyService(companyRepo, log)
	clientService := service.NewClientService(clientRepo, userRepo, companyRepo, idemGuard, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	companyHandler := handler.NewCompanyHandler(companyService, clientService)
	clientHandler := handler.NewClientHandler(clientService)

	authRequired := middleware.Auth(jwtSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(pool, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- API routes ---
	api := e.Group("/api", authRequired)

	api.POST("/clients", clientHandler.Create, adminOnly)
	api.GET("/clients", clientHandler.List)
	api.GET("/clients/:id", clientHandler.Get)
	api.PATCH("/clients/:id", clientHandler.Update)

	api.GET("/users", userHandler.List)
	api.PUT("/users/:id", userHandler.Replace, adminOnly)
	api.GET("/user/profile", userHandler.Profile)

	api.POST("/companies", companyHandler.Create, adminOnly)
	api.PATCH("/companies/:id", companyHandler.Update, adminOnly)
	api.GET("/companies", companyHandler.List)

	reports := api.Group("/reports")
	reports.GET("/companies/employee-range", companyHandler.EmployeeRange)
	reports.GET("/companies/max-revenue", companyHandler.MaxRevenue)
	reports.GET("/companies/count", companyHandler.CountByEmployees)
	reports.GET("/clients/by-user/:id", companyHandler.ClientsByUser)
	reports.GET("/clients/by-company", companyHandler.ClientsByCompanyName)

	return e
}
