package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/talentpool/careers-portal/internal/api/handler"
	"github.com/talentpool/careers-portal/internal/api/middleware"
	"github.com/talentpool/careers-portal/internal/core/domain"
	"github.com/talentpool/careers-portal/internal/core/service"
	"github.com/talentpool/careers-portal/internal/infrastructure/config"
	mongostore "github.com/talentpool/careers-portal/internal/infrastructure/db/mongo"
	redisstore "github.com/talentpool/careers-portal/internal/infrastructure/db/redis"
	"github.com/talentpool/careers-portal/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("careers"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, cfg.DemoAccountSet(), cfg.JWTSecret, cfg.TokenTTL, log)
	userService := service.NewUserService(userRepo, log)

	authHandler := handler.NewAuthHandler(authService, userService)
	adminHandler := handler.NewAdminHandler(userService)

	authMiddleware := middleware.Auth(authService)
	checkEmailLimiter := redisstore.NewRateLimiter(rdb, "check_email", cfg.RateLimit.CheckEmailLimit, cfg.RateLimit.CheckEmailWindow)

	// --- Auth routes ---
	e.GET("/auth/check-email", authHandler.CheckEmail, middleware.RateLimit(checkEmailLimiter, log))
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Admin routes (ADMIN only) ---
	admin := e.Group("/admin", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/hr-users", adminHandler.ListHRUsers)
	admin.PUT("/hr-users/:id/password", adminHandler.ChangeHRPassword)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
