package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/restohub/staff-service/internal/api/handler"
	"github.com/restohub/staff-service/internal/api/middleware"
	"github.com/restohub/staff-service/internal/core/domain"
	"github.com/restohub/staff-service/internal/core/ports"
	"github.com/restohub/staff-service/internal/core/service"
	"github.com/restohub/staff-service/internal/infrastructure/auth"
	mongodb "github.com/restohub/staff-service/internal/infrastructure/db/mongo"
	redisdb "github.com/restohub/staff-service/internal/infrastructure/db/redis"
	"github.com/restohub/staff-service/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit publisher is created and started by the caller so its workers
// share the process lifecycle.
func NewRouter(db *mongo.Database, rdb *redis.Client, audit ports.AuditPublisher, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("staff"))

	// --- Dependencies ---
	staffRepo := mongodb.NewStaffRepository(db)
	revoker := redisdb.NewTokenRevocationStore(rdb)
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := service.NewCredentialAuthenticator(staffRepo, hasher)
	staffService := service.NewStaffService(staffRepo, hasher, authenticator, issuer, audit, log)

	staffHandler := handler.NewStaffHandler(staffService)
	authHandler := handler.NewAuthHandler(staffService, revoker)
	authRequired := middleware.Auth(cfg.JWTSecret, revoker)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/v1/auth/login", authHandler.Login)
	e.POST("/v1/auth/logout", authHandler.Logout, authRequired)

	// --- Staff routes ---
	// Registration is open (it is how the first account is created); all
	// other operations require a token, and mutations are admin-only.
	e.POST("/v1/staff", staffHandler.Register)
	staff := e.Group("/v1/staff", authRequired)
	staff.GET("", staffHandler.List, adminOnly)
	staff.GET("/:id", staffHandler.Get)
	staff.PUT("/:id", staffHandler.Update, adminOnly)
	staff.DELETE("/:id", staffHandler.Delete, adminOnly)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
