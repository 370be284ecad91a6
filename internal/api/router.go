package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/Skryensya/Finances-API/docs"
	"github.com/Skryensya/Finances-API/internal/api/handler"
	"github.com/Skryensya/Finances-API/internal/api/middleware"
	"github.com/Skryensya/Finances-API/internal/core/ports"
	"github.com/Skryensya/Finances-API/internal/core/service"
	mongodb "github.com/Skryensya/Finances-API/internal/infrastructure/db/mongo"
	redisdb "github.com/Skryensya/Finances-API/internal/infrastructure/db/redis"
)

// RouterConfig carries everything NewRouter needs to assemble the API.
type RouterConfig struct {
	DB        *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	TokenTTL  time.Duration

	ThrottleMaxFailures int
	ThrottleWindow      time.Duration

	Audit ports.AuditRecorder
	Log   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("finances"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(cfg.DB)
	accountRepo := mongodb.NewAccountRepository(cfg.DB)
	throttle := redisdb.NewSigninThrottle(cfg.Redis, cfg.ThrottleMaxFailures, cfg.ThrottleWindow)

	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens, throttle, cfg.Audit, cfg.Log)
	userService := service.NewUserService(userRepo, cfg.Audit, cfg.Log)
	accountService := service.NewAccountService(accountRepo, cfg.Audit, cfg.Log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	accountHandler := handler.NewAccountHandler(accountService)
	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/signin", authHandler.Signin)

	// --- User routes ---
	users := e.Group("/users", authMiddleware)
	users.GET("/me", userHandler.Me)
	users.PATCH("", userHandler.Edit)

	// --- Account routes ---
	accounts := e.Group("/accounts", authMiddleware)
	accounts.GET("", accountHandler.List)
	accounts.GET("/getOne/:id", accountHandler.Get)
	accounts.POST("/create", accountHandler.Create)
	accounts.PATCH("/edit/:id", accountHandler.Edit)
	accounts.DELETE("/delete/:id", accountHandler.Delete)

	// --- Operational surface ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.DB, cfg.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
