package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/coderun/account-service/internal/api/handler"
	"github.com/coderun/account-service/internal/api/middleware"
	"github.com/coderun/account-service/internal/core/ports"
	"github.com/coderun/account-service/internal/core/service"
	"github.com/coderun/account-service/internal/infrastructure/config"
	"github.com/coderun/account-service/internal/infrastructure/db/postgres"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sql.DB, notifier ports.Notifier, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("account"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	tokens, err := service.NewTokenService(cfg.SecretKey, cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	userRepo := postgres.NewUserRepository(db)
	accounts := service.NewAccountService(userRepo, tokens, notifier, cfg.PublicBaseURL, service.DefaultTokenTTL, log)
	accountHandler := handler.NewAccountHandler(accounts, cfg.PublicBaseURL)
	authMiddleware := middleware.Auth(tokens)

	// --- Account routes ---
	g := e.Group("/api")
	g.POST("/signup", accountHandler.Signup)
	g.POST("/login", accountHandler.Login)
	g.POST("/newpassword", accountHandler.NewPassword)
	g.GET("/emailcheck/:email", accountHandler.EmailCheck)
	g.GET("/emailconfirm/message/:email", accountHandler.ResendConfirm)
	g.GET("/emailconfirm/redirect/:email/:user_id", accountHandler.ConfirmRedirect)
	g.GET("/me", accountHandler.Me, authMiddleware)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	healthHandler := handler.NewHealthHandler(db)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	return e, nil
}
