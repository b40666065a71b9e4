package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	_ "authapi/docs" // swagger docs

	"authapi/internal/auth"
	"authapi/internal/cache"
	"authapi/internal/config"
	"authapi/internal/db"
	"authapi/internal/handler"
	"authapi/internal/repository"
	"authapi/internal/router"
	"authapi/internal/service"
)

// @title Auth API
// @version 1.0
// @description Username/password authentication with RS256 token pairs and a paginated user listing.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	tokenService, err := auth.NewTokenService(
		cfg.Auth.PrivateKey,
		cfg.Auth.PublicKey,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)
	if err != nil {
		log.Fatalf("token service: %v", err)
	}

	var cacheClient *cache.Client
	if cfg.Redis.Addr != "" {
		cacheClient = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	}

	userRepo := repository.NewUserRepository(gormDB)
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(userService, tokenService)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, tokenService, userService, cacheClient, authHandler, userHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
