package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"authapi/internal/auth"
	"authapi/internal/cache"
	"authapi/internal/config"
	"authapi/internal/handler"
	"authapi/internal/middleware"
	"authapi/internal/model"
	"authapi/internal/response"
	"authapi/internal/service"
	"authapi/internal/validation"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokenService *auth.TokenService,
	userService service.UserService,
	cacheClient *cache.Client,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())
	e.Use(middleware.Throttle(cfg.Throttle, cacheClient))

	e.Validator = validation.New()
	e.HTTPErrorHandler = response.ErrorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	if cfg.Docs.Enabled {
		e.GET("/docs/*", echoSwagger.WrapHandler)
	}

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/signup", authHandler.Signup)

	// Bearer access token required
	api.GET("/auth/me", authHandler.GetCurrentUser,
		middleware.AccessToken(tokenService),
		middleware.LoadUser(userService, auth.AccessTokenType),
		middleware.RequireRole(string(model.RoleUser), string(model.RoleAdmin)),
	)

	// Refresh token travels on its own header
	api.POST("/auth/refresh-token", authHandler.RefreshToken,
		middleware.RefreshToken(tokenService),
		middleware.LoadUser(userService, auth.RefreshTokenType),
	)

	api.GET("/users", userHandler.GetUsers)
}
