// Package middleware holds the token guards, role check and throttler that
// wrap protected routes.
package middleware

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"authapi/internal/auth"
	"authapi/internal/service"
)

const (
	// tokenContextKey is where the extraction middleware stores parsed claims.
	tokenContextKey = "token"
	// userContextKey is where LoadUser stores the resolved user.
	userContextKey = "authUser"
	// RefreshTokenHeader is the custom header refresh tokens travel on.
	RefreshTokenHeader = "refresh-token"
)

// AccessToken extracts and verifies a bearer access token.
func AccessToken(tokens *auth.TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(jwtConfig(tokens, "header:"+echo.HeaderAuthorization+":Bearer "))
}

// RefreshToken extracts and verifies a token from the refresh-token header.
func RefreshToken(tokens *auth.TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(jwtConfig(tokens, "header:"+RefreshTokenHeader))
}

func jwtConfig(tokens *auth.TokenService, lookup string) echojwt.Config {
	return echojwt.Config{
		ContextKey:  tokenContextKey,
		TokenLookup: lookup,
		ParseTokenFunc: func(c echo.Context, raw string) (interface{}, error) {
			return tokens.Parse(raw)
		},
	}
}

// LoadUser resolves the user referenced by already-verified claims and stores
// it in the context. A type-tag mismatch or a lookup miss is unauthorized.
func LoadUser(users service.UserService, expected auth.TokenType) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(tokenContextKey).(*auth.Claims)
			if !ok || claims.Type != expected {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireRole forbids users whose role is not in the allowed set. It assumes
// LoadUser already ran.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil || !allowed[string(user.Role)] {
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
			}
			return next(c)
		}
	}
}
