package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"authapi/internal/cache"
	"authapi/internal/config"
)

// Throttle limits each client IP to cfg.Limit requests per cfg.TTL window,
// counted in redis. When redis is unreachable the middleware fails open.
func Throttle(cfg config.ThrottleConfig, client *cache.Client) echo.MiddlewareFunc {
	if client == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "throttle:" + c.RealIP()

			count, ttl, err := client.Hit(c.Request().Context(), key, cfg.TTL)
			if err != nil {
				return next(c)
			}

			remaining := int64(cfg.Limit) - count
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(cfg.Limit) {
				retryAfter := int(math.Ceil(ttl.Seconds()))
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return echo.NewHTTPError(http.StatusTooManyRequests, "ThrottlerException: Too Many Requests")
			}

			return next(c)
		}
	}
}
