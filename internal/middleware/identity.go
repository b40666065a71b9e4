package middleware

import (
	"github.com/labstack/echo/v4"

	"authapi/internal/model"
)

// CurrentUser returns the user stored by LoadUser, or nil when the request
// did not pass through a guard.
func CurrentUser(c echo.Context) *model.User {
	user, ok := c.Get(userContextKey).(*model.User)
	if !ok {
		return nil
	}
	return user
}
