package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"authapi/internal/pagination"
	"authapi/internal/response"
	"authapi/internal/service"
)

// UserHandler bundles user HTTP handlers.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetUsers godoc
// @Summary List users page by page
// @Tags users
// @Produce json
// @Param order query string false "Sort direction" Enums(ASC, DESC) default(ASC)
// @Param page query int false "Page number" minimum(1) default(1)
// @Param take query int false "Page size" minimum(1) maximum(50) default(10)
// @Success 200 {array} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) GetUsers(c echo.Context) error {
	query := pagination.NewQuery()
	if err := c.Bind(query); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(query); err != nil {
		return err
	}

	users, meta, err := h.userService.GetUsers(c.Request().Context(), query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list users")
	}

	return response.Page(c, http.StatusOK, users, meta)
}
