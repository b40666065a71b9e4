package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "authapi/internal/errors"
	"authapi/internal/middleware"
	"authapi/internal/response"
	"authapi/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// UserCredentialRequest carries a username/password submission.
type UserCredentialRequest struct {
	Username string `json:"username" mod:"trim" validate:"required,min=6,max=15"`
	Password string `json:"password" mod:"trim" validate:"required,min=8,max=20"`
}

// Login godoc
// @Summary Login with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body UserCredentialRequest true "Credentials"
// @Success 200 {object} service.LoginPayload
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req UserCredentialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	payload, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}

	return response.Data(c, http.StatusOK, payload)
}

// Signup godoc
// @Summary Sign up with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body UserCredentialRequest true "Credentials"
// @Success 200 {object} service.LoginPayload
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req UserCredentialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	payload, err := h.authService.Signup(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}

	return response.Data(c, http.StatusOK, payload)
}

// GetCurrentUser godoc
// @Summary Get current user info
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return response.Data(c, http.StatusOK, user)
}

// RefreshToken godoc
// @Summary Get new auth token
// @Tags auth
// @Produce json
// @Param refresh-token header string true "Refresh token"
// @Success 200 {object} auth.TokenPair
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/refresh-token [post]
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	pair, err := h.authService.CreateAuthToken(user.ID.String(), user.Role)
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}

	return response.Data(c, http.StatusOK, pair)
}
