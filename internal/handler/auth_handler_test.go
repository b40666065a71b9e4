package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"authapi/internal/auth"
	apperrors "authapi/internal/errors"
	"authapi/internal/model"
	"authapi/internal/response"
	"authapi/internal/service"
	"authapi/internal/validation"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*service.LoginPayload, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginPayload), args.Error(1)
}

func (m *MockAuthService) Signup(ctx context.Context, username, password string) (*service.LoginPayload, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginPayload), args.Error(1)
}

func (m *MockAuthService) CreateAuthToken(userID string, role model.UserRole) (*auth.TokenPair, error) {
	args := m.Called(userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.TokenPair), args.Error(1)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validation.New()
	e.HTTPErrorHandler = response.ErrorHandler
	return e
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandler_Login(t *testing.T) {
	payload := &service.LoginPayload{
		User: &model.User{ID: uuid.New(), Username: "user00", Role: model.RoleUser},
		AuthToken: &auth.TokenPair{
			ExpiresIn:    3600,
			AccessToken:  "access",
			RefreshToken: "refresh",
		},
	}

	tests := []struct {
		name       string
		body       string
		setupMock  func(*MockAuthService)
		wantStatus int
	}{
		{
			name: "successful login",
			body: `{"username":"user00","password":"11111111"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, "user00", "11111111").Return(payload, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "unknown username",
			body: `{"username":"nobody0","password":"11111111"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, "nobody0", "11111111").Return(nil, apperrors.ErrUserNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "wrong password",
			body: `{"username":"user00","password":"wrongpass"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, "user00", "wrongpass").Return(nil, apperrors.ErrInvalidCredentials)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "username too short",
			body:       `{"username":"abc","password":"11111111"}`,
			setupMock:  func(m *MockAuthService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "password too short",
			body:       `{"username":"user00","password":"short"}`,
			setupMock:  func(m *MockAuthService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockAuthService)
			tt.setupMock(mockSvc)

			e := newTestEcho()
			e.POST("/api/auth/login", NewAuthHandler(mockSvc).Login)

			rec := postJSON(e, "/api/auth/login", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.EqualValues(t, tt.wantStatus, body["statusCode"])

			if tt.wantStatus == http.StatusOK {
				data := body["data"].(map[string]interface{})
				user := data["user"].(map[string]interface{})
				assert.Equal(t, "user00", user["username"])
				// The password hash never leaves the server.
				assert.NotContains(t, user, "password")
				assert.NotContains(t, user, "passwordHash")

				token := data["authToken"].(map[string]interface{})
				assert.Equal(t, "access", token["accessToken"])
			} else {
				// Error envelope carries a timestamp and the request path.
				assert.NotEmpty(t, body["timestamp"])
				assert.Equal(t, "/api/auth/login", body["path"])
			}

			mockSvc.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Signup(t *testing.T) {
	t.Run("duplicate username", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("Signup", mock.Anything, "taken0", "11111111").Return(nil, apperrors.ErrUserAlreadyExists)

		e := newTestEcho()
		e.POST("/api/auth/signup", NewAuthHandler(mockSvc).Signup)

		rec := postJSON(e, "/api/auth/signup", `{"username":"taken0","password":"11111111"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)

		mockSvc.AssertExpectations(t)
	})

	t.Run("username is trimmed before the service sees it", func(t *testing.T) {
		payload := &service.LoginPayload{
			User:      &model.User{ID: uuid.New(), Username: "user00", Role: model.RoleUser},
			AuthToken: &auth.TokenPair{ExpiresIn: 3600, AccessToken: "a", RefreshToken: "r"},
		}
		mockSvc := new(MockAuthService)
		mockSvc.On("Signup", mock.Anything, "user00", "11111111").Return(payload, nil)

		e := newTestEcho()
		e.POST("/api/auth/signup", NewAuthHandler(mockSvc).Signup)

		rec := postJSON(e, "/api/auth/signup", `{"username":"  user00  ","password":"11111111"}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		mockSvc.AssertExpectations(t)
	})
}
