package middleware

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authapi/internal/auth"
	apperrors "authapi/internal/errors"
	"authapi/internal/model"
	"authapi/internal/pagination"
)

// stubUserService serves a single known user.
type stubUserService struct {
	user *model.User
}

func (s *stubUserService) CreateUser(ctx context.Context, username, password string) (*model.User, error) {
	return nil, apperrors.ErrUserAlreadyExists
}

func (s *stubUserService) FindByID(ctx context.Context, id string) (*model.User, error) {
	if s.user != nil && s.user.ID.String() == id {
		return s.user, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *stubUserService) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	if s.user != nil && s.user.Username == username {
		return s.user, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *stubUserService) GetUsers(ctx context.Context, query *pagination.Query) ([]model.User, *pagination.Meta, error) {
	return []model.User{}, pagination.NewMeta(query, 0), nil
}

func newGuardTokenService(t *testing.T) *auth.TokenService {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicDER,
	})

	svc, err := auth.NewTokenService(string(privatePEM), string(publicPEM), time.Hour, time.Hour)
	require.NoError(t, err)
	return svc
}

func newGuardedEcho(t *testing.T, tokens *auth.TokenService, user *model.User) *echo.Echo {
	t.Helper()

	users := &stubUserService{user: user}

	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		return c.JSON(http.StatusOK, CurrentUser(c))
	},
		AccessToken(tokens),
		LoadUser(users, auth.AccessTokenType),
		RequireRole(string(model.RoleUser), string(model.RoleAdmin)),
	)
	e.POST("/refresh", func(c echo.Context) error {
		return c.JSON(http.StatusOK, CurrentUser(c))
	},
		RefreshToken(tokens),
		LoadUser(users, auth.RefreshTokenType),
	)
	return e
}

func TestGuards_TokenTypeDiscipline(t *testing.T) {
	tokens := newGuardTokenService(t)
	user := &model.User{ID: uuid.New(), Username: "user00", Role: model.RoleUser}
	e := newGuardedEcho(t, tokens, user)

	pair, err := tokens.IssuePair(user.ID.String(), user.Role)
	require.NoError(t, err)

	tests := []struct {
		name         string
		method       string
		path         string
		authza       string
		refreshToken string
		wantStatus   int
	}{
		{"access token on access endpoint", http.MethodGet, "/me", "Bearer " + pair.AccessToken, "", http.StatusOK},
		{"refresh token on access endpoint", http.MethodGet, "/me", "Bearer " + pair.RefreshToken, "", http.StatusUnauthorized},
		{"refresh token on refresh endpoint", http.MethodPost, "/refresh", "", pair.RefreshToken, http.StatusOK},
		{"access token on refresh endpoint", http.MethodPost, "/refresh", "", pair.AccessToken, http.StatusUnauthorized},
		{"missing token", http.MethodGet, "/me", "", "", http.StatusBadRequest},
		{"garbage token", http.MethodGet, "/me", "Bearer garbage", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.authza != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.authza)
			}
			if tt.refreshToken != "" {
				req.Header.Set(RefreshTokenHeader, tt.refreshToken)
			}
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestLoadUser_UnknownUser(t *testing.T) {
	tokens := newGuardTokenService(t)
	user := &model.User{ID: uuid.New(), Username: "user00", Role: model.RoleUser}
	e := newGuardedEcho(t, tokens, user)

	// Validly signed token referencing a user that no longer exists.
	pair, err := tokens.IssuePair(uuid.New().String(), model.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole_Forbidden(t *testing.T) {
	tokens := newGuardTokenService(t)
	user := &model.User{ID: uuid.New(), Username: "user00", Role: model.RoleUser}
	users := &stubUserService{user: user}

	e := echo.New()
	e.GET("/admin", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	},
		AccessToken(tokens),
		LoadUser(users, auth.AccessTokenType),
		RequireRole(string(model.RoleAdmin)),
	)

	pair, err := tokens.IssuePair(user.ID.String(), user.Role)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
