package service

import (
	"context"
	"errors"
	"fmt"

	"authapi/internal/auth"
	apperrors "authapi/internal/errors"
	"authapi/internal/model"
)

// LoginPayload is returned by login and signup: the user plus a fresh token pair.
type LoginPayload struct {
	User      *model.User     `json:"user"`
	AuthToken *auth.TokenPair `json:"authToken"`
}

// AuthService handles authentication operations. Each call is independent;
// no session state is held between requests.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginPayload, error)
	Signup(ctx context.Context, username, password string) (*LoginPayload, error)
	CreateAuthToken(userID string, role model.UserRole) (*auth.TokenPair, error)
}

type authService struct {
	userService  UserService
	tokenService *auth.TokenService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userService UserService, tokenService *auth.TokenService) AuthService {
	return &authService{
		userService:  userService,
		tokenService: tokenService,
	}
}

// Login validates the credentials and issues a token pair. An unknown
// username and a wrong password surface as distinct failures.
func (s *authService) Login(ctx context.Context, username, password string) (*LoginPayload, error) {
	user, err := s.userService.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if !auth.ValidateHash(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	authToken, err := s.CreateAuthToken(user.ID.String(), user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginPayload{User: user, AuthToken: authToken}, nil
}

// Signup creates the user and logs them straight in.
func (s *authService) Signup(ctx context.Context, username, password string) (*LoginPayload, error) {
	user, err := s.userService.CreateUser(ctx, username, password)
	if err != nil {
		return nil, err
	}

	authToken, err := s.CreateAuthToken(user.ID.String(), user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginPayload{User: user, AuthToken: authToken}, nil
}

// CreateAuthToken issues a fresh pair for an already-authenticated user.
// The refresh endpoint reaches this without re-checking the password.
func (s *authService) CreateAuthToken(userID string, role model.UserRole) (*auth.TokenPair, error) {
	pair, err := s.tokenService.IssuePair(userID, role)
	if err != nil {
		return nil, fmt.Errorf("issue token pair: %w", err)
	}
	return pair, nil
}
