package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"authapi/internal/model"
)

// TokenType tags a token as usable for normal API calls or for refresh only.
type TokenType string

const (
	// AccessTokenType marks short-lived tokens presented as a bearer header.
	AccessTokenType TokenType = "ACCESS_TOKEN"
	// RefreshTokenType marks long-lived tokens presented in the refresh-token header.
	RefreshTokenType TokenType = "REFRESH_TOKEN"
)

// ErrInvalidToken is returned when a token fails signature or claim checks.
var ErrInvalidToken = errors.New("invalid token")

// Claims represents JWT claims carried by both token kinds.
type Claims struct {
	UserID string         `json:"userId"`
	Role   model.UserRole `json:"role"`
	Type   TokenType      `json:"type"`
	jwt.RegisteredClaims
}

// TokenPair is the issued access/refresh token pair. ExpiresIn is the access
// token lifetime in seconds.
type TokenPair struct {
	ExpiresIn    int    `json:"expiresIn"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenService signs tokens with an RSA private key and verifies them with
// the matching public key. No token is stored server-side; validity is
// derived solely from the signature and the embedded expiration.
type TokenService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService parses the PEM-encoded key pair. A malformed key is a
// startup failure, not something to defer to request time.
func NewTokenService(privateKeyPEM, publicKeyPEM string, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	return &TokenService{
		privateKey: privateKey,
		publicKey:  publicKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// IssuePair signs a new access/refresh token pair for the user.
func (s *TokenService) IssuePair(userID string, role model.UserRole) (*TokenPair, error) {
	accessToken, err := s.sign(userID, role, AccessTokenType, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken, err := s.sign(userID, role, RefreshTokenType, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &TokenPair{
		ExpiresIn:    int(s.accessTTL / time.Second),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Parse validates a token's signature and expiration and returns its claims.
// Type checking against the endpoint's expected kind is left to the guards.
func (s *TokenService) Parse(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.publicKey, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *TokenService) sign(userID string, role model.UserRole, tokenType TokenType, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(s.privateKey)
}
