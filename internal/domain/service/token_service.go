package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token type claim values.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Token validation errors.
var (
	// ErrTokenExpired is returned when a token's expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned when a token cannot be parsed or its signature does not verify.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrWrongTokenType is returned when the token's type claim does not match the expected kind.
	ErrWrongTokenType = errors.New("wrong token type")
)

// Claims defines the custom claims for the JWT tokens.
type Claims struct {
	UserID uuid.UUID
	Type   string
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// Access and refresh tokens are signed with independent secrets, so a token
// of one kind never verifies as the other.
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token for a given user.
	GenerateTokens(userID uuid.UUID) (accessToken string, refreshToken string, err error)

	// GenerateAccessToken creates only a new access token for a given user.
	GenerateAccessToken(userID uuid.UUID) (string, error)

	// ValidateAccessToken verifies a token against the access secret and
	// checks its type claim is "access".
	ValidateAccessToken(tokenString string) (*Claims, error)

	// ValidateRefreshToken verifies a token against the refresh secret and
	// checks its type claim is "refresh".
	ValidateRefreshToken(tokenString string) (*Claims, error)

	// GetRefreshTokenDuration returns the configured duration for refresh tokens.
	GetRefreshTokenDuration() time.Duration
}
