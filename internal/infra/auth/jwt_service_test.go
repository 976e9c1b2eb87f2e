package auth

import (
	"testing"
	"time"

	"francheasy/config"
	"francheasy/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"
	return cfg
}

func TestJWTService_GenerateAndValidateTokens(t *testing.T) {
	jwtService, err := NewJWTService(testConfig())
	require.NoError(t, err)
	require.NotNil(t, jwtService)

	userID := uuid.New()

	accessToken, refreshToken, err := jwtService.GenerateTokens(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	// Validate access token
	accessClaims, err := jwtService.ValidateAccessToken(accessToken)
	assert.NoError(t, err)
	assert.NotNil(t, accessClaims)
	assert.Equal(t, userID, accessClaims.UserID)
	assert.Equal(t, service.TokenTypeAccess, accessClaims.Type)

	// Validate refresh token
	refreshClaims, err := jwtService.ValidateRefreshToken(refreshToken)
	assert.NoError(t, err)
	assert.NotNil(t, refreshClaims)
	assert.Equal(t, userID, refreshClaims.UserID)
	assert.Equal(t, service.TokenTypeRefresh, refreshClaims.Type)
}

func TestJWTService_TokenTypeSeparation(t *testing.T) {
	jwtService, err := NewJWTService(testConfig())
	require.NoError(t, err)

	accessToken, refreshToken, err := jwtService.GenerateTokens(uuid.New())
	require.NoError(t, err)

	// An access token never verifies under the refresh secret, and vice versa
	_, err = jwtService.ValidateRefreshToken(accessToken)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)

	_, err = jwtService.ValidateAccessToken(refreshToken)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestJWTService_WrongTokenType(t *testing.T) {
	// Sign both kinds with the same secret to isolate the type claim check
	cfg := testConfig()
	svc := &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Access + "_other",
		accessTTL:     time.Minute,
		refreshTTL:    time.Minute,
	}

	refreshTyped, err := svc.generateToken(uuid.New(), time.Minute, svc.accessSecret, service.TokenTypeRefresh)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(refreshTyped)
	assert.ErrorIs(t, err, service.ErrWrongTokenType)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	cfg := testConfig()
	svc := &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
		accessTTL:     -time.Minute,
		refreshTTL:    time.Minute,
	}

	expired, err := svc.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(expired)
	assert.ErrorIs(t, err, service.ErrTokenExpired)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(testConfig())
	require.NoError(t, err)

	for _, token := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		_, err := jwtService.ValidateAccessToken(token)
		assert.ErrorIs(t, err, service.ErrTokenInvalid)
	}
}

func TestNewJWTService_ConfigValidation(t *testing.T) {
	// Missing secrets
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)

	// Identical secrets
	cfg := &config.Config{}
	cfg.SecretKey.Access = "same_secret"
	cfg.SecretKey.Refresh = "same_secret"
	_, err = NewJWTService(cfg)
	assert.Error(t, err)
}

func TestJWTService_ConfiguredTTL(t *testing.T) {
	cfg := testConfig()
	cfg.JWT = &config.JWTConfig{AccessTTL: time.Minute, RefreshTTL: 48 * time.Hour}

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)
	assert.Equal(t, 48*time.Hour, jwtService.GetRefreshTokenDuration())
}
