// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"francheasy/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CallbackInput carries the query parameters VK sends to the redirect URI.
type CallbackInput struct {
	Code     string
	State    string
	DeviceID string
}

// --- Output DTOs ---

// LoginRedirect is the assembled provider authorization URL plus the session
// id that doubles as the OAuth state.
type LoginRedirect struct {
	AuthURL   string
	SessionID string
}

// TokenPair is the issued session token pair.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// AuthUsecase defines the interface for the sign-in flow and session lifecycle.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// BeginLogin generates a PKCE proof, stores it, and returns the provider
	// authorization URL to redirect the browser to.
	BeginLogin(ctx context.Context) (*LoginRedirect, error)

	// LoginQR renders the authorization URL of a fresh login attempt as a
	// PNG QR code.
	LoginQR(ctx context.Context) ([]byte, error)

	// HandleCallback consumes the stored proof, exchanges the code with the
	// provider, resolves the local user and issues a token pair.
	HandleCallback(ctx context.Context, input CallbackInput) (*TokenPair, error)

	// Refresh validates a refresh token and issues a new access token. The
	// refresh token itself is returned unchanged.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// GetProfile returns the local user behind an authenticated session.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
