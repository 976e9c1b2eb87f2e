package service

import (
	"context"
	"errors"
)

// Provider errors distinguish a rejected exchange from an unreachable provider.
var (
	// ErrProviderRejected is returned when the provider refuses the
	// authorization code or returns a malformed response.
	ErrProviderRejected = errors.New("identity provider rejected the request")
	// ErrProviderUnavailable is returned when the provider cannot be reached.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)

// ProviderToken holds the provider-side access token returned by the exchange.
type ProviderToken struct {
	AccessToken string
	ExpiresIn   int
	UserID      int64
}

// ProviderProfile is the provider's view of the authenticated account.
// Raw carries the full profile object as returned by the provider, so the
// persistence layer can keep it opaque.
type ProviderProfile struct {
	ID        string
	FirstName string
	LastName  string
	Raw       []byte
}

// IdentityProvider defines the interface for the external OAuth identity
// provider used for sign-in.
type IdentityProvider interface {
	// BuildAuthorizationURL assembles the provider's authorize URL for the
	// given state and PKCE code challenge.
	BuildAuthorizationURL(state, challenge string) string

	// Exchange trades an authorization code plus the stored PKCE verifier for
	// a provider access token. deviceID is forwarded when non-empty.
	Exchange(ctx context.Context, code, verifier, deviceID string) (*ProviderToken, error)

	// FetchProfile resolves the account profile behind a provider access token.
	FetchProfile(ctx context.Context, token *ProviderToken) (*ProviderProfile, error)
}
