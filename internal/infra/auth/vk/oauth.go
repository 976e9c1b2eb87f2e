// Package vk implements the VK ID OAuth flow used for sign-in.
package vk

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"francheasy/config"
	"francheasy/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultTimeout = 10 * time.Second

func formatUserID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// OAuthService handles VK ID OAuth infrastructure operations.
type OAuthService struct {
	authURL      string
	tokenURL     string
	apiURL       string
	clientID     string
	clientSecret string
	redirectURI  string
	scopes       string

	httpClient *http.Client
	logger     *slog.Logger
}

// NewOAuthService creates a new VK OAuth service.
func NewOAuthService(cfg *config.Config, logger *slog.Logger) service.IdentityProvider {
	timeout := defaultTimeout
	if cfg.VKOAuth.Timeout > 0 {
		timeout = cfg.VKOAuth.Timeout
	}

	return &OAuthService{
		authURL:      cfg.VKOAuth.AuthURL,
		tokenURL:     cfg.VKOAuth.TokenURL,
		apiURL:       cfg.VKOAuth.APIURL,
		clientID:     cfg.VKOAuth.ClientID,
		clientSecret: cfg.VKOAuth.ClientSecret,
		redirectURI:  cfg.VKOAuth.RedirectURI,
		scopes:       cfg.VKOAuth.Scopes,
		httpClient:   &http.Client{Timeout: timeout},
		logger:       logger,
	}
}

// BuildAuthorizationURL assembles the VK ID authorize URL.
// VK ID names the client parameter app_id and expects the challenge method
// spelled "sha256" rather than the RFC's "S256".
func (s *OAuthService) BuildAuthorizationURL(state, challenge string) string {
	params := url.Values{}
	params.Set("app_id", s.clientID)
	params.Set("response_type", "code")
	params.Set("redirect_uri", s.redirectURI)
	params.Set("scope", s.scopes)
	params.Set("lang_id", "3")
	params.Set("scheme", "space_gray")
	params.Set("oauth_version", "2")
	params.Set("state", state)
	params.Set("code_challenge", challenge)
	params.Set("code_challenge_method", "sha256")

	return s.authURL + "?" + params.Encode()
}

// Exchange trades an authorization code plus the PKCE verifier for a VK access token.
func (s *OAuthService) Exchange(ctx context.Context, code, verifier, deviceID string) (*service.ProviderToken, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("client_id", s.clientID)
	data.Set("client_secret", s.clientSecret)
	data.Set("redirect_uri", s.redirectURI)
	data.Set("code_verifier", verifier)
	data.Set("code", code)
	if deviceID != "" {
		data.Set("device_id", deviceID)
	}

	s.logger.DebugContext(ctx, "exchanging authorization code",
		slog.String("token_url", s.tokenURL),
		slog.String("client_id", s.clientID),
		slog.Bool("device_id_present", deviceID != ""))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create token exchange request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(service.ErrProviderUnavailable, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(service.ErrProviderUnavailable, "failed to read token response")
	}

	var tokenResponse struct {
		AccessToken      string `json:"access_token"`
		ExpiresIn        int    `json:"expires_in"`
		UserID           int64  `json:"user_id"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &tokenResponse); err != nil {
		return nil, errors.Wrapf(service.ErrProviderRejected, "malformed token response with status %d", resp.StatusCode)
	}

	if tokenResponse.AccessToken == "" {
		s.logger.WarnContext(ctx, "token exchange rejected",
			slog.Int("status", resp.StatusCode),
			slog.String("error", tokenResponse.Error))
		return nil, errors.Wrapf(service.ErrProviderRejected, "no access token in response: %s", tokenResponse.Error)
	}

	return &service.ProviderToken{
		AccessToken: tokenResponse.AccessToken,
		ExpiresIn:   tokenResponse.ExpiresIn,
		UserID:      tokenResponse.UserID,
	}, nil
}

// FetchProfile resolves the account profile behind a VK access token via users.get.
func (s *OAuthService) FetchProfile(ctx context.Context, token *service.ProviderToken) (*service.ProviderProfile, error) {
	params := url.Values{}
	params.Set("access_token", token.AccessToken)
	params.Set("v", "5.199")
	params.Set("fields", "first_name,last_name,photo_200,domain")
	if token.UserID != 0 {
		params.Set("user_ids", formatUserID(token.UserID))
	} else {
		params.Set("user_ids", "")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create profile request")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(service.ErrProviderUnavailable, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(service.ErrProviderUnavailable, "failed to read profile response")
	}

	var apiResponse struct {
		Response []json.RawMessage `json:"response"`
		Error    *struct {
			ErrorCode int    `json:"error_code"`
			ErrorMsg  string `json:"error_msg"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return nil, errors.Wrapf(service.ErrProviderRejected, "malformed profile response with status %d", resp.StatusCode)
	}

	if apiResponse.Error != nil {
		s.logger.WarnContext(ctx, "profile request rejected",
			slog.Int("error_code", apiResponse.Error.ErrorCode),
			slog.String("error_msg", apiResponse.Error.ErrorMsg))
		return nil, errors.Wrapf(service.ErrProviderRejected, "api error: %s", apiResponse.Error.ErrorMsg)
	}
	if len(apiResponse.Response) == 0 {
		return nil, errors.Wrap(service.ErrProviderRejected, "empty profile response")
	}

	raw := apiResponse.Response[0]

	var profile struct {
		ID        int64  `json:"id"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, errors.Wrap(service.ErrProviderRejected, "malformed profile object")
	}

	externalID := formatUserID(profile.ID)
	if profile.ID == 0 {
		externalID = formatUserID(token.UserID)
	}

	return &service.ProviderProfile{
		ID:        externalID,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Raw:       raw,
	}, nil
}
