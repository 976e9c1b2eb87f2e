package vk

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"francheasy/config"
	"francheasy/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, tokenURL, apiURL string) *OAuthService {
	t.Helper()

	cfg := &config.Config{
		VKOAuth: &config.VKOAuthConfig{
			AuthURL:      "https://id.vk.com/auth",
			TokenURL:     tokenURL,
			APIURL:       apiURL,
			ClientID:     "12345",
			ClientSecret: "test_secret",
			RedirectURI:  "http://localhost:8080/auth/vk/callback",
			Scopes:       "user_id first_name last_name avatar",
			Timeout:      2 * time.Second,
		},
	}
	svc, ok := NewOAuthService(cfg, slog.Default()).(*OAuthService)
	require.True(t, ok)
	return svc
}

func TestOAuthService_BuildAuthorizationURL(t *testing.T) {
	svc := newTestService(t, "https://id.vk.com/oauth2/auth", "https://api.vk.com/method/users.get")

	raw := svc.BuildAuthorizationURL("state-123", "challenge-abc")

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "id.vk.com", parsed.Host)

	q := parsed.Query()
	assert.Equal(t, "12345", q.Get("app_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "http://localhost:8080/auth/vk/callback", q.Get("redirect_uri"))
	assert.Equal(t, "state-123", q.Get("state"))
	assert.Equal(t, "challenge-abc", q.Get("code_challenge"))
	assert.Equal(t, "sha256", q.Get("code_challenge_method"))
	assert.Equal(t, "2", q.Get("oauth_version"))
}

func TestOAuthService_Exchange(t *testing.T) {
	var gotForm url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"vk_token_abc","expires_in":3600,"user_id":777}`))
	}))
	defer ts.Close()

	svc := newTestService(t, ts.URL, "unused")

	token, err := svc.Exchange(context.Background(), "auth-code", "verifier-xyz", "device-1")
	require.NoError(t, err)
	assert.Equal(t, "vk_token_abc", token.AccessToken)
	assert.Equal(t, int64(777), token.UserID)
	assert.Equal(t, 3600, token.ExpiresIn)

	assert.Equal(t, "authorization_code", gotForm.Get("grant_type"))
	assert.Equal(t, "12345", gotForm.Get("client_id"))
	assert.Equal(t, "test_secret", gotForm.Get("client_secret"))
	assert.Equal(t, "verifier-xyz", gotForm.Get("code_verifier"))
	assert.Equal(t, "auth-code", gotForm.Get("code"))
	assert.Equal(t, "device-1", gotForm.Get("device_id"))
}

func TestOAuthService_Exchange_OmitsEmptyDeviceID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.False(t, r.PostForm.Has("device_id"))
		_, _ = w.Write([]byte(`{"access_token":"tok","user_id":1}`))
	}))
	defer ts.Close()

	svc := newTestService(t, ts.URL, "unused")

	_, err := svc.Exchange(context.Background(), "code", "verifier", "")
	require.NoError(t, err)
}

func TestOAuthService_Exchange_Rejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"code expired"}`))
	}))
	defer ts.Close()

	svc := newTestService(t, ts.URL, "unused")

	_, err := svc.Exchange(context.Background(), "stale-code", "verifier", "")
	assert.ErrorIs(t, err, service.ErrProviderRejected)
}

func TestOAuthService_Exchange_ProviderDown(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // connection refused

	svc := newTestService(t, ts.URL, "unused")

	_, err := svc.Exchange(context.Background(), "code", "verifier", "")
	assert.ErrorIs(t, err, service.ErrProviderUnavailable)
}

func TestOAuthService_FetchProfile(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "vk_token_abc", q.Get("access_token"))
		assert.Equal(t, "5.199", q.Get("v"))
		assert.Equal(t, "777", q.Get("user_ids"))
		_, _ = w.Write([]byte(`{"response":[{"id":777,"first_name":"Ivan","last_name":"Petrov","domain":"ipetrov"}]}`))
	}))
	defer ts.Close()

	svc := newTestService(t, "unused", ts.URL)

	profile, err := svc.FetchProfile(context.Background(), &service.ProviderToken{AccessToken: "vk_token_abc", UserID: 777})
	require.NoError(t, err)
	assert.Equal(t, "777", profile.ID)
	assert.Equal(t, "Ivan", profile.FirstName)
	assert.Equal(t, "Petrov", profile.LastName)
	assert.Contains(t, string(profile.Raw), "ipetrov")
}

func TestOAuthService_FetchProfile_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"error_code":5,"error_msg":"User authorization failed"}}`))
	}))
	defer ts.Close()

	svc := newTestService(t, "unused", ts.URL)

	_, err := svc.FetchProfile(context.Background(), &service.ProviderToken{AccessToken: "bad", UserID: 1})
	assert.ErrorIs(t, err, service.ErrProviderRejected)
}

func TestOAuthService_FetchProfile_EmptyResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":[]}`))
	}))
	defer ts.Close()

	svc := newTestService(t, "unused", ts.URL)

	_, err := svc.FetchProfile(context.Background(), &service.ProviderToken{AccessToken: "tok", UserID: 1})
	assert.ErrorIs(t, err, service.ErrProviderRejected)
}
