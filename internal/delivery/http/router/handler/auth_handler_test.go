package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	custommiddleware "francheasy/internal/delivery/http/middleware"
	"francheasy/internal/domain/entity"
	domainerrors "francheasy/internal/domain/errors"
	"francheasy/internal/domain/repository"
	"francheasy/internal/domain/service"
	"francheasy/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthUsecase struct {
	redirect    *usecase.LoginRedirect
	pair        *usecase.TokenPair
	user        *entity.User
	callbackErr error
	refreshErr  error
}

func (s *stubAuthUsecase) BeginLogin(context.Context) (*usecase.LoginRedirect, error) {
	return s.redirect, nil
}

func (s *stubAuthUsecase) LoginQR(context.Context) ([]byte, error) {
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

func (s *stubAuthUsecase) HandleCallback(_ context.Context, input usecase.CallbackInput) (*usecase.TokenPair, error) {
	if s.callbackErr != nil {
		return nil, s.callbackErr
	}
	return s.pair, nil
}

func (s *stubAuthUsecase) Refresh(_ context.Context, refreshToken string) (*usecase.TokenPair, error) {
	if s.refreshErr != nil {
		return nil, s.refreshErr
	}
	return &usecase.TokenPair{AccessToken: "new-access", RefreshToken: refreshToken, TokenType: "bearer"}, nil
}

func (s *stubAuthUsecase) GetProfile(context.Context, uuid.UUID) (*entity.User, error) {
	return s.user, nil
}

type stubTokenService struct {
	userID uuid.UUID
}

func (s *stubTokenService) GenerateTokens(uuid.UUID) (string, string, error) { return "", "", nil }
func (s *stubTokenService) GenerateAccessToken(uuid.UUID) (string, error)    { return "", nil }
func (s *stubTokenService) GetRefreshTokenDuration() time.Duration           { return time.Hour }

func (s *stubTokenService) ValidateAccessToken(token string) (*service.Claims, error) {
	if token != "good-token" {
		return nil, service.ErrTokenInvalid
	}
	return &service.Claims{UserID: s.userID}, nil
}

func (s *stubTokenService) ValidateRefreshToken(string) (*service.Claims, error) {
	return nil, service.ErrTokenInvalid
}

type stubUserRepo struct {
	known map[uuid.UUID]*entity.User
}

func (s *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if user, ok := s.known[id]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (s *stubUserRepo) FindByVKID(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrUserNotFound
}

func (s *stubUserRepo) Create(context.Context, *entity.User) error { return nil }
func (s *stubUserRepo) Update(context.Context, *entity.User) error { return nil }

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validatorStub{}
	return e
}

type validatorStub struct{}

func (validatorStub) Validate(any) error { return nil }

func TestAuthHandler_VKLogin_Redirects(t *testing.T) {
	uc := &stubAuthUsecase{redirect: &usecase.LoginRedirect{
		AuthURL:   "https://id.vk.com/auth?state=abc",
		SessionID: "abc",
	}}
	h := NewAuthHandler(uc, slog.Default())

	e := newEcho()
	req := httptest.NewRequest(http.MethodGet, "/auth/vk/login", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.VKLogin(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "https://id.vk.com/auth?state=abc", rec.Header().Get("Location"))
}

func TestAuthHandler_VKLoginQR_ServesPNG(t *testing.T) {
	h := NewAuthHandler(&stubAuthUsecase{}, slog.Default())

	e := newEcho()
	req := httptest.NewRequest(http.MethodGet, "/auth/vk/login/qr", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.VKLoginQR(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
}

func TestAuthHandler_VKCallback_ReturnsTokenPair(t *testing.T) {
	uc := &stubAuthUsecase{pair: &usecase.TokenPair{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "bearer",
	}}
	h := NewAuthHandler(uc, slog.Default())

	e := newEcho()
	req := httptest.NewRequest(http.MethodGet, "/auth/vk/callback?code=c&state=s", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.VKCallback(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access_token":"access"`)
	assert.Contains(t, rec.Body.String(), `"token_type":"bearer"`)
}

func TestAuthHandler_VKCallback_InvalidStateSurfacesAppError(t *testing.T) {
	uc := &stubAuthUsecase{callbackErr: domainerrors.ErrInvalidState}
	h := NewAuthHandler(uc, slog.Default())

	e := newEcho()
	req := httptest.NewRequest(http.MethodGet, "/auth/vk/callback?code=c&state=bad", nil)
	rec := httptest.NewRecorder()

	err := h.VKCallback(e.NewContext(req, rec))
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
	assert.Equal(t, "INVALID_STATE", appErr.ErrorCode())
}

func TestAuthHandler_Refresh(t *testing.T) {
	h := NewAuthHandler(&stubAuthUsecase{}, slog.Default())

	e := newEcho()
	body := `{"refresh_token":"keep-me"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Refresh(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"refresh_token":"keep-me"`)
}

func TestAuthMiddleware_RejectsMissingAndBadTokens(t *testing.T) {
	userID := uuid.New()
	users := &stubUserRepo{known: map[uuid.UUID]*entity.User{userID: {ID: userID}}}
	mw := custommiddleware.NewAuthMiddleware(&stubTokenService{userID: userID}, users)

	e := newEcho()
	next := func(c echo.Context) error {
		got, ok := custommiddleware.UserID(c)
		require.True(t, ok)
		assert.Equal(t, userID, got)
		return c.NoContent(http.StatusOK)
	}

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer good-token", http.StatusOK},
		{"bare token without scheme", "good-token", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			err := mw.Authenticate(next)(e.NewContext(req, rec))
			require.NoError(t, err)
			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestAuthMiddleware_RejectsTokenForUnknownUser(t *testing.T) {
	mw := custommiddleware.NewAuthMiddleware(
		&stubTokenService{userID: uuid.New()},
		&stubUserRepo{known: map[uuid.UUID]*entity.User{}},
	)

	e := newEcho()
	next := func(c echo.Context) error {
		t.Fatal("handler must not run for a token whose subject does not exist")
		return nil
	}

	req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	err := mw.Authenticate(next)(e.NewContext(req, rec))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
}
