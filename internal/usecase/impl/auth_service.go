// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "francheasy/internal/delivery/context"
	"francheasy/internal/domain/entity"
	domainerrors "francheasy/internal/domain/errors"
	"francheasy/internal/domain/repository"
	"francheasy/internal/domain/service"
	"francheasy/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const tokenTypeBearer = "bearer"

// authService implements the AuthUsecase interface.
type authService struct {
	txManager      repository.TransactionManager
	userRepo       repository.UserRepository
	proofGenerator service.ProofGenerator
	proofStore     service.ProofStore
	provider       service.IdentityProvider
	tokenService   service.TokenService
	qrService      service.QRCodeService
	logger         *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	UserRepo       repository.UserRepository
	ProofGenerator service.ProofGenerator
	ProofStore     service.ProofStore
	Provider       service.IdentityProvider
	TokenService   service.TokenService
	QRService      service.QRCodeService
	Logger         *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:      params.TxManager,
		userRepo:       params.UserRepo,
		proofGenerator: params.ProofGenerator,
		proofStore:     params.ProofStore,
		provider:       params.Provider,
		tokenService:   params.TokenService,
		qrService:      params.QRService,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// BeginLogin generates a PKCE proof, stores it under a fresh session id, and
// assembles the provider authorization URL. The session id doubles as the
// OAuth state parameter.
func (srv *authService) BeginLogin(ctx context.Context) (*usecase.LoginRedirect, error) {
	proof, err := srv.proofGenerator.NewProof()
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to generate proof")
	}

	sessionID := uuid.NewString()
	if err := srv.proofStore.Store(ctx, sessionID, proof); err != nil {
		srv.log(ctx).Error("Failed to store proof", slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to store proof")
	}

	authURL := srv.provider.BuildAuthorizationURL(sessionID, proof.Challenge)

	srv.log(ctx).Debug("Login attempt started", slog.String("session_id", sessionID))

	return &usecase.LoginRedirect{
		AuthURL:   authURL,
		SessionID: sessionID,
	}, nil
}

// LoginQR renders a fresh login attempt's authorization URL as a PNG QR code.
func (srv *authService) LoginQR(ctx context.Context) ([]byte, error) {
	redirect, err := srv.BeginLogin(ctx)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrService.EncodeURL(redirect.AuthURL)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to encode login QR")
	}

	return png, nil
}

// HandleCallback completes the sign-in flow. The stored proof is consumed
// before the provider is contacted, so a replayed callback fails on the state
// check without ever reaching the provider.
func (srv *authService) HandleCallback(ctx context.Context, input usecase.CallbackInput) (*usecase.TokenPair, error) {
	if input.Code == "" || input.State == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("missing code or state")
	}

	proof, err := srv.proofStore.Consume(ctx, input.State)
	if err != nil {
		if errors.Is(err, service.ErrProofNotFound) {
			srv.log(ctx).Warn("Callback with unknown or reused state")

			return nil, domainerrors.ErrInvalidState
		}
		srv.log(ctx).Error("Failed to consume proof", slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to consume proof")
	}

	token, err := srv.provider.Exchange(ctx, input.Code, proof.Verifier, input.DeviceID)
	if err != nil {
		return nil, srv.mapProviderError(ctx, err, "token exchange failed")
	}

	profile, err := srv.provider.FetchProfile(ctx, token)
	if err != nil {
		return nil, srv.mapProviderError(ctx, err, "profile fetch failed")
	}
	if profile.ID == "" || profile.ID == "0" {
		return nil, domainerrors.ErrProviderError.WrapMessage("profile without id")
	}

	user, err := srv.resolveUser(ctx, profile)
	if err != nil {
		return nil, err
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to issue tokens")
	}

	srv.log(ctx).Info("Sign-in completed", slog.String("user_id", user.ID.String()))

	return &usecase.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    tokenTypeBearer,
	}, nil
}

// Refresh validates a refresh token and issues a new access token. The
// refresh token is echoed back unchanged; there is no rotation.
func (srv *authService) Refresh(ctx context.Context, refreshToken string) (*usecase.TokenPair, error) {
	claims, err := srv.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		srv.log(ctx).Debug("Refresh token rejected", slog.Any("error", err))

		return nil, domainerrors.ErrUnauthenticated
	}

	accessToken, err := srv.tokenService.GenerateAccessToken(claims.UserID)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to issue access token")
	}

	return &usecase.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    tokenTypeBearer,
	}, nil
}

// GetProfile returns the local user behind an authenticated session.
func (srv *authService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to load user")
	}

	return user, nil
}

// resolveUser maps a provider profile onto a local user. The VK id is the
// permanent de-duplication key: a returning account always resolves to the
// same local user, and its stored profile snapshot is refreshed on the way.
func (srv *authService) resolveUser(ctx context.Context, profile *service.ProviderProfile) (*entity.User, error) {
	var resolved *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := userRepo.FindByVKID(ctx, profile.ID)
		if err == nil {
			user.VKProfile = profile.Raw
			if err := userRepo.Update(ctx, user); err != nil {
				return errors.Wrap(err, "failed to refresh profile snapshot")
			}
			resolved = user

			return nil
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to look up user by vk id")
		}

		newUser := &entity.User{
			VKID:      profile.ID,
			VKProfile: profile.Raw,
		}
		if err := userRepo.Create(ctx, newUser); err != nil {
			return err
		}
		resolved = newUser

		srv.log(ctx).Info("New user linked", slog.String("user_id", newUser.ID.String()))

		return nil
	})
	if err != nil {
		// A concurrent callback may have linked the same account first; the
		// unique vk_id constraint makes the loser re-read the winner's row.
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) && appErr.ErrorCode() == domainerrors.ErrConflict.ErrorCode() {
			user, findErr := srv.userRepo.FindByVKID(ctx, profile.ID)
			if findErr == nil {
				return user, nil
			}
		}

		srv.log(ctx).Error("Failed to resolve user", slog.Any("error", err))

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to resolve user")
	}

	return resolved, nil
}

// mapProviderError collapses transport failures and provider rejections into
// the matching application errors.
func (srv *authService) mapProviderError(ctx context.Context, err error, msg string) error {
	srv.log(ctx).Warn(msg, slog.Any("error", err))

	if errors.Is(err, service.ErrProviderUnavailable) {
		return domainerrors.ErrProviderUnavailable
	}

	return domainerrors.ErrProviderError
}
