package impl

import (
	"context"
	"log/slog"
	"path"
	"strings"
	"time"

	"francheasy/config"
	deliverycontext "francheasy/internal/delivery/context"
	"francheasy/internal/domain/entity"
	domainerrors "francheasy/internal/domain/errors"
	"francheasy/internal/domain/repository"
	"francheasy/internal/domain/service"
	"francheasy/internal/errors"
	"francheasy/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// francheasyService implements the franchise listing operations.
type francheasyService struct {
	txManager      repository.TransactionManager
	francheasyRepo repository.FrancheasyRepository
	photoStorage   service.PhotoStorage
	signedExpiry   time.Duration
	logger         *slog.Logger
}

// FrancheasyServiceParams holds dependencies for FrancheasyService, injected by Fx.
type FrancheasyServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	FrancheasyRepo repository.FrancheasyRepository
	PhotoStorage   service.PhotoStorage
	Config         *config.Config
	Logger         *slog.Logger
}

// NewFrancheasyService is the constructor for francheasyService.
func NewFrancheasyService(params FrancheasyServiceParams) usecase.FrancheasyUsecase {
	expiry := params.Config.Storage.SignedURLExpiry
	if expiry <= 0 {
		expiry = time.Hour
	}

	return &francheasyService{
		txManager:      params.TxManager,
		francheasyRepo: params.FrancheasyRepo,
		photoStorage:   params.PhotoStorage,
		signedExpiry:   expiry,
		logger:         params.Logger,
	}
}

func (srv *francheasyService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *francheasyService) Create(ctx context.Context, userID uuid.UUID, input usecase.CreateFrancheasyInput) (*usecase.FrancheasyOutput, error) {
	if input.Title == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("title is required")
	}

	francheasy := &entity.Francheasy{
		UserID:       userID,
		Title:        input.Title,
		EBITDA:       input.EBITDA,
		StartCapital: input.StartCapital,
		OpenStore:    input.OpenStore,
		PhoneNumber:  input.PhoneNumber,
		PhotoKeys:    []string{},
	}

	if err := srv.francheasyRepo.Create(ctx, francheasy); err != nil {
		srv.log(ctx).Error("Failed to create listing", slog.Any("error", err))

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create listing")
	}

	if len(input.Photos) > 0 {
		keys, err := srv.uploadPhotos(ctx, francheasy.ID, input.Photos)
		if err != nil {
			return nil, err
		}

		francheasy.PhotoKeys = keys
		if err := srv.francheasyRepo.Update(ctx, francheasy); err != nil {
			return nil, domainerrors.NewDatabaseExecuteError(err, "failed to attach photos")
		}
	}

	return srv.toOutput(ctx, francheasy), nil
}

func (srv *francheasyService) List(ctx context.Context) ([]*usecase.FrancheasyOutput, error) {
	listings, err := srv.francheasyRepo.FindAll(ctx)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list listings")
	}

	return srv.toOutputs(ctx, listings), nil
}

func (srv *francheasyService) ListMine(ctx context.Context, userID uuid.UUID) ([]*usecase.FrancheasyOutput, error) {
	listings, err := srv.francheasyRepo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list own listings")
	}

	return srv.toOutputs(ctx, listings), nil
}

func (srv *francheasyService) Get(ctx context.Context, id uuid.UUID) (*usecase.FrancheasyOutput, error) {
	francheasy, err := srv.findListing(ctx, id)
	if err != nil {
		return nil, err
	}

	return srv.toOutput(ctx, francheasy), nil
}

func (srv *francheasyService) Update(ctx context.Context, userID, id uuid.UUID, input usecase.UpdateFrancheasyInput) (*entity.Francheasy, error) {
	francheasy, err := srv.findListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if francheasy.UserID != userID {
		return nil, domainerrors.ErrOwnershipViolation
	}

	francheasy.Title = input.Title
	francheasy.EBITDA = input.EBITDA
	francheasy.StartCapital = input.StartCapital
	francheasy.OpenStore = input.OpenStore
	francheasy.PhoneNumber = input.PhoneNumber

	if err := srv.francheasyRepo.Update(ctx, francheasy); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to update listing")
	}

	return francheasy, nil
}

func (srv *francheasyService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	francheasy, err := srv.findListing(ctx, id)
	if err != nil {
		return err
	}
	if francheasy.UserID != userID {
		return domainerrors.ErrOwnershipViolation
	}

	if err := srv.francheasyRepo.Delete(ctx, id); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete listing")
	}

	// Photos are best-effort cleanup; an orphaned object never blocks the delete.
	for _, key := range francheasy.PhotoKeys {
		if err := srv.photoStorage.Delete(ctx, key); err != nil {
			srv.log(ctx).Warn("Failed to delete listing photo",
				slog.String("key", key),
				slog.Any("error", err))
		}
	}

	return nil
}

func (srv *francheasyService) AddPhotos(ctx context.Context, userID, id uuid.UUID, photos []usecase.PhotoUpload) ([]string, error) {
	if len(photos) == 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("no photo files provided")
	}

	francheasy, err := srv.findListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if francheasy.UserID != userID {
		return nil, domainerrors.ErrOwnershipViolation
	}

	keys, err := srv.uploadPhotos(ctx, id, photos)
	if err != nil {
		return nil, err
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.NewFrancheasyRepository()

		current, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		current.PhotoKeys = append(current.PhotoKeys, keys...)

		return repo.Update(ctx, current)
	})
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to attach photos")
	}

	return keys, nil
}

func (srv *francheasyService) uploadPhotos(ctx context.Context, id uuid.UUID, photos []usecase.PhotoUpload) ([]string, error) {
	keys := make([]string, 0, len(photos))
	for _, photo := range photos {
		key := photoKey(id, photo.Filename)
		if err := srv.photoStorage.Upload(ctx, key, photo.ContentType, photo.Body); err != nil {
			srv.log(ctx).Error("Failed to upload photo",
				slog.String("key", key),
				slog.Any("error", err))

			return nil, domainerrors.ErrPhotoUploadFailed
		}
		keys = append(keys, key)
	}

	return keys, nil
}

func (srv *francheasyService) findListing(ctx context.Context, id uuid.UUID) (*entity.Francheasy, error) {
	francheasy, err := srv.francheasyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFrancheasyNotFound) {
			return nil, domainerrors.ErrFrancheasyNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find listing")
	}

	return francheasy, nil
}

func (srv *francheasyService) toOutputs(ctx context.Context, listings []*entity.Francheasy) []*usecase.FrancheasyOutput {
	outputs := make([]*usecase.FrancheasyOutput, 0, len(listings))
	for _, listing := range listings {
		outputs = append(outputs, srv.toOutput(ctx, listing))
	}

	return outputs
}

// toOutput resolves photo keys to signed download URLs. A key that fails to
// sign is skipped rather than failing the whole listing.
func (srv *francheasyService) toOutput(ctx context.Context, francheasy *entity.Francheasy) *usecase.FrancheasyOutput {
	urls := make([]string, 0, len(francheasy.PhotoKeys))
	for _, key := range francheasy.PhotoKeys {
		url, err := srv.photoStorage.SignedURL(ctx, key, srv.signedExpiry)
		if err != nil {
			srv.log(ctx).Warn("Failed to sign photo URL",
				slog.String("key", key),
				slog.Any("error", err))

			continue
		}
		urls = append(urls, url)
	}

	preview := ""
	if len(urls) > 0 {
		preview = urls[0]
	}

	return &usecase.FrancheasyOutput{Francheasy: francheasy, PhotoURLs: urls, PreviewPhotoURL: preview}
}

// photoKey builds the object-storage key for an uploaded listing photo. The
// original filename only contributes its extension.
func photoKey(listingID uuid.UUID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))

	return listingID.String() + "/francheasy-photos/" + uuid.NewString() + ext
}
