package impl

import (
	"context"
	"log/slog"

	deliverycontext "francheasy/internal/delivery/context"
	"francheasy/internal/domain/entity"
	domainerrors "francheasy/internal/domain/errors"
	"francheasy/internal/domain/repository"
	"francheasy/internal/errors"
	"francheasy/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// povilionService implements the povilion operations.
type povilionService struct {
	povilionRepo repository.PovilionRepository
	storeRepo    repository.StoreRepository
	logger       *slog.Logger
}

// PovilionServiceParams holds dependencies for PovilionService, injected by Fx.
type PovilionServiceParams struct {
	fx.In

	PovilionRepo repository.PovilionRepository
	StoreRepo    repository.StoreRepository
	Logger       *slog.Logger
}

// NewPovilionService is the constructor for povilionService.
func NewPovilionService(params PovilionServiceParams) usecase.PovilionUsecase {
	return &povilionService{
		povilionRepo: params.PovilionRepo,
		storeRepo:    params.StoreRepo,
		logger:       params.Logger,
	}
}

func (srv *povilionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *povilionService) Create(ctx context.Context, userID uuid.UUID, input usecase.CreatePovilionInput) (*entity.Povilion, error) {
	if input.Title == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("title is required")
	}
	if input.StoreID == uuid.Nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("store id is required")
	}

	if _, err := srv.storeRepo.FindByID(ctx, input.StoreID); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound.WrapMessage("host store does not exist")
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find host store")
	}

	povilion := &entity.Povilion{
		UserID:  userID,
		StoreID: input.StoreID,
		Title:   input.Title,
		Price:   input.Price,
	}

	if err := srv.povilionRepo.Create(ctx, povilion); err != nil {
		srv.log(ctx).Error("Failed to create povilion", slog.Any("error", err))

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create povilion")
	}

	return povilion, nil
}

func (srv *povilionService) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.Povilion, error) {
	if _, err := srv.storeRepo.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find host store")
	}

	povilions, err := srv.povilionRepo.FindByStore(ctx, storeID)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list povilions")
	}

	return povilions, nil
}

func (srv *povilionService) Update(ctx context.Context, userID, id uuid.UUID, input usecase.UpdatePovilionInput) (*entity.Povilion, error) {
	povilion, err := srv.findPovilion(ctx, id)
	if err != nil {
		return nil, err
	}
	if povilion.UserID != userID {
		return nil, domainerrors.ErrOwnershipViolation
	}

	povilion.Title = input.Title
	povilion.Price = input.Price

	if err := srv.povilionRepo.Update(ctx, povilion); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to update povilion")
	}

	return povilion, nil
}

func (srv *povilionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	povilion, err := srv.findPovilion(ctx, id)
	if err != nil {
		return err
	}
	if povilion.UserID != userID {
		return domainerrors.ErrOwnershipViolation
	}

	if err := srv.povilionRepo.Delete(ctx, id); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete povilion")
	}

	return nil
}

func (srv *povilionService) findPovilion(ctx context.Context, id uuid.UUID) (*entity.Povilion, error) {
	povilion, err := srv.povilionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPovilionNotFound) {
			return nil, domainerrors.ErrPovilionNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find povilion")
	}

	return povilion, nil
}
