package impl

import (
	"context"
	"log/slog"
	"sort"

	deliverycontext "francheasy/internal/delivery/context"
	"francheasy/internal/domain/entity"
	domainerrors "francheasy/internal/domain/errors"
	"francheasy/internal/domain/repository"
	"francheasy/internal/errors"
	"francheasy/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"go.uber.org/fx"
)

// storeService implements the store operations.
type storeService struct {
	storeRepo repository.StoreRepository
	logger    *slog.Logger
}

// StoreServiceParams holds dependencies for StoreService, injected by Fx.
type StoreServiceParams struct {
	fx.In

	StoreRepo repository.StoreRepository
	Logger    *slog.Logger
}

// NewStoreService is the constructor for storeService.
func NewStoreService(params StoreServiceParams) usecase.StoreUsecase {
	return &storeService{
		storeRepo: params.StoreRepo,
		logger:    params.Logger,
	}
}

func (srv *storeService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *storeService) Create(ctx context.Context, userID uuid.UUID, input usecase.CreateStoreInput) (*entity.Store, error) {
	if input.Title == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("title is required")
	}
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	store := &entity.Store{
		UserID:              userID,
		Title:               input.Title,
		CrossCountryAbility: input.CrossCountryAbility,
		Latitude:            input.Latitude,
		Longitude:           input.Longitude,
		Address:             input.Address,
	}

	if err := srv.storeRepo.Create(ctx, store); err != nil {
		srv.log(ctx).Error("Failed to create store", slog.Any("error", err))

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create store")
	}

	return store, nil
}

func (srv *storeService) List(ctx context.Context) ([]*entity.Store, error) {
	stores, err := srv.storeRepo.FindAll(ctx)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list stores")
	}

	return stores, nil
}

func (srv *storeService) Get(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	return srv.findStore(ctx, id)
}

func (srv *storeService) Update(ctx context.Context, userID, id uuid.UUID, input usecase.UpdateStoreInput) (*entity.Store, error) {
	store, err := srv.findStore(ctx, id)
	if err != nil {
		return nil, err
	}
	if store.UserID != userID {
		return nil, domainerrors.ErrOwnershipViolation
	}
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	store.Title = input.Title
	store.CrossCountryAbility = input.CrossCountryAbility
	store.Latitude = input.Latitude
	store.Longitude = input.Longitude
	store.Address = input.Address

	if err := srv.storeRepo.Update(ctx, store); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to update store")
	}

	return store, nil
}

func (srv *storeService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	store, err := srv.findStore(ctx, id)
	if err != nil {
		return err
	}
	if store.UserID != userID {
		return domainerrors.ErrOwnershipViolation
	}

	if err := srv.storeRepo.Delete(ctx, id); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete store")
	}

	return nil
}

// Nearby filters the catalog by great-circle distance from the query point.
// The catalog is small enough that an in-memory scan beats maintaining a
// spatial index.
func (srv *storeService) Nearby(ctx context.Context, latitude, longitude, radiusMeters float64) ([]*usecase.NearbyStore, error) {
	if err := validateCoordinates(latitude, longitude); err != nil {
		return nil, err
	}
	if radiusMeters <= 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("radius must be positive")
	}

	stores, err := srv.storeRepo.FindAll(ctx)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list stores")
	}

	origin := orb.Point{longitude, latitude}
	nearby := make([]*usecase.NearbyStore, 0)
	for _, store := range stores {
		distance := geo.Distance(origin, orb.Point{store.Longitude, store.Latitude})
		if distance <= radiusMeters {
			nearby = append(nearby, &usecase.NearbyStore{Store: store, DistanceMeters: distance})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceMeters < nearby[j].DistanceMeters
	})

	return nearby, nil
}

func (srv *storeService) findStore(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	store, err := srv.storeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find store")
	}

	return store, nil
}

func validateCoordinates(latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 {
		return domainerrors.ErrValidationFailed.WrapMessage("latitude out of range")
	}
	if longitude < -180 || longitude > 180 {
		return domainerrors.ErrValidationFailed.WrapMessage("longitude out of range")
	}

	return nil
}
