package postgres

import (
	"context"

	"francheasy/internal/domain/entity"
	domainerrors "francheasy/internal/domain/errors"
	"francheasy/internal/domain/repository"
	"francheasy/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// storeRepository implements the domain.StoreRepository interface using GORM.
type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository is the constructor for storeRepository.
func NewStoreRepository(db *gorm.DB) repository.StoreRepository {
	return &storeRepository{db: db}
}

// FindByID retrieves a single store by its unique ID.
func (repo *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	var m model.StoreModel
	if err := repo.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store by id")
	}

	return toStoreDomain(&m), nil
}

// FindAll retrieves every registered store.
func (repo *storeRepository) FindAll(ctx context.Context) ([]*entity.Store, error) {
	var models []model.StoreModel
	if err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list stores")
	}

	stores := make([]*entity.Store, 0, len(models))
	for i := range models {
		stores = append(stores, toStoreDomain(&models[i]))
	}

	return stores, nil
}

// FindByOwner retrieves all stores belonging to a specific user.
func (repo *storeRepository) FindByOwner(ctx context.Context, userID uuid.UUID) ([]*entity.Store, error) {
	var models []model.StoreModel
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list stores by owner")
	}

	stores := make([]*entity.Store, 0, len(models))
	for i := range models {
		stores = append(stores, toStoreDomain(&models[i]))
	}

	return stores, nil
}

// Create persists a new store.
func (repo *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	m := fromStoreDomain(store)

	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("store owner does not exist")
		}
		return domainerrors.NewDatabaseExecuteError(err, "failed to create store")
	}

	store.ID = m.ID
	store.CreatedAt = m.CreatedAt
	store.UpdatedAt = m.UpdatedAt

	return nil
}

// Update modifies an existing store.
func (repo *storeRepository) Update(ctx context.Context, store *entity.Store) error {
	result := repo.db.WithContext(ctx).Model(&model.StoreModel{}).
		Where("id = ?", store.ID).
		Updates(map[string]any{
			"title":                 store.Title,
			"cross_country_ability": store.CrossCountryAbility,
			"latitude":              store.Latitude,
			"longitude":             store.Longitude,
			"address":               store.Address,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update store")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStoreNotFound
	}

	return nil
}

// Delete removes a store by its ID.
func (repo *storeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.StoreModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete store")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStoreNotFound
	}

	return nil
}

// toStoreDomain maps the persistence model to the pure domain entity.
func toStoreDomain(data *model.StoreModel) *entity.Store {
	if data == nil {
		return nil
	}

	return &entity.Store{
		ID:                  data.ID,
		UserID:              data.UserID,
		Title:               data.Title,
		CrossCountryAbility: data.CrossCountryAbility,
		Latitude:            data.Latitude,
		Longitude:           data.Longitude,
		Address:             data.Address,
		CreatedAt:           data.CreatedAt,
		UpdatedAt:           data.UpdatedAt,
	}
}

// fromStoreDomain maps the domain entity to the persistence model.
func fromStoreDomain(store *entity.Store) *model.StoreModel {
	if store == nil {
		return nil
	}

	return &model.StoreModel{
		ID:                  store.ID,
		UserID:              store.UserID,
		Title:               store.Title,
		CrossCountryAbility: store.CrossCountryAbility,
		Latitude:            store.Latitude,
		Longitude:           store.Longitude,
		Address:             store.Address,
		CreatedAt:           store.CreatedAt,
		UpdatedAt:           store.UpdatedAt,
	}
}
