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

// povilionRepository implements the domain.PovilionRepository interface using GORM.
type povilionRepository struct {
	db *gorm.DB
}

// NewPovilionRepository is the constructor for povilionRepository.
func NewPovilionRepository(db *gorm.DB) repository.PovilionRepository {
	return &povilionRepository{db: db}
}

// FindByID retrieves a single povilion by its unique ID.
func (repo *povilionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Povilion, error) {
	var m model.PovilionModel
	if err := repo.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPovilionNotFound
		}

		return nil, errors.Wrap(err, "failed to find povilion by id")
	}

	return toPovilionDomain(&m), nil
}

// FindAll retrieves every registered povilion.
func (repo *povilionRepository) FindAll(ctx context.Context) ([]*entity.Povilion, error) {
	var models []model.PovilionModel
	if err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list povilions")
	}

	povilions := make([]*entity.Povilion, 0, len(models))
	for i := range models {
		povilions = append(povilions, toPovilionDomain(&models[i]))
	}

	return povilions, nil
}

// FindByStore retrieves all povilions hosted by a specific store.
func (repo *povilionRepository) FindByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.Povilion, error) {
	var models []model.PovilionModel
	if err := repo.db.WithContext(ctx).Where("store_id = ?", storeID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list povilions by store")
	}

	povilions := make([]*entity.Povilion, 0, len(models))
	for i := range models {
		povilions = append(povilions, toPovilionDomain(&models[i]))
	}

	return povilions, nil
}

// Create persists a new povilion.
func (repo *povilionRepository) Create(ctx context.Context, povilion *entity.Povilion) error {
	m := fromPovilionDomain(povilion)

	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrStoreNotFound.WrapMessage("host store does not exist")
		}
		return domainerrors.NewDatabaseExecuteError(err, "failed to create povilion")
	}

	povilion.ID = m.ID
	povilion.CreatedAt = m.CreatedAt
	povilion.UpdatedAt = m.UpdatedAt

	return nil
}

// Update modifies an existing povilion.
func (repo *povilionRepository) Update(ctx context.Context, povilion *entity.Povilion) error {
	result := repo.db.WithContext(ctx).Model(&model.PovilionModel{}).
		Where("id = ?", povilion.ID).
		Updates(map[string]any{
			"title": povilion.Title,
			"price": povilion.Price,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update povilion")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPovilionNotFound
	}

	return nil
}

// Delete removes a povilion by its ID.
func (repo *povilionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.PovilionModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete povilion")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPovilionNotFound
	}

	return nil
}

// toPovilionDomain maps the persistence model to the pure domain entity.
func toPovilionDomain(data *model.PovilionModel) *entity.Povilion {
	if data == nil {
		return nil
	}

	return &entity.Povilion{
		ID:        data.ID,
		UserID:    data.UserID,
		StoreID:   data.StoreID,
		Title:     data.Title,
		Price:     data.Price,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromPovilionDomain maps the domain entity to the persistence model.
func fromPovilionDomain(povilion *entity.Povilion) *model.PovilionModel {
	if povilion == nil {
		return nil
	}

	return &model.PovilionModel{
		ID:        povilion.ID,
		UserID:    povilion.UserID,
		StoreID:   povilion.StoreID,
		Title:     povilion.Title,
		Price:     povilion.Price,
		CreatedAt: povilion.CreatedAt,
		UpdatedAt: povilion.UpdatedAt,
	}
}
