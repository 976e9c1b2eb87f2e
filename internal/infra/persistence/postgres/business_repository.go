package postgres

import (
	"context"
	"encoding/json"

	"francheasy/internal/domain/entity"
	domainerrors "francheasy/internal/domain/errors"
	"francheasy/internal/domain/repository"
	"francheasy/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// businessRepository implements the domain.BusinessRepository interface using GORM.
type businessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository is the constructor for businessRepository.
func NewBusinessRepository(db *gorm.DB) repository.BusinessRepository {
	return &businessRepository{db: db}
}

// FindByID retrieves a single business by its unique ID.
func (repo *businessRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	var m model.BusinessModel
	if err := repo.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBusinessNotFound
		}

		return nil, errors.Wrap(err, "failed to find business by id")
	}

	return toBusinessDomain(&m), nil
}

// FindByOwner retrieves all businesses operated by a specific user.
func (repo *businessRepository) FindByOwner(ctx context.Context, userID uuid.UUID) ([]*entity.Business, error) {
	var models []model.BusinessModel
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list businesses by owner")
	}

	businesses := make([]*entity.Business, 0, len(models))
	for i := range models {
		businesses = append(businesses, toBusinessDomain(&models[i]))
	}

	return businesses, nil
}

// FindByFrancheasy retrieves all businesses spawned from a specific listing.
func (repo *businessRepository) FindByFrancheasy(ctx context.Context, francheasyID uuid.UUID) ([]*entity.Business, error) {
	var models []model.BusinessModel
	if err := repo.db.WithContext(ctx).Where("francheasy_id = ?", francheasyID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list businesses by listing")
	}

	businesses := make([]*entity.Business, 0, len(models))
	for i := range models {
		businesses = append(businesses, toBusinessDomain(&models[i]))
	}

	return businesses, nil
}

// Create persists a new business.
func (repo *businessRepository) Create(ctx context.Context, business *entity.Business) error {
	m := fromBusinessDomain(business)

	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrFrancheasyNotFound.WrapMessage("referenced listing does not exist")
		}
		return domainerrors.NewDatabaseExecuteError(err, "failed to create business")
	}

	business.ID = m.ID
	business.CreatedAt = m.CreatedAt
	business.UpdatedAt = m.UpdatedAt

	return nil
}

// Update modifies an existing business, including its transaction ledger.
func (repo *businessRepository) Update(ctx context.Context, business *entity.Business) error {
	m := fromBusinessDomain(business)

	result := repo.db.WithContext(ctx).Model(&model.BusinessModel{}).
		Where("id = ?", business.ID).
		Updates(map[string]any{
			"store_id":     m.StoreID,
			"povilion_id":  m.PovilionID,
			"transactions": m.Transactions,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update business")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBusinessNotFound
	}

	return nil
}

// Delete removes a business by its ID.
func (repo *businessRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.BusinessModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete business")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBusinessNotFound
	}

	return nil
}

// toBusinessDomain maps the persistence model to the pure domain entity.
func toBusinessDomain(data *model.BusinessModel) *entity.Business {
	if data == nil {
		return nil
	}

	var transactions []entity.Transaction
	if len(data.Transactions) > 0 {
		_ = json.Unmarshal(data.Transactions, &transactions)
	}

	return &entity.Business{
		ID:           data.ID,
		UserID:       data.UserID,
		FrancheasyID: data.FrancheasyID,
		StoreID:      data.StoreID,
		PovilionID:   data.PovilionID,
		Transactions: transactions,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromBusinessDomain maps the domain entity to the persistence model.
func fromBusinessDomain(business *entity.Business) *model.BusinessModel {
	if business == nil {
		return nil
	}

	transactions, _ := json.Marshal(business.Transactions)

	return &model.BusinessModel{
		ID:           business.ID,
		UserID:       business.UserID,
		FrancheasyID: business.FrancheasyID,
		StoreID:      business.StoreID,
		PovilionID:   business.PovilionID,
		Transactions: transactions,
		CreatedAt:    business.CreatedAt,
		UpdatedAt:    business.UpdatedAt,
	}
}
