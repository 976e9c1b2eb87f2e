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

// francheasyRepository implements the domain.FrancheasyRepository interface using GORM.
type francheasyRepository struct {
	db *gorm.DB
}

// NewFrancheasyRepository is the constructor for francheasyRepository.
func NewFrancheasyRepository(db *gorm.DB) repository.FrancheasyRepository {
	return &francheasyRepository{db: db}
}

// FindByID retrieves a single listing by its unique ID.
func (repo *francheasyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Francheasy, error) {
	var m model.FrancheasyModel
	if err := repo.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrFrancheasyNotFound
		}

		return nil, errors.Wrap(err, "failed to find francheasy by id")
	}

	return toFrancheasyDomain(&m), nil
}

// FindAll retrieves every listing in the catalog.
func (repo *francheasyRepository) FindAll(ctx context.Context) ([]*entity.Francheasy, error) {
	var models []model.FrancheasyModel
	if err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list francheasies")
	}

	listings := make([]*entity.Francheasy, 0, len(models))
	for i := range models {
		listings = append(listings, toFrancheasyDomain(&models[i]))
	}

	return listings, nil
}

// FindByOwner retrieves all listings published by a specific user.
func (repo *francheasyRepository) FindByOwner(ctx context.Context, userID uuid.UUID) ([]*entity.Francheasy, error) {
	var models []model.FrancheasyModel
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list francheasies by owner")
	}

	listings := make([]*entity.Francheasy, 0, len(models))
	for i := range models {
		listings = append(listings, toFrancheasyDomain(&models[i]))
	}

	return listings, nil
}

// Create persists a new listing.
func (repo *francheasyRepository) Create(ctx context.Context, francheasy *entity.Francheasy) error {
	m := fromFrancheasyDomain(francheasy)

	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("listing owner does not exist")
		}
		return domainerrors.NewDatabaseExecuteError(err, "failed to create francheasy")
	}

	francheasy.ID = m.ID
	francheasy.CreatedAt = m.CreatedAt
	francheasy.UpdatedAt = m.UpdatedAt

	return nil
}

// Update modifies an existing listing.
func (repo *francheasyRepository) Update(ctx context.Context, francheasy *entity.Francheasy) error {
	m := fromFrancheasyDomain(francheasy)

	result := repo.db.WithContext(ctx).Model(&model.FrancheasyModel{}).
		Where("id = ?", francheasy.ID).
		Updates(map[string]any{
			"title":         m.Title,
			"ebitda":        m.EBITDA,
			"start_capital": m.StartCapital,
			"open_store":    m.OpenStore,
			"phone_number":  m.PhoneNumber,
			"photo_keys":    m.PhotoKeys,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update francheasy")
	}
	if result.RowsAffected == 0 {
		return repository.ErrFrancheasyNotFound
	}

	return nil
}

// Delete removes a listing by its ID.
func (repo *francheasyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.FrancheasyModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete francheasy")
	}
	if result.RowsAffected == 0 {
		return repository.ErrFrancheasyNotFound
	}

	return nil
}

// toFrancheasyDomain maps the persistence model to the pure domain entity.
func toFrancheasyDomain(data *model.FrancheasyModel) *entity.Francheasy {
	if data == nil {
		return nil
	}

	var photoKeys []string
	if len(data.PhotoKeys) > 0 {
		_ = json.Unmarshal(data.PhotoKeys, &photoKeys)
	}

	return &entity.Francheasy{
		ID:           data.ID,
		UserID:       data.UserID,
		Title:        data.Title,
		EBITDA:       data.EBITDA,
		StartCapital: data.StartCapital,
		OpenStore:    data.OpenStore,
		PhoneNumber:  data.PhoneNumber,
		PhotoKeys:    photoKeys,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromFrancheasyDomain maps the domain entity to the persistence model.
func fromFrancheasyDomain(francheasy *entity.Francheasy) *model.FrancheasyModel {
	if francheasy == nil {
		return nil
	}

	photoKeys, _ := json.Marshal(francheasy.PhotoKeys)

	return &model.FrancheasyModel{
		ID:           francheasy.ID,
		UserID:       francheasy.UserID,
		Title:        francheasy.Title,
		EBITDA:       francheasy.EBITDA,
		StartCapital: francheasy.StartCapital,
		OpenStore:    francheasy.OpenStore,
		PhoneNumber:  francheasy.PhoneNumber,
		PhotoKeys:    photoKeys,
		CreatedAt:    francheasy.CreatedAt,
		UpdatedAt:    francheasy.UpdatedAt,
	}
}
