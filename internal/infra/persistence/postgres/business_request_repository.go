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

// businessRequestRepository implements the domain.BusinessRequestRepository interface using GORM.
type businessRequestRepository struct {
	db *gorm.DB
}

// NewBusinessRequestRepository is the constructor for businessRequestRepository.
func NewBusinessRequestRepository(db *gorm.DB) repository.BusinessRequestRepository {
	return &businessRequestRepository{db: db}
}

// FindByID retrieves a single request by its unique ID.
func (repo *businessRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BusinessRequest, error) {
	var m model.BusinessRequestModel
	if err := repo.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRequestNotFound
		}

		return nil, errors.Wrap(err, "failed to find business request by id")
	}

	return toBusinessRequestDomain(&m), nil
}

// FindByApplicant retrieves all requests submitted by a specific user.
func (repo *businessRequestRepository) FindByApplicant(ctx context.Context, userID uuid.UUID) ([]*entity.BusinessRequest, error) {
	var models []model.BusinessRequestModel
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list business requests by applicant")
	}

	requests := make([]*entity.BusinessRequest, 0, len(models))
	for i := range models {
		requests = append(requests, toBusinessRequestDomain(&models[i]))
	}

	return requests, nil
}

// FindByFrancheasyOwner retrieves all requests targeting listings owned by a specific user.
func (repo *businessRequestRepository) FindByFrancheasyOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.BusinessRequest, error) {
	var models []model.BusinessRequestModel
	err := repo.db.WithContext(ctx).
		Joins("JOIN francheasies ON francheasies.id = business_requests.francheasy_id").
		Where("francheasies.user_id = ?", ownerID).
		Order("business_requests.created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list business requests by listing owner")
	}

	requests := make([]*entity.BusinessRequest, 0, len(models))
	for i := range models {
		requests = append(requests, toBusinessRequestDomain(&models[i]))
	}

	return requests, nil
}

// Create persists a new request.
func (repo *businessRequestRepository) Create(ctx context.Context, request *entity.BusinessRequest) error {
	m := fromBusinessRequestDomain(request)

	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrFrancheasyNotFound.WrapMessage("requested listing does not exist")
		}
		return domainerrors.NewDatabaseExecuteError(err, "failed to create business request")
	}

	request.ID = m.ID
	request.CreatedAt = m.CreatedAt
	request.UpdatedAt = m.UpdatedAt

	return nil
}

// UpdateStatus transitions a request to a new status.
func (repo *businessRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RequestStatus) error {
	result := repo.db.WithContext(ctx).Model(&model.BusinessRequestModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update business request status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRequestNotFound
	}

	return nil
}

// Delete removes a request by its ID.
func (repo *businessRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.BusinessRequestModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete business request")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRequestNotFound
	}

	return nil
}

// toBusinessRequestDomain maps the persistence model to the pure domain entity.
func toBusinessRequestDomain(data *model.BusinessRequestModel) *entity.BusinessRequest {
	if data == nil {
		return nil
	}

	return &entity.BusinessRequest{
		ID:           data.ID,
		UserID:       data.UserID,
		FrancheasyID: data.FrancheasyID,
		StoreID:      data.StoreID,
		PovilionID:   data.PovilionID,
		Status:       entity.RequestStatus(data.Status),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromBusinessRequestDomain maps the domain entity to the persistence model.
func fromBusinessRequestDomain(request *entity.BusinessRequest) *model.BusinessRequestModel {
	if request == nil {
		return nil
	}

	return &model.BusinessRequestModel{
		ID:           request.ID,
		UserID:       request.UserID,
		FrancheasyID: request.FrancheasyID,
		StoreID:      request.StoreID,
		PovilionID:   request.PovilionID,
		Status:       string(request.Status),
		CreatedAt:    request.CreatedAt,
		UpdatedAt:    request.UpdatedAt,
	}
}
