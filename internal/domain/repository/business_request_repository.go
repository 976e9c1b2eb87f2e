package repository

import (
	"context"
	"errors"

	"francheasy/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRequestNotFound is returned when a business request is not found.
var ErrRequestNotFound = errors.New("business request not found")

// BusinessRequestRepository defines the operations for business request persistence.
type BusinessRequestRepository interface {
	// FindByID retrieves a single request by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BusinessRequest, error)

	// FindByApplicant retrieves all requests submitted by a specific user.
	FindByApplicant(ctx context.Context, userID uuid.UUID) ([]*entity.BusinessRequest, error)

	// FindByFrancheasyOwner retrieves all requests targeting listings owned by a specific user.
	FindByFrancheasyOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.BusinessRequest, error)

	// Create persists a new request.
	Create(ctx context.Context, request *entity.BusinessRequest) error

	// UpdateStatus transitions a request to a new status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RequestStatus) error

	// Delete removes a request by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
