package repository

import (
	"context"
	"errors"

	"francheasy/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrBusinessNotFound is returned when a business is not found.
var ErrBusinessNotFound = errors.New("business not found")

// BusinessRepository defines the operations for business persistence.
type BusinessRepository interface {
	// FindByID retrieves a single business by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error)

	// FindByOwner retrieves all businesses operated by a specific user.
	FindByOwner(ctx context.Context, userID uuid.UUID) ([]*entity.Business, error)

	// FindByFrancheasy retrieves all businesses spawned from a specific listing.
	FindByFrancheasy(ctx context.Context, francheasyID uuid.UUID) ([]*entity.Business, error)

	// Create persists a new business.
	Create(ctx context.Context, business *entity.Business) error

	// Update modifies an existing business, including its transaction ledger.
	Update(ctx context.Context, business *entity.Business) error

	// Delete removes a business by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
