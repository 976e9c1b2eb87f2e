package repository

import (
	"context"
	"errors"

	"francheasy/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrFrancheasyNotFound is returned when a franchise listing is not found.
var ErrFrancheasyNotFound = errors.New("francheasy not found")

// FrancheasyRepository defines the operations for franchise listing persistence.
type FrancheasyRepository interface {
	// FindByID retrieves a single listing by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Francheasy, error)

	// FindAll retrieves every listing in the catalog.
	FindAll(ctx context.Context) ([]*entity.Francheasy, error)

	// FindByOwner retrieves all listings published by a specific user.
	FindByOwner(ctx context.Context, userID uuid.UUID) ([]*entity.Francheasy, error)

	// Create persists a new listing.
	Create(ctx context.Context, francheasy *entity.Francheasy) error

	// Update modifies an existing listing.
	Update(ctx context.Context, francheasy *entity.Francheasy) error

	// Delete removes a listing by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
