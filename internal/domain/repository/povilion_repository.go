package repository

import (
	"context"
	"errors"

	"francheasy/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrPovilionNotFound is returned when a povilion is not found.
var ErrPovilionNotFound = errors.New("povilion not found")

// PovilionRepository defines the operations for povilion persistence.
type PovilionRepository interface {
	// FindByID retrieves a single povilion by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Povilion, error)

	// FindAll retrieves every registered povilion.
	FindAll(ctx context.Context) ([]*entity.Povilion, error)

	// FindByStore retrieves all povilions hosted by a specific store.
	FindByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.Povilion, error)

	// Create persists a new povilion.
	Create(ctx context.Context, povilion *entity.Povilion) error

	// Update modifies an existing povilion.
	Update(ctx context.Context, povilion *entity.Povilion) error

	// Delete removes a povilion by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
