package repository

import (
	"context"
	"errors"

	"francheasy/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrStoreNotFound is returned when a store is not found.
var ErrStoreNotFound = errors.New("store not found")

// StoreRepository defines the operations for store persistence.
type StoreRepository interface {
	// FindByID retrieves a single store by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)

	// FindAll retrieves every registered store.
	FindAll(ctx context.Context) ([]*entity.Store, error)

	// FindByOwner retrieves all stores belonging to a specific user.
	FindByOwner(ctx context.Context, userID uuid.UUID) ([]*entity.Store, error)

	// Create persists a new store.
	Create(ctx context.Context, store *entity.Store) error

	// Update modifies an existing store.
	Update(ctx context.Context, store *entity.Store) error

	// Delete removes a store by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
