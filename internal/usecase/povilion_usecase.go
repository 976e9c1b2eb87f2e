package usecase

import (
	"context"

	"francheasy/internal/domain/entity"

	"github.com/google/uuid"
)

// CreatePovilionInput defines the data required to register a povilion.
type CreatePovilionInput struct {
	StoreID uuid.UUID
	Title   string
	Price   float64
}

// UpdatePovilionInput defines the mutable fields of a povilion.
type UpdatePovilionInput struct {
	Title string
	Price float64
}

// PovilionUsecase defines the interface for povilion operations.
type PovilionUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, input CreatePovilionInput) (*entity.Povilion, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.Povilion, error)
	Update(ctx context.Context, userID, id uuid.UUID, input UpdatePovilionInput) (*entity.Povilion, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
