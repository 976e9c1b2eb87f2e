package usecase

import (
	"context"

	"francheasy/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateStoreInput defines the data required to register a store.
type CreateStoreInput struct {
	Title               string
	CrossCountryAbility float64
	Latitude            float64
	Longitude           float64
	Address             string
}

// UpdateStoreInput defines the mutable fields of a store.
type UpdateStoreInput struct {
	Title               string
	CrossCountryAbility float64
	Latitude            float64
	Longitude           float64
	Address             string
}

// NearbyStore is a store annotated with its great-circle distance from the
// query point, in meters.
type NearbyStore struct {
	Store          *entity.Store
	DistanceMeters float64
}

// StoreUsecase defines the interface for store operations.
type StoreUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateStoreInput) (*entity.Store, error)
	List(ctx context.Context) ([]*entity.Store, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Store, error)
	Update(ctx context.Context, userID, id uuid.UUID, input UpdateStoreInput) (*entity.Store, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// Nearby returns stores within radiusMeters of the given point, sorted by
	// ascending distance.
	Nearby(ctx context.Context, latitude, longitude, radiusMeters float64) ([]*NearbyStore, error)
}
