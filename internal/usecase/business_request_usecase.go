package usecase

import (
	"context"

	"francheasy/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateBusinessRequestInput defines the data required to submit a purchase request.
type CreateBusinessRequestInput struct {
	FrancheasyID uuid.UUID
	StoreID      *uuid.UUID
	PovilionID   *uuid.UUID
}

// BusinessRequestUsecase defines the interface for business request operations.
type BusinessRequestUsecase interface {
	// Submit creates a pending request against an existing listing.
	Submit(ctx context.Context, userID uuid.UUID, input CreateBusinessRequestInput) (*entity.BusinessRequest, error)

	// ListMine returns the requests the given user has submitted.
	ListMine(ctx context.Context, userID uuid.UUID) ([]*entity.BusinessRequest, error)

	// ListIncoming returns requests targeting listings the given user owns.
	ListIncoming(ctx context.Context, ownerID uuid.UUID) ([]*entity.BusinessRequest, error)

	// Get returns a request visible to either the applicant or the listing owner.
	Get(ctx context.Context, userID, id uuid.UUID) (*entity.BusinessRequest, error)

	// Resolve lets the listing owner approve or reject a pending request.
	// Approval creates a Business for the applicant in the same transaction.
	Resolve(ctx context.Context, ownerID, id uuid.UUID, status entity.RequestStatus) (*entity.BusinessRequest, error)

	// Delete lets the applicant withdraw a request that is still pending.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
