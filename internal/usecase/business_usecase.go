package usecase

import (
	"context"

	"francheasy/internal/domain/entity"

	"github.com/google/uuid"
)

// AddTransactionInput is a new ledger entry for a business.
type AddTransactionInput struct {
	Type        entity.TransactionType
	Amount      float64
	Description string
}

// BusinessOutput is a business together with its computed ledger totals.
type BusinessOutput struct {
	Business *entity.Business
	Totals   entity.Totals
}

// BusinessUsecase defines the interface for business operations. All
// operations are scoped to the business owner, except ListByFrancheasy which
// is scoped to the listing owner.
type BusinessUsecase interface {
	ListMine(ctx context.Context, userID uuid.UUID) ([]*BusinessOutput, error)

	// ListByFrancheasy returns the businesses spawned from a listing the
	// given user owns.
	ListByFrancheasy(ctx context.Context, ownerID, francheasyID uuid.UUID) ([]*BusinessOutput, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*BusinessOutput, error)
	AddTransaction(ctx context.Context, userID, id uuid.UUID, input AddTransactionInput) (*BusinessOutput, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
