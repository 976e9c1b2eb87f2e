package impl

import (
	"context"
	"log/slog"
	"math"
	"time"

	deliverycontext "francheasy/internal/delivery/context"
	"francheasy/internal/domain/entity"
	domainerrors "francheasy/internal/domain/errors"
	"francheasy/internal/domain/repository"
	"francheasy/internal/errors"
	"francheasy/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// businessService implements the business ledger operations.
type businessService struct {
	txManager      repository.TransactionManager
	businessRepo   repository.BusinessRepository
	francheasyRepo repository.FrancheasyRepository
	logger         *slog.Logger
}

// BusinessServiceParams holds dependencies for BusinessService, injected by Fx.
type BusinessServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	BusinessRepo   repository.BusinessRepository
	FrancheasyRepo repository.FrancheasyRepository
	Logger         *slog.Logger
}

// NewBusinessService is the constructor for businessService.
func NewBusinessService(params BusinessServiceParams) usecase.BusinessUsecase {
	return &businessService{
		txManager:      params.TxManager,
		businessRepo:   params.BusinessRepo,
		francheasyRepo: params.FrancheasyRepo,
		logger:         params.Logger,
	}
}

func (srv *businessService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *businessService) ListMine(ctx context.Context, userID uuid.UUID) ([]*usecase.BusinessOutput, error) {
	businesses, err := srv.businessRepo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list businesses")
	}

	outputs := make([]*usecase.BusinessOutput, 0, len(businesses))
	for _, business := range businesses {
		outputs = append(outputs, &usecase.BusinessOutput{
			Business: business,
			Totals:   computeTotals(business.Transactions),
		})
	}

	return outputs, nil
}

// ListByFrancheasy returns the businesses spawned from a listing. Only the
// listing owner may view them.
func (srv *businessService) ListByFrancheasy(ctx context.Context, ownerID, francheasyID uuid.UUID) ([]*usecase.BusinessOutput, error) {
	listing, err := srv.francheasyRepo.FindByID(ctx, francheasyID)
	if err != nil {
		if errors.Is(err, repository.ErrFrancheasyNotFound) {
			return nil, domainerrors.ErrFrancheasyNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find listing")
	}
	if listing.UserID != ownerID {
		return nil, domainerrors.ErrOwnershipViolation
	}

	businesses, err := srv.businessRepo.FindByFrancheasy(ctx, francheasyID)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list businesses by listing")
	}

	outputs := make([]*usecase.BusinessOutput, 0, len(businesses))
	for _, business := range businesses {
		outputs = append(outputs, &usecase.BusinessOutput{
			Business: business,
			Totals:   computeTotals(business.Transactions),
		})
	}

	return outputs, nil
}

// Get reports not-found before ownership, so probing for foreign ids cannot
// distinguish missing businesses from someone else's.
func (srv *businessService) Get(ctx context.Context, userID, id uuid.UUID) (*usecase.BusinessOutput, error) {
	business, err := srv.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	return &usecase.BusinessOutput{
		Business: business,
		Totals:   computeTotals(business.Transactions),
	}, nil
}

func (srv *businessService) AddTransaction(ctx context.Context, userID, id uuid.UUID, input usecase.AddTransactionInput) (*usecase.BusinessOutput, error) {
	if input.Type != entity.TransactionIncome && input.Type != entity.TransactionExpense {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("transaction type must be income or expense")
	}
	if input.Amount <= 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("amount must be positive")
	}

	var updated *entity.Business
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.NewBusinessRepository()

		business, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if business.UserID != userID {
			return domainerrors.ErrOwnershipViolation
		}

		business.Transactions = append(business.Transactions, entity.Transaction{
			Type:        input.Type,
			Amount:      input.Amount,
			Description: input.Description,
			Date:        time.Now(),
		})
		if err := repo.Update(ctx, business); err != nil {
			return err
		}

		updated = business

		return nil
	})
	if err != nil {
		return nil, srv.mapLedgerError(ctx, err)
	}

	return &usecase.BusinessOutput{
		Business: updated,
		Totals:   computeTotals(updated.Transactions),
	}, nil
}

func (srv *businessService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := srv.findOwned(ctx, userID, id); err != nil {
		return err
	}

	if err := srv.businessRepo.Delete(ctx, id); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete business")
	}

	return nil
}

func (srv *businessService) findOwned(ctx context.Context, userID, id uuid.UUID) (*entity.Business, error) {
	business, err := srv.businessRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			return nil, domainerrors.ErrBusinessNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find business")
	}
	if business.UserID != userID {
		return nil, domainerrors.ErrOwnershipViolation
	}

	return business, nil
}

func (srv *businessService) mapLedgerError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrBusinessNotFound):
		return domainerrors.ErrBusinessNotFound
	case errors.Is(err, domainerrors.ErrOwnershipViolation):
		return domainerrors.ErrOwnershipViolation
	default:
		srv.log(ctx).Error("Ledger update failed", slog.Any("error", err))

		return domainerrors.NewDatabaseExecuteError(err, "failed to record transaction")
	}
}

// computeTotals folds the ledger into income, expense, balance and margin.
// The margin is the balance over total turnover, as a percentage.
func computeTotals(transactions []entity.Transaction) entity.Totals {
	var income, expense float64
	for _, tx := range transactions {
		switch tx.Type {
		case entity.TransactionIncome:
			income += tx.Amount
		case entity.TransactionExpense:
			expense += tx.Amount
		}
	}

	balance := income - expense
	turnover := income + expense

	var profit float64
	if turnover > 0 {
		profit = balance / turnover * 100
	}

	return entity.Totals{
		TotalIncome:      round2(income),
		TotalExpense:     round2(expense),
		Balance:          round2(balance),
		ProfitPercentage: round2(profit),
	}
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
