package impl

import (
	"context"
	"log/slog"

	deliverycontext "francheasy/internal/delivery/context"
	"francheasy/internal/domain/entity"
	domainerrors "francheasy/internal/domain/errors"
	"francheasy/internal/domain/repository"
	"francheasy/internal/domain/service"
	"francheasy/internal/errors"
	"francheasy/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// businessRequestService implements the purchase request lifecycle.
type businessRequestService struct {
	txManager      repository.TransactionManager
	requestRepo    repository.BusinessRequestRepository
	francheasyRepo repository.FrancheasyRepository
	eventPublisher service.EventPublisher
	logger         *slog.Logger
}

// BusinessRequestServiceParams holds dependencies for BusinessRequestService, injected by Fx.
type BusinessRequestServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	RequestRepo    repository.BusinessRequestRepository
	FrancheasyRepo repository.FrancheasyRepository
	EventPublisher service.EventPublisher
	Logger         *slog.Logger
}

// NewBusinessRequestService is the constructor for businessRequestService.
func NewBusinessRequestService(params BusinessRequestServiceParams) usecase.BusinessRequestUsecase {
	return &businessRequestService{
		txManager:      params.TxManager,
		requestRepo:    params.RequestRepo,
		francheasyRepo: params.FrancheasyRepo,
		eventPublisher: params.EventPublisher,
		logger:         params.Logger,
	}
}

func (srv *businessRequestService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *businessRequestService) Submit(ctx context.Context, userID uuid.UUID, input usecase.CreateBusinessRequestInput) (*entity.BusinessRequest, error) {
	if input.FrancheasyID == uuid.Nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("francheasy id is required")
	}

	if _, err := srv.francheasyRepo.FindByID(ctx, input.FrancheasyID); err != nil {
		if errors.Is(err, repository.ErrFrancheasyNotFound) {
			return nil, domainerrors.ErrFrancheasyNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find listing")
	}

	request := &entity.BusinessRequest{
		UserID:       userID,
		FrancheasyID: input.FrancheasyID,
		StoreID:      input.StoreID,
		PovilionID:   input.PovilionID,
		Status:       entity.RequestPending,
	}

	if err := srv.requestRepo.Create(ctx, request); err != nil {
		srv.log(ctx).Error("Failed to create request", slog.Any("error", err))

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create request")
	}

	srv.publishEvent(ctx, &service.MarketplaceEvent{
		RequestID:    deliverycontext.GetRequestIDFromContext(ctx),
		Type:         service.EventRequestSubmitted,
		UserID:       userID.String(),
		FrancheasyID: input.FrancheasyID.String(),
		Status:       string(entity.RequestPending),
	})

	return request, nil
}

func (srv *businessRequestService) ListMine(ctx context.Context, userID uuid.UUID) ([]*entity.BusinessRequest, error) {
	requests, err := srv.requestRepo.FindByApplicant(ctx, userID)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list requests")
	}

	return requests, nil
}

func (srv *businessRequestService) ListIncoming(ctx context.Context, ownerID uuid.UUID) ([]*entity.BusinessRequest, error) {
	requests, err := srv.requestRepo.FindByFrancheasyOwner(ctx, ownerID)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list incoming requests")
	}

	return requests, nil
}

func (srv *businessRequestService) Get(ctx context.Context, userID, id uuid.UUID) (*entity.BusinessRequest, error) {
	request, err := srv.findRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if request.UserID == userID {
		return request, nil
	}

	listing, err := srv.francheasyRepo.FindByID(ctx, request.FrancheasyID)
	if err != nil || listing.UserID != userID {
		return nil, domainerrors.ErrOwnershipViolation
	}

	return request, nil
}

// Resolve transitions a pending request and, on approval, creates the
// applicant's business in the same database transaction. Events go out only
// after the transaction commits.
func (srv *businessRequestService) Resolve(ctx context.Context, ownerID, id uuid.UUID, status entity.RequestStatus) (*entity.BusinessRequest, error) {
	if !status.Valid() || status == entity.RequestPending {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("status must be approved or rejected")
	}

	var (
		request  *entity.BusinessRequest
		business *entity.Business
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		requestRepo := repoFactory.NewBusinessRequestRepository()
		francheasyRepo := repoFactory.NewFrancheasyRepository()

		found, err := requestRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		listing, err := francheasyRepo.FindByID(ctx, found.FrancheasyID)
		if err != nil {
			return err
		}
		if listing.UserID != ownerID {
			return domainerrors.ErrOwnershipViolation
		}
		if found.Status != entity.RequestPending {
			return domainerrors.ErrRequestAlreadyResolved
		}

		if err := requestRepo.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		found.Status = status
		request = found

		if status == entity.RequestApproved {
			business = &entity.Business{
				UserID:       found.UserID,
				FrancheasyID: found.FrancheasyID,
				StoreID:      found.StoreID,
				PovilionID:   found.PovilionID,
				Transactions: []entity.Transaction{},
			}

			return repoFactory.NewBusinessRepository().Create(ctx, business)
		}

		return nil
	})
	if err != nil {
		return nil, srv.mapResolveError(ctx, err)
	}

	srv.publishEvent(ctx, &service.MarketplaceEvent{
		RequestID:    deliverycontext.GetRequestIDFromContext(ctx),
		Type:         service.EventRequestResolved,
		UserID:       request.UserID.String(),
		FrancheasyID: request.FrancheasyID.String(),
		Status:       string(status),
	})
	if business != nil {
		srv.publishEvent(ctx, &service.MarketplaceEvent{
			RequestID:    deliverycontext.GetRequestIDFromContext(ctx),
			Type:         service.EventBusinessCreated,
			UserID:       business.UserID.String(),
			FrancheasyID: business.FrancheasyID.String(),
			BusinessID:   business.ID.String(),
		})
	}

	return request, nil
}

// Delete withdraws a still-pending request. Only the applicant may withdraw,
// and a resolved request stays on record.
func (srv *businessRequestService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	request, err := srv.findRequest(ctx, id)
	if err != nil {
		return err
	}
	if request.UserID != userID {
		return domainerrors.ErrOwnershipViolation
	}
	if request.Status != entity.RequestPending {
		return domainerrors.ErrRequestAlreadyResolved
	}

	if err := srv.requestRepo.Delete(ctx, id); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete request")
	}

	return nil
}

func (srv *businessRequestService) findRequest(ctx context.Context, id uuid.UUID) (*entity.BusinessRequest, error) {
	request, err := srv.requestRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return nil, domainerrors.ErrRequestNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find request")
	}

	return request, nil
}

func (srv *businessRequestService) mapResolveError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrRequestNotFound):
		return domainerrors.ErrRequestNotFound
	case errors.Is(err, repository.ErrFrancheasyNotFound):
		return domainerrors.ErrFrancheasyNotFound
	case errors.Is(err, domainerrors.ErrOwnershipViolation):
		return domainerrors.ErrOwnershipViolation
	case errors.Is(err, domainerrors.ErrRequestAlreadyResolved):
		return domainerrors.ErrRequestAlreadyResolved
	default:
		srv.log(ctx).Error("Resolve failed", slog.Any("error", err))

		return domainerrors.NewDatabaseExecuteError(err, "failed to resolve request")
	}
}

// publishEvent is best effort. A broker outage never fails the request.
func (srv *businessRequestService) publishEvent(ctx context.Context, event *service.MarketplaceEvent) {
	if err := srv.eventPublisher.PublishMarketplaceEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish marketplace event",
			slog.String("type", event.Type),
			slog.Any("error", err))
	}
}
