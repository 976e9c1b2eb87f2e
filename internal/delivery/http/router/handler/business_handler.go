package handler

import (
	"log/slog"
	"net/http"
	"time"

	"francheasy/internal/delivery/http/middleware"
	"francheasy/internal/delivery/http/response"
	"francheasy/internal/domain/entity"
	domainerrors "francheasy/internal/domain/errors"
	"francheasy/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BusinessHandler holds dependencies for business ledger handlers.
type BusinessHandler struct {
	uc     usecase.BusinessUsecase
	logger *slog.Logger
}

// NewBusinessHandler is the constructor for BusinessHandler, injected by Fx.
func NewBusinessHandler(uc usecase.BusinessUsecase, logger *slog.Logger) *BusinessHandler {
	return &BusinessHandler{uc: uc, logger: logger}
}

type addTransactionRequest struct {
	Type        string  `json:"type" validate:"required,oneof=income expense"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description"`
}

type businessResponse struct {
	ID           string               `json:"id"`
	UserID       string               `json:"user_id"`
	FrancheasyID string               `json:"francheasy_id"`
	StoreID      *string              `json:"store_id,omitempty"`
	PovilionID   *string              `json:"povilion_id,omitempty"`
	Transactions []entity.Transaction `json:"transactions"`
	Totals       entity.Totals        `json:"totals"`
	CreatedAt    time.Time            `json:"created_at"`
}

// ListMine returns the authenticated user's businesses.
func (h *BusinessHandler) ListMine(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	outputs, err := h.uc.ListMine(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	responses := make([]businessResponse, 0, len(outputs))
	for _, output := range outputs {
		responses = append(responses, toBusinessResponse(output))
	}

	return response.Success(c, http.StatusOK, responses, "")
}

// ListByFrancheasy returns the businesses spawned from an owned listing.
func (h *BusinessHandler) ListByFrancheasy(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	francheasyID, err := uuid.Parse(c.Param("francheasy_id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid francheasy_id parameter")
	}

	outputs, err := h.uc.ListByFrancheasy(c.Request().Context(), userID, francheasyID)
	if err != nil {
		return errors.WithStack(err)
	}

	responses := make([]businessResponse, 0, len(outputs))
	for _, output := range outputs {
		responses = append(responses, toBusinessResponse(output))
	}

	return response.Success(c, http.StatusOK, responses, "")
}

// Get returns a single owned business with ledger totals.
func (h *BusinessHandler) Get(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	output, err := h.uc.Get(c.Request().Context(), userID, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toBusinessResponse(output), "")
}

// AddTransaction appends a ledger entry to an owned business.
func (h *BusinessHandler) AddTransaction(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req addTransactionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid transaction input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.AddTransaction(c.Request().Context(), userID, id, usecase.AddTransactionInput{
		Type:        entity.TransactionType(req.Type),
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toBusinessResponse(output), "Transaction recorded successfully")
}

// Delete removes an owned business.
func (h *BusinessHandler) Delete(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), userID, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func toBusinessResponse(output *usecase.BusinessOutput) businessResponse {
	business := output.Business
	transactions := business.Transactions
	if transactions == nil {
		transactions = []entity.Transaction{}
	}

	resp := businessResponse{
		ID:           business.ID.String(),
		UserID:       business.UserID.String(),
		FrancheasyID: business.FrancheasyID.String(),
		Transactions: transactions,
		Totals:       output.Totals,
		CreatedAt:    business.CreatedAt,
	}
	if business.StoreID != nil {
		storeID := business.StoreID.String()
		resp.StoreID = &storeID
	}
	if business.PovilionID != nil {
		povilionID := business.PovilionID.String()
		resp.PovilionID = &povilionID
	}

	return resp
}
