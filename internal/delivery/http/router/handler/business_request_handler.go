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

// BusinessRequestHandler holds dependencies for purchase request handlers.
type BusinessRequestHandler struct {
	uc     usecase.BusinessRequestUsecase
	logger *slog.Logger
}

// NewBusinessRequestHandler is the constructor for BusinessRequestHandler, injected by Fx.
func NewBusinessRequestHandler(uc usecase.BusinessRequestUsecase, logger *slog.Logger) *BusinessRequestHandler {
	return &BusinessRequestHandler{uc: uc, logger: logger}
}

type createRequestRequest struct {
	FrancheasyID string  `json:"francheasy_id" validate:"required,uuid"`
	StoreID      *string `json:"store_id,omitempty" validate:"omitempty,uuid"`
	PovilionID   *string `json:"povilion_id,omitempty" validate:"omitempty,uuid"`
}

type resolveRequestRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

type businessRequestResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	FrancheasyID string    `json:"francheasy_id"`
	StoreID      *string   `json:"store_id,omitempty"`
	PovilionID   *string   `json:"povilion_id,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// Submit creates a pending purchase request.
func (h *BusinessRequestHandler) Submit(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	var req createRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid request input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input, err := toCreateRequestInput(req)
	if err != nil {
		return err
	}

	request, err := h.uc.Submit(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toBusinessRequestResponse(request), "Request submitted successfully")
}

// ListMine returns the requests the authenticated user has submitted.
func (h *BusinessRequestHandler) ListMine(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	requests, err := h.uc.ListMine(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toBusinessRequestResponses(requests), "")
}

// ListIncoming returns requests against the authenticated user's listings.
func (h *BusinessRequestHandler) ListIncoming(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	requests, err := h.uc.ListIncoming(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toBusinessRequestResponses(requests), "")
}

// Get returns a request visible to the applicant or the listing owner.
func (h *BusinessRequestHandler) Get(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	request, err := h.uc.Get(c.Request().Context(), userID, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toBusinessRequestResponse(request), "")
}

// Resolve approves or rejects a pending request.
func (h *BusinessRequestHandler) Resolve(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req resolveRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	request, err := h.uc.Resolve(c.Request().Context(), userID, id, entity.RequestStatus(req.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toBusinessRequestResponse(request), "Request resolved successfully")
}

// Delete withdraws the applicant's own pending request.
func (h *BusinessRequestHandler) Delete(c echo.Context) error {
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

func toCreateRequestInput(req createRequestRequest) (usecase.CreateBusinessRequestInput, error) {
	francheasyID, err := uuid.Parse(req.FrancheasyID)
	if err != nil {
		return usecase.CreateBusinessRequestInput{}, domainerrors.ErrValidationFailed.WrapMessage("invalid francheasy id")
	}

	input := usecase.CreateBusinessRequestInput{FrancheasyID: francheasyID}

	if req.StoreID != nil {
		storeID, err := uuid.Parse(*req.StoreID)
		if err != nil {
			return usecase.CreateBusinessRequestInput{}, domainerrors.ErrValidationFailed.WrapMessage("invalid store id")
		}
		input.StoreID = &storeID
	}
	if req.PovilionID != nil {
		povilionID, err := uuid.Parse(*req.PovilionID)
		if err != nil {
			return usecase.CreateBusinessRequestInput{}, domainerrors.ErrValidationFailed.WrapMessage("invalid povilion id")
		}
		input.PovilionID = &povilionID
	}

	return input, nil
}

func toBusinessRequestResponses(requests []*entity.BusinessRequest) []businessRequestResponse {
	responses := make([]businessRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, toBusinessRequestResponse(request))
	}

	return responses
}

func toBusinessRequestResponse(request *entity.BusinessRequest) businessRequestResponse {
	resp := businessRequestResponse{
		ID:           request.ID.String(),
		UserID:       request.UserID.String(),
		FrancheasyID: request.FrancheasyID.String(),
		Status:       string(request.Status),
		CreatedAt:    request.CreatedAt,
	}
	if request.StoreID != nil {
		storeID := request.StoreID.String()
		resp.StoreID = &storeID
	}
	if request.PovilionID != nil {
		povilionID := request.PovilionID.String()
		resp.PovilionID = &povilionID
	}

	return resp
}
