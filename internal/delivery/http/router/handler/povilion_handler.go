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

// PovilionHandler holds dependencies for povilion handlers.
type PovilionHandler struct {
	uc     usecase.PovilionUsecase
	logger *slog.Logger
}

// NewPovilionHandler is the constructor for PovilionHandler, injected by Fx.
func NewPovilionHandler(uc usecase.PovilionUsecase, logger *slog.Logger) *PovilionHandler {
	return &PovilionHandler{uc: uc, logger: logger}
}

type createPovilionRequest struct {
	StoreID string  `json:"store_id" validate:"required,uuid"`
	Title   string  `json:"title" validate:"required"`
	Price   float64 `json:"price"`
}

type updatePovilionRequest struct {
	Title string  `json:"title" validate:"required"`
	Price float64 `json:"price"`
}

type povilionResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	StoreID   string    `json:"store_id"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// Create registers a new povilion inside a store.
func (h *PovilionHandler) Create(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	var req createPovilionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid povilion input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid store id")
	}

	povilion, err := h.uc.Create(c.Request().Context(), userID, usecase.CreatePovilionInput{
		StoreID: storeID,
		Title:   req.Title,
		Price:   req.Price,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toPovilionResponse(povilion), "Povilion created successfully")
}

// ListByStore returns the povilions hosted by a store.
func (h *PovilionHandler) ListByStore(c echo.Context) error {
	storeID, err := uuid.Parse(c.Param("store_id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid store id parameter")
	}

	povilions, err := h.uc.ListByStore(c.Request().Context(), storeID)
	if err != nil {
		return errors.WithStack(err)
	}

	responses := make([]povilionResponse, 0, len(povilions))
	for _, povilion := range povilions {
		responses = append(responses, toPovilionResponse(povilion))
	}

	return response.Success(c, http.StatusOK, responses, "")
}

// Update replaces the mutable fields of an owned povilion.
func (h *PovilionHandler) Update(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req updatePovilionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid povilion input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	povilion, err := h.uc.Update(c.Request().Context(), userID, id, usecase.UpdatePovilionInput{
		Title: req.Title,
		Price: req.Price,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPovilionResponse(povilion), "Povilion updated successfully")
}

// Delete removes an owned povilion.
func (h *PovilionHandler) Delete(c echo.Context) error {
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

func toPovilionResponse(povilion *entity.Povilion) povilionResponse {
	return povilionResponse{
		ID:        povilion.ID.String(),
		UserID:    povilion.UserID.String(),
		StoreID:   povilion.StoreID.String(),
		Title:     povilion.Title,
		Price:     povilion.Price,
		CreatedAt: povilion.CreatedAt,
	}
}
