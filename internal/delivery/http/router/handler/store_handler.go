package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"francheasy/internal/delivery/http/middleware"
	"francheasy/internal/delivery/http/response"
	"francheasy/internal/domain/entity"
	domainerrors "francheasy/internal/domain/errors"
	"francheasy/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// StoreHandler holds dependencies for store handlers.
type StoreHandler struct {
	uc     usecase.StoreUsecase
	logger *slog.Logger
}

// NewStoreHandler is the constructor for StoreHandler, injected by Fx.
func NewStoreHandler(uc usecase.StoreUsecase, logger *slog.Logger) *StoreHandler {
	return &StoreHandler{uc: uc, logger: logger}
}

type storeRequest struct {
	Title               string  `json:"title" validate:"required"`
	CrossCountryAbility float64 `json:"cross_country_ability"`
	Latitude            float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude           float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Address             string  `json:"address"`
}

type storeResponse struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"user_id"`
	Title               string    `json:"title"`
	CrossCountryAbility float64   `json:"cross_country_ability"`
	Latitude            float64   `json:"latitude"`
	Longitude           float64   `json:"longitude"`
	Address             string    `json:"address"`
	CreatedAt           time.Time `json:"created_at"`
}

type nearbyStoreResponse struct {
	storeResponse
	DistanceMeters float64 `json:"distance_meters"`
}

// Create registers a new store.
func (h *StoreHandler) Create(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	var req storeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid store input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	store, err := h.uc.Create(c.Request().Context(), userID, usecase.CreateStoreInput{
		Title:               req.Title,
		CrossCountryAbility: req.CrossCountryAbility,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
		Address:             req.Address,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toStoreResponse(store), "Store created successfully")
}

// List returns every registered store.
func (h *StoreHandler) List(c echo.Context) error {
	stores, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	responses := make([]storeResponse, 0, len(stores))
	for _, store := range stores {
		responses = append(responses, toStoreResponse(store))
	}

	return response.Success(c, http.StatusOK, responses, "")
}

// Nearby returns stores within a radius of a point, sorted by distance.
func (h *StoreHandler) Nearby(c echo.Context) error {
	latitude, err := parseFloatQuery(c, "lat")
	if err != nil {
		return err
	}
	longitude, err := parseFloatQuery(c, "lon")
	if err != nil {
		return err
	}
	radius, err := parseFloatQuery(c, "radius")
	if err != nil {
		return err
	}

	nearby, err := h.uc.Nearby(c.Request().Context(), latitude, longitude, radius)
	if err != nil {
		return errors.WithStack(err)
	}

	responses := make([]nearbyStoreResponse, 0, len(nearby))
	for _, item := range nearby {
		responses = append(responses, nearbyStoreResponse{
			storeResponse:  toStoreResponse(item.Store),
			DistanceMeters: item.DistanceMeters,
		})
	}

	return response.Success(c, http.StatusOK, responses, "")
}

// Get returns a single store.
func (h *StoreHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	store, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toStoreResponse(store), "")
}

// Update replaces the mutable fields of an owned store.
func (h *StoreHandler) Update(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req storeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid store input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	store, err := h.uc.Update(c.Request().Context(), userID, id, usecase.UpdateStoreInput{
		Title:               req.Title,
		CrossCountryAbility: req.CrossCountryAbility,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
		Address:             req.Address,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toStoreResponse(store), "Store updated successfully")
}

// Delete removes an owned store.
func (h *StoreHandler) Delete(c echo.Context) error {
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

func parseFloatQuery(c echo.Context, name string) (float64, error) {
	value, err := strconv.ParseFloat(c.QueryParam(name), 64)
	if err != nil {
		return 0, domainerrors.ErrValidationFailed.WrapMessage("invalid " + name + " parameter")
	}

	return value, nil
}

func toStoreResponse(store *entity.Store) storeResponse {
	return storeResponse{
		ID:                  store.ID.String(),
		UserID:              store.UserID.String(),
		Title:               store.Title,
		CrossCountryAbility: store.CrossCountryAbility,
		Latitude:            store.Latitude,
		Longitude:           store.Longitude,
		Address:             store.Address,
		CreatedAt:           store.CreatedAt,
	}
}
